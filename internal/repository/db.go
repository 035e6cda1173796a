package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the
// same query methods run inside and outside transactions.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// New creates a Queries instance bound to a connection pool or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries holds all database operations.
type Queries struct {
	db DBTX
}

// WithTx returns a Queries bound to the given transaction.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// DefaultTxTimeout bounds how long a single transactional unit of work may
// hold its connection. Storage operations fail with a retryable error
// rather than hang.
const DefaultTxTimeout = 5 * time.Second

// Store combines plain queries with transactional execution.
type Store interface {
	Querier

	// ExecTx runs fn inside a single database transaction. Every effect of
	// fn is committed together or rolled back together; fn receives the
	// transaction-scoped context and a Querier bound to the transaction.
	ExecTx(ctx context.Context, fn func(context.Context, Querier) error) error
}

// SQLStore implements Store on a pgx connection pool.
type SQLStore struct {
	*Queries
	pool      *pgxpool.Pool
	txTimeout time.Duration
}

// NewStore creates a Store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *SQLStore {
	return &SQLStore{
		Queries:   New(pool),
		pool:      pool,
		txTimeout: DefaultTxTimeout,
	}
}

// ExecTx runs fn inside a transaction. The timeout bounds the whole unit,
// statements included, through the context handed to fn.
func (s *SQLStore) ExecTx(ctx context.Context, fn func(context.Context, Querier) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, s.Queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. Used to turn cart-identity create races into a re-read of the
// winning row.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
