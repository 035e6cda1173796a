package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const cartColumns = `id, user_id, session_token, created_at, updated_at`

func scanCart(row interface{ Scan(dest ...any) error }) (Cart, error) {
	var c Cart
	err := row.Scan(&c.ID, &c.UserID, &c.SessionToken, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const getCartByID = `
SELECT ` + cartColumns + `
FROM carts
WHERE id = $1
`

func (q *Queries) GetCartByID(ctx context.Context, id pgtype.UUID) (Cart, error) {
	return scanCart(q.db.QueryRow(ctx, getCartByID, id))
}

const getCartByIDForUpdate = `
SELECT ` + cartColumns + `
FROM carts
WHERE id = $1
FOR UPDATE
`

// GetCartByIDForUpdate row-locks the cart for the rest of the transaction.
// Checkout serializes on this lock so concurrent conversions of the same
// cart cannot both see its lines.
func (q *Queries) GetCartByIDForUpdate(ctx context.Context, id pgtype.UUID) (Cart, error) {
	return scanCart(q.db.QueryRow(ctx, getCartByIDForUpdate, id))
}

const getCartByUserID = `
SELECT ` + cartColumns + `
FROM carts
WHERE user_id = $1
`

func (q *Queries) GetCartByUserID(ctx context.Context, userID pgtype.UUID) (Cart, error) {
	return scanCart(q.db.QueryRow(ctx, getCartByUserID, userID))
}

const getCartBySessionToken = `
SELECT ` + cartColumns + `
FROM carts
WHERE session_token = $1
`

func (q *Queries) GetCartBySessionToken(ctx context.Context, token string) (Cart, error) {
	return scanCart(q.db.QueryRow(ctx, getCartBySessionToken, token))
}

const createCart = `
INSERT INTO carts (user_id, session_token)
VALUES ($1, $2)
RETURNING ` + cartColumns

type CreateCartParams struct {
	UserID       pgtype.UUID
	SessionToken pgtype.Text
}

// CreateCart inserts a cart for exactly one identity. The partial unique
// indexes on user_id and session_token make concurrent creates for the
// same identity fail with a unique violation; callers resolve the race by
// re-reading the winner.
func (q *Queries) CreateCart(ctx context.Context, arg CreateCartParams) (Cart, error) {
	return scanCart(q.db.QueryRow(ctx, createCart, arg.UserID, arg.SessionToken))
}

const touchCart = `
UPDATE carts
SET updated_at = now()
WHERE id = $1
`

// TouchCart advances the cart's updated_at after a line mutation.
func (q *Queries) TouchCart(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, touchCart, id)
	return err
}
