package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mpetrenko/voltride/internal/domain"
	"github.com/mpetrenko/voltride/internal/repository"
)

type orderService struct {
	repo repository.Querier
}

// NewOrderService creates an OrderService over the repository.
func NewOrderService(repo repository.Querier) domain.OrderService {
	return &orderService{repo: repo}
}

// GetOrder retrieves an order with its lines.
func (s *orderService) GetOrder(ctx context.Context, orderID pgtype.UUID) (*domain.OrderDetail, error) {
	const op = "order.get"

	row, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, storageErr(err, op)
	}

	return s.loadDetail(ctx, row, op)
}

// GetOrderByNumber retrieves an order by its public order number.
func (s *orderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.OrderDetail, error) {
	const op = "order.get_by_number"

	row, err := s.repo.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, storageErr(err, op)
	}

	return s.loadDetail(ctx, row, op)
}

// ListOrders returns a user's orders, newest first.
func (s *orderService) ListOrders(ctx context.Context, userID pgtype.UUID) ([]domain.Order, error) {
	rows, err := s.repo.ListOrdersByUserID(ctx, userID)
	if err != nil {
		return nil, storageErr(err, "order.list")
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, toDomainOrder(row))
	}
	return orders, nil
}

// UpdateStatus moves an order along the status state machine. Orders move
// forward only (new -> processing -> shipped -> delivered); cancellation
// is allowed until the order has shipped. Everything else is rejected.
// The write is conditional on the status the check ran against, so a
// transition racing with another admin request cannot overwrite the newer
// status; the loser re-reads and reports the conflict.
func (s *orderService) UpdateStatus(ctx context.Context, orderID pgtype.UUID, next domain.OrderStatus) (*domain.Order, error) {
	const op = "order.update_status"

	if _, err := domain.ParseOrderStatus(string(next)); err != nil {
		return nil, err
	}

	row, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, storageErr(err, op)
	}

	current := domain.OrderStatus(row.Status)
	if !current.CanTransitionTo(next) {
		return nil, invalidTransition(op, current, next)
	}

	updated, err := s.repo.UpdateOrderStatus(ctx, repository.UpdateOrderStatusParams{
		ID:         orderID,
		Status:     string(next),
		FromStatus: string(current),
	})
	if err == nil {
		order := toDomainOrder(updated)
		return &order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, storageErr(err, op)
	}

	// Zero rows matched: the status moved underneath us (or the order is
	// gone). Re-read to report what actually happened.
	fresh, rerr := s.repo.GetOrderByID(ctx, orderID)
	if rerr != nil {
		if errors.Is(rerr, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, storageErr(rerr, op)
	}
	return nil, invalidTransition(op, domain.OrderStatus(fresh.Status), next)
}

func invalidTransition(op string, current, next domain.OrderStatus) error {
	return &domain.Error{
		Code:    domain.ECONFLICT,
		Op:      op,
		Message: fmt.Sprintf("cannot move order from %s to %s", current, next),
		Err:     domain.ErrInvalidTransition,
	}
}

func (s *orderService) loadDetail(ctx context.Context, row repository.Order, op string) (*domain.OrderDetail, error) {
	items, err := s.repo.GetOrderItems(ctx, row.ID)
	if err != nil {
		return nil, storageErr(err, op)
	}

	lines := make([]domain.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, toDomainOrderLine(item))
	}

	return &domain.OrderDetail{
		Order: toDomainOrder(row),
		Lines: lines,
	}, nil
}
