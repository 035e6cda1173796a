package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Order domain errors.
var (
	ErrOrderNotFound     = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrEmptyCart         = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrInvalidTransition = &Error{Code: ECONFLICT, Message: "Illegal order status transition"}
	ErrUnknownStatus     = &Error{Code: EINVALID, Message: "Unknown order status"}
)

// OrderStatus is the lifecycle state of an order. Orders are immutable
// after creation except for this field.
type OrderStatus string

const (
	StatusNew        OrderStatus = "new"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusNew, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return OrderStatus(s), nil
	}
	return "", ErrUnknownStatus
}

// CanTransitionTo reports whether next is a legal successor state.
// The forward chain is new -> processing -> shipped -> delivered with no
// skipping; cancellation is allowed from new or processing and is terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case StatusNew:
		return next == StatusProcessing || next == StatusCancelled
	case StatusProcessing:
		return next == StatusShipped || next == StatusCancelled
	case StatusShipped:
		return next == StatusDelivered
	}
	return false
}

// ContactInfo is the contact/address snapshot frozen into an order.
// Validated with go-playground/validator before checkout opens its
// transaction.
type ContactInfo struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,max=20"`
	Email     string `json:"email" validate:"required,email"`
	City      string `json:"city" validate:"required,max=100"`
	Address   string `json:"address" validate:"required"`
	ZipCode   string `json:"zip_code" validate:"omitempty,max=10"`
	Comment   string `json:"comment" validate:"omitempty,max=2000"`
}

// CheckoutParams are the inputs to OrderAssembler.Checkout. DeliveryCents
// is supplied by the delivery collaborator; PromoCode is optional.
type CheckoutParams struct {
	CartID        pgtype.UUID
	Contact       ContactInfo
	DeliveryCents int64
	PromoCode     string
}

// CheckoutService converts a cart into an order as one atomic unit:
// price snapshotting, promo redemption, order persistence and cart clear
// all commit together or not at all.
type CheckoutService interface {
	Checkout(ctx context.Context, params CheckoutParams) (*OrderDetail, error)
}

// OrderService provides read access to orders and drives the status
// state machine.
type OrderService interface {
	GetOrder(ctx context.Context, orderID pgtype.UUID) (*OrderDetail, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*OrderDetail, error)
	ListOrders(ctx context.Context, userID pgtype.UUID) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID pgtype.UUID, next OrderStatus) (*Order, error)
}

// Order is an immutable record of a completed checkout.
type Order struct {
	ID          pgtype.UUID
	OrderNumber string
	UserID      pgtype.UUID
	Status      OrderStatus

	Contact ContactInfo

	SubtotalCents int64
	DeliveryCents int64
	DiscountCents int64
	TotalCents    int64
	PromoCode     string // empty when no code was redeemed

	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// OrderLine is a frozen snapshot of one cart line at checkout time.
// The unit price is decoupled from the live catalog so later price edits
// never alter historical orders.
type OrderLine struct {
	ID             pgtype.UUID
	ProductID      pgtype.UUID
	ProductName    string
	Quantity       int32
	UnitPriceCents int64
	TotalCents     int64
}

// OrderDetail aggregates an order with its lines.
type OrderDetail struct {
	Order Order
	Lines []OrderLine
}
