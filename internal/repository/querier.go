package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the full set of database operations. Services depend on this
// interface so tests can substitute an in-memory implementation.
type Querier interface {
	// Carts
	GetCartByID(ctx context.Context, id pgtype.UUID) (Cart, error)
	GetCartByIDForUpdate(ctx context.Context, id pgtype.UUID) (Cart, error)
	GetCartByUserID(ctx context.Context, userID pgtype.UUID) (Cart, error)
	GetCartBySessionToken(ctx context.Context, token string) (Cart, error)
	CreateCart(ctx context.Context, arg CreateCartParams) (Cart, error)
	TouchCart(ctx context.Context, id pgtype.UUID) error

	// Cart items
	UpsertCartItem(ctx context.Context, arg UpsertCartItemParams) (CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) (int64, error)
	DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error)
	ListCartItems(ctx context.Context, cartID pgtype.UUID) ([]ListCartItemsRow, error)
	ClearCart(ctx context.Context, cartID pgtype.UUID) error

	// Promo codes
	GetPromoCodeByCode(ctx context.Context, code string) (PromoCode, error)
	GetPromoCodeForUpdate(ctx context.Context, code string) (PromoCode, error)
	IncrementPromoCodeUsage(ctx context.Context, id pgtype.UUID) (int64, error)

	// Orders
	CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error)
	GetOrderByID(ctx context.Context, id pgtype.UUID) (Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (Order, error)
	ListOrdersByUserID(ctx context.Context, userID pgtype.UUID) ([]Order, error)
	GetOrderItems(ctx context.Context, orderID pgtype.UUID) ([]OrderItem, error)
	UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error)

	// Products
	GetProductByID(ctx context.Context, id pgtype.UUID) (Product, error)
}

var _ Querier = (*Queries)(nil)
