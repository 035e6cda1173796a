package domain

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
)

// Cart domain errors.
var (
	ErrCartNotFound    = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrLineNotFound    = &Error{Code: ENOTFOUND, Message: "Cart line not found"}
	ErrInvalidQuantity = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
)

// ProductUnavailable builds the error returned when a product cannot be
// purchased, carrying the offending product ID for the caller.
func ProductUnavailable(op string, productID pgtype.UUID) error {
	return &Error{
		Code:    EINVALID,
		Op:      op,
		Message: fmt.Sprintf("Product is not available for purchase: %s", uuidString(productID)),
	}
}

// CartService provides business logic for shopping cart operations.
type CartService interface {
	// GetOrCreateCart resolves the single cart for an identity, creating an
	// empty one on first use. Resolution is idempotent: the same identity
	// always maps to the same cart.
	GetOrCreateCart(ctx context.Context, ident Identity) (*Cart, error)

	// GetCart resolves an existing cart without creating one.
	GetCart(ctx context.Context, ident Identity) (*Cart, error)

	// AddItem adds a product to the cart, consolidating into an existing
	// line when one exists for the product.
	AddItem(ctx context.Context, cartID, productID pgtype.UUID, quantity int32) (*CartSummary, error)

	// SetQuantity overwrites a line's quantity. Zero or negative removes
	// the line. The line must belong to the given cart.
	SetQuantity(ctx context.Context, cartID, lineID pgtype.UUID, quantity int32) (*CartSummary, error)

	// RemoveItem removes a line from the cart.
	RemoveItem(ctx context.Context, cartID, lineID pgtype.UUID) (*CartSummary, error)

	// Summary returns the cart with its lines and totals. Prices are
	// resolved live from the catalog on every call, never cached.
	Summary(ctx context.Context, cartID pgtype.UUID) (*CartSummary, error)

	// Clear removes all lines. Used by checkout after order creation.
	Clear(ctx context.Context, cartID pgtype.UUID) error
}

// Cart is a lightweight cart view model. Exactly one of UserID and
// SessionToken is set, mirroring Identity.
type Cart struct {
	ID           pgtype.UUID
	UserID       pgtype.UUID
	SessionToken pgtype.Text
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

// CartLine is one product entry with its live-resolved price.
type CartLine struct {
	ID             pgtype.UUID
	ProductID      pgtype.UUID
	ProductName    string
	Quantity       int32
	UnitPriceCents int64
	LineSubtotal   int64
}

// CartSummary aggregates a cart with its lines and derived totals.
type CartSummary struct {
	Cart       Cart
	Lines      []CartLine
	ItemCount  int32
	TotalCents int64
}

func uuidString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	b := id.Bytes
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
