package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertCartItem = `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
RETURNING id, cart_id, product_id, quantity, added_at
`

type UpsertCartItemParams struct {
	CartID    pgtype.UUID
	ProductID pgtype.UUID
	Quantity  int32
}

// UpsertCartItem consolidates a product into the cart as a single atomic
// read-modify-write: concurrent adds for the same (cart, product) pair
// serialize on the row instead of double-applying an increment.
func (q *Queries) UpsertCartItem(ctx context.Context, arg UpsertCartItemParams) (CartItem, error) {
	var i CartItem
	err := q.db.QueryRow(ctx, upsertCartItem, arg.CartID, arg.ProductID, arg.Quantity).
		Scan(&i.ID, &i.CartID, &i.ProductID, &i.Quantity, &i.AddedAt)
	return i, err
}

const updateCartItemQuantity = `
UPDATE cart_items
SET quantity = $3
WHERE id = $1 AND cart_id = $2
`

type UpdateCartItemQuantityParams struct {
	ID       pgtype.UUID
	CartID   pgtype.UUID
	Quantity int32
}

// UpdateCartItemQuantity overwrites a line's quantity. The cart_id in the
// WHERE clause is the ownership check: a line ID guessed from another cart
// affects zero rows.
func (q *Queries) UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) (int64, error) {
	tag, err := q.db.Exec(ctx, updateCartItemQuantity, arg.ID, arg.CartID, arg.Quantity)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteCartItem = `
DELETE FROM cart_items
WHERE id = $1 AND cart_id = $2
`

type DeleteCartItemParams struct {
	ID     pgtype.UUID
	CartID pgtype.UUID
}

func (q *Queries) DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteCartItem, arg.ID, arg.CartID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listCartItems = `
SELECT ci.id, ci.product_id, p.name, p.price_cents, p.is_available, ci.quantity
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.added_at
`

type ListCartItemsRow struct {
	ID          pgtype.UUID
	ProductID   pgtype.UUID
	ProductName string
	PriceCents  int64
	IsAvailable bool
	Quantity    int32
}

// ListCartItems returns the cart's lines in insertion order joined with
// the product's current price and availability. Lines never store a
// price; this query is the live resolution.
func (q *Queries) ListCartItems(ctx context.Context, cartID pgtype.UUID) ([]ListCartItemsRow, error) {
	rows, err := q.db.Query(ctx, listCartItems, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ListCartItemsRow
	for rows.Next() {
		var i ListCartItemsRow
		if err := rows.Scan(&i.ID, &i.ProductID, &i.ProductName, &i.PriceCents, &i.IsAvailable, &i.Quantity); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const clearCart = `
DELETE FROM cart_items
WHERE cart_id = $1
`

func (q *Queries) ClearCart(ctx context.Context, cartID pgtype.UUID) error {
	_, err := q.db.Exec(ctx, clearCart, cartID)
	return err
}
