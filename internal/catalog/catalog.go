// Package catalog is the boundary to the product-catalog collaborator.
// The checkout core only needs a product's identity, current unit price
// and purchasability; browsing, search and merchandising live elsewhere.
package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Product is the slice of catalog data the cart and checkout flows need.
type Product struct {
	ID             pgtype.UUID
	Name           string
	UnitPriceCents int64
	Purchasable    bool
}

// Provider looks products up by identifier.
type Provider interface {
	GetProduct(ctx context.Context, id pgtype.UUID) (*Product, error)
}
