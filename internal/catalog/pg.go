package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mpetrenko/voltride/internal/repository"
)

// PGProvider reads products from the shop database. In a split deployment
// this would be an HTTP/gRPC client to the catalog service; the interface
// stays the same either way.
type PGProvider struct {
	repo repository.Querier
}

// NewPGProvider creates a catalog provider over the repository.
func NewPGProvider(repo repository.Querier) *PGProvider {
	return &PGProvider{repo: repo}
}

// GetProduct implements Provider.
func (p *PGProvider) GetProduct(ctx context.Context, id pgtype.UUID) (*Product, error) {
	row, err := p.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &Product{
		ID:             row.ID,
		Name:           row.Name,
		UnitPriceCents: row.PriceCents,
		Purchasable:    row.IsAvailable,
	}, nil
}
