package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getProductByID = `
SELECT id, name, slug, price_cents, is_available, created_at
FROM products
WHERE id = $1
`

func (q *Queries) GetProductByID(ctx context.Context, id pgtype.UUID) (Product, error) {
	var p Product
	err := q.db.QueryRow(ctx, getProductByID, id).
		Scan(&p.ID, &p.Name, &p.Slug, &p.PriceCents, &p.IsAvailable, &p.CreatedAt)
	return p, err
}
