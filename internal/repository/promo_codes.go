package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const promoColumns = `id, code, discount_percent, discount_amount_cents,
	valid_from, valid_to, is_active, max_uses, used_count`

func scanPromoCode(row interface{ Scan(dest ...any) error }) (PromoCode, error) {
	var p PromoCode
	err := row.Scan(&p.ID, &p.Code, &p.DiscountPercent, &p.DiscountAmountCents,
		&p.ValidFrom, &p.ValidTo, &p.IsActive, &p.MaxUses, &p.UsedCount)
	return p, err
}

const getPromoCodeByCode = `
SELECT ` + promoColumns + `
FROM promo_codes
WHERE code = $1
`

// GetPromoCodeByCode looks a code up by exact, case-sensitive match.
func (q *Queries) GetPromoCodeByCode(ctx context.Context, code string) (PromoCode, error) {
	return scanPromoCode(q.db.QueryRow(ctx, getPromoCodeByCode, code))
}

const getPromoCodeForUpdate = `
SELECT ` + promoColumns + `
FROM promo_codes
WHERE code = $1
FOR UPDATE
`

// GetPromoCodeForUpdate locks the code's row for the rest of the enclosing
// transaction. Checkout re-validates and increments under this lock so
// concurrent redemptions of a near-exhausted code cannot both pass.
func (q *Queries) GetPromoCodeForUpdate(ctx context.Context, code string) (PromoCode, error) {
	return scanPromoCode(q.db.QueryRow(ctx, getPromoCodeForUpdate, code))
}

const incrementPromoCodeUsage = `
UPDATE promo_codes
SET used_count = used_count + 1
WHERE id = $1
  AND (max_uses IS NULL OR used_count < max_uses)
`

// IncrementPromoCodeUsage consumes one use, guarded by the ceiling in the
// WHERE clause. Zero rows affected means the ceiling was reached.
func (q *Queries) IncrementPromoCodeUsage(ctx context.Context, id pgtype.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, incrementPromoCodeUsage, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
