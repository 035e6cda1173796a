package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mpetrenko/voltride/internal/domain"
	"github.com/mpetrenko/voltride/internal/repository"
)

type promoService struct {
	repo repository.Querier
	now  func() time.Time
}

// NewPromoService creates a PromoService over the repository.
func NewPromoService(repo repository.Querier) domain.PromoService {
	return &promoService{
		repo: repo,
		now:  time.Now,
	}
}

// Validate checks a code against the cart total and computes the discount
// it would grant. Rejections are outcomes, not errors; the error return
// carries storage faults only.
//
// Validate never touches used_count. A validated code consumes a use only
// when the checkout transaction that redeems it commits, so abandoning a
// checkout after applying a code costs nothing.
func (s *promoService) Validate(ctx context.Context, code string, cartTotalCents int64) (*domain.PromoOutcome, error) {
	const op = "promo.validate"

	row, err := s.repo.GetPromoCodeByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.PromoOutcome{Reason: domain.PromoNotFound}, nil
		}
		return nil, storageErr(err, op)
	}

	promo := toDomainPromo(row)
	if !promo.IsValid(s.now()) {
		return &domain.PromoOutcome{Reason: domain.PromoExpiredOrExhausted}, nil
	}

	return &domain.PromoOutcome{
		Applied:       true,
		DiscountCents: promo.DiscountFor(cartTotalCents),
	}, nil
}

func toDomainPromo(row repository.PromoCode) domain.PromoCode {
	var maxUses int32
	if row.MaxUses.Valid {
		maxUses = row.MaxUses.Int32
	}

	return domain.PromoCode{
		Code:                row.Code,
		DiscountPercent:     row.DiscountPercent,
		DiscountAmountCents: row.DiscountAmountCents,
		ValidFrom:           row.ValidFrom.Time,
		ValidTo:             row.ValidTo.Time,
		IsActive:            row.IsActive,
		MaxUses:             maxUses,
		UsedCount:           row.UsedCount,
	}
}
