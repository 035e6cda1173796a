package domain

import (
	"context"
	"fmt"
	"time"
)

// PromoRejectReason explains why a promo code was not applied.
type PromoRejectReason string

const (
	// PromoNotFound means no code matched (case-sensitive exact match).
	PromoNotFound PromoRejectReason = "not_found"

	// PromoExpiredOrExhausted means the code exists but is inactive,
	// outside its validity window, or past its usage ceiling.
	PromoExpiredOrExhausted PromoRejectReason = "expired_or_exhausted"
)

// InvalidPromoCode builds the checkout-level rejection error. A supplied
// code that fails validation aborts the checkout rather than being
// silently ignored.
func InvalidPromoCode(op string, reason PromoRejectReason) error {
	return &Error{
		Code:    EINVALID,
		Op:      op,
		Message: fmt.Sprintf("Promo code rejected: %s", reason),
	}
}

// PromoService validates promo codes against a cart total. Validation
// never consumes a use: the usage counter moves only inside a committing
// checkout transaction.
type PromoService interface {
	Validate(ctx context.Context, code string, cartTotalCents int64) (*PromoOutcome, error)
}

// PromoOutcome is the result of validating a code against a cart total.
type PromoOutcome struct {
	Applied       bool
	DiscountCents int64
	Reason        PromoRejectReason // set only when Applied is false
}

// PromoCode is a redeemable discount token.
type PromoCode struct {
	Code                string
	DiscountPercent     int32
	DiscountAmountCents int64
	ValidFrom           time.Time
	ValidTo             time.Time
	IsActive            bool
	MaxUses             int32 // 0 means no ceiling
	UsedCount           int32
}

// IsValid reports whether the code is redeemable at the given instant:
// active, inside [ValidFrom, ValidTo], and under its usage ceiling.
func (p PromoCode) IsValid(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if now.Before(p.ValidFrom) || now.After(p.ValidTo) {
		return false
	}
	if p.MaxUses > 0 && p.UsedCount >= p.MaxUses {
		return false
	}
	return true
}

// DiscountFor computes the discount against a cart total. Percentage takes
// precedence when non-zero, floored to whole cents; the result never
// exceeds the total, so an order total cannot go negative.
func (p PromoCode) DiscountFor(totalCents int64) int64 {
	var discount int64
	if p.DiscountPercent > 0 {
		discount = totalCents * int64(p.DiscountPercent) / 100
	} else {
		discount = p.DiscountAmountCents
	}
	if discount > totalCents {
		discount = totalCents
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
