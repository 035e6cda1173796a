// Package delivery quotes the flat delivery fee applied at checkout.
// Carrier-rate shopping is out of scope; the storefront offers a small
// fixed set of delivery options and the chosen option's fee is passed to
// the order assembler as an external input.
package delivery

import (
	"context"
	"errors"
)

// Provider quotes the available delivery options.
type Provider interface {
	// Quotes returns every available option, cheapest first.
	Quotes(ctx context.Context) ([]Quote, error)

	// QuoteByCode resolves a single option by its service code.
	QuoteByCode(ctx context.Context, code string) (*Quote, error)
}

// Quote is one delivery option.
type Quote struct {
	ServiceName string
	ServiceCode string
	CostCents   int64
	DaysMin     int
	DaysMax     int
}

// Provider errors.
var (
	ErrNoQuotes      = errors.New("delivery: no delivery options configured")
	ErrUnknownOption = errors.New("delivery: unknown delivery option")
)
