package delivery

import (
	"context"
	"sort"
)

// FlatRateProvider returns predefined flat-rate delivery options.
type FlatRateProvider struct {
	quotes []Quote
}

// NewFlatRateProvider creates a provider over a fixed set of options.
func NewFlatRateProvider(quotes []Quote) *FlatRateProvider {
	sorted := make([]Quote, len(quotes))
	copy(sorted, quotes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CostCents < sorted[j].CostCents
	})
	return &FlatRateProvider{quotes: sorted}
}

// Quotes implements Provider.
func (p *FlatRateProvider) Quotes(ctx context.Context) ([]Quote, error) {
	if len(p.quotes) == 0 {
		return nil, ErrNoQuotes
	}

	result := make([]Quote, len(p.quotes))
	copy(result, p.quotes)
	return result, nil
}

// QuoteByCode implements Provider.
func (p *FlatRateProvider) QuoteByCode(ctx context.Context, code string) (*Quote, error) {
	for _, q := range p.quotes {
		if q.ServiceCode == code {
			quote := q
			return &quote, nil
		}
	}
	return nil, ErrUnknownOption
}
