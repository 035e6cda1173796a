package delivery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpetrenko/voltride/internal/delivery"
)

func TestFlatRateProvider_Quotes_SortedCheapestFirst(t *testing.T) {
	provider := delivery.NewFlatRateProvider([]delivery.Quote{
		{ServiceName: "Express Delivery", ServiceCode: "express", CostCents: 1500, DaysMin: 1, DaysMax: 2},
		{ServiceName: "Standard Delivery", ServiceCode: "standard", CostCents: 500, DaysMin: 3, DaysMax: 5},
	})

	quotes, err := provider.Quotes(context.Background())

	assert.NoError(t, err)
	assert.Len(t, quotes, 2)
	assert.Equal(t, "standard", quotes[0].ServiceCode)
	assert.Equal(t, int64(500), quotes[0].CostCents)
	assert.Equal(t, "express", quotes[1].ServiceCode)
	assert.Equal(t, int64(1500), quotes[1].CostCents)
}

func TestFlatRateProvider_Quotes_Empty(t *testing.T) {
	provider := delivery.NewFlatRateProvider(nil)

	quotes, err := provider.Quotes(context.Background())

	assert.Error(t, err)
	assert.True(t, errors.Is(err, delivery.ErrNoQuotes))
	assert.Nil(t, quotes)
}

func TestFlatRateProvider_QuoteByCode(t *testing.T) {
	provider := delivery.NewFlatRateProvider([]delivery.Quote{
		{ServiceName: "Standard Delivery", ServiceCode: "standard", CostCents: 500, DaysMin: 3, DaysMax: 5},
		{ServiceName: "Express Delivery", ServiceCode: "express", CostCents: 1500, DaysMin: 1, DaysMax: 2},
	})

	quote, err := provider.QuoteByCode(context.Background(), "express")

	assert.NoError(t, err)
	assert.Equal(t, "Express Delivery", quote.ServiceName)
	assert.Equal(t, int64(1500), quote.CostCents)
	assert.Equal(t, 1, quote.DaysMin)
	assert.Equal(t, 2, quote.DaysMax)
}

func TestFlatRateProvider_QuoteByCode_Unknown(t *testing.T) {
	provider := delivery.NewFlatRateProvider([]delivery.Quote{
		{ServiceName: "Standard Delivery", ServiceCode: "standard", CostCents: 500},
	})

	quote, err := provider.QuoteByCode(context.Background(), "overnight")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, delivery.ErrUnknownOption))
	assert.Nil(t, quote)
}

func TestFlatRateProvider_Quotes_ReturnsCopy(t *testing.T) {
	provider := delivery.NewFlatRateProvider([]delivery.Quote{
		{ServiceName: "Standard Delivery", ServiceCode: "standard", CostCents: 500},
	})

	first, err := provider.Quotes(context.Background())
	assert.NoError(t, err)

	first[0].CostCents = 9999

	second, err := provider.Quotes(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(500), second[0].CostCents, "mutating a returned slice must not affect the provider")
}
