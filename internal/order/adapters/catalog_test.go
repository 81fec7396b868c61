package adapters_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/adapters"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
)

func mustCode(t *testing.T, raw string) domain.ProductCode {
	t.Helper()
	code, err := domain.NewProductCode(raw)
	require.NoError(t, err)
	return code
}

func TestMemoryCatalogCodeExists(t *testing.T) {
	catalog := adapters.NewMemoryCatalog(map[string]decimal.Decimal{
		"W1234": decimal.RequireFromString("3.00"),
	})

	assert.True(t, catalog.CodeExists(context.Background(), mustCode(t, "W1234")))
	assert.False(t, catalog.CodeExists(context.Background(), mustCode(t, "W9999")))
}

func TestMemoryCatalogUnitPrice(t *testing.T) {
	catalog := adapters.NewMemoryCatalog(map[string]decimal.Decimal{
		"G123": decimal.RequireFromString("7.00"),
	})

	price, err := catalog.UnitPrice(context.Background(), mustCode(t, "G123"))
	require.NoError(t, err)
	assert.True(t, price.Amount().Equal(decimal.NewFromInt(7)))

	_, err = catalog.UnitPrice(context.Background(), mustCode(t, "G999"))
	var perr *domain.PricingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, domain.PricingUnknownCode, perr.Kind)
	assert.Equal(t, "G999", perr.Code)
}

func TestMemoryCatalogCopiesInput(t *testing.T) {
	prices := map[string]decimal.Decimal{"W1234": decimal.RequireFromString("3.00")}
	catalog := adapters.NewMemoryCatalog(prices)
	delete(prices, "W1234")

	assert.True(t, catalog.CodeExists(context.Background(), mustCode(t, "W1234")))
}

func TestFlatShippingCost(t *testing.T) {
	calc := adapters.FlatShippingCost(decimal.RequireFromString("5.00"))
	cost := calc(samplePriced(t))
	assert.True(t, cost.Amount().Equal(decimal.RequireFromString("5.00")))
}

func TestFlatShippingCostOutOfRangeFallsBackToZero(t *testing.T) {
	calc := adapters.FlatShippingCost(decimal.NewFromInt(-1))
	cost := calc(samplePriced(t))
	assert.True(t, cost.Amount().IsZero())
}
