package adapters_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/adapters"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/placing"
)

func sampleAddress() domain.UnvalidatedAddress {
	return domain.UnvalidatedAddress{
		AddressLine1: "1 Main St",
		City:         "Springfield",
		ZipCode:      "12345",
	}
}

func samplePriced(t *testing.T) domain.PricedOrder {
	t.Helper()
	catalog := adapters.NewMemoryCatalog(map[string]decimal.Decimal{
		"W1234": decimal.RequireFromString("3.00"),
		"G123":  decimal.RequireFromString("7.00"),
	})
	order := domain.UnvalidatedOrder{
		OrderID: "order-1",
		CustomerInfo: domain.UnvalidatedCustomerInfo{
			FirstName:    "Ada",
			LastName:     "Lovelace",
			EmailAddress: "ada@example.com",
		},
		ShippingAddress: sampleAddress(),
		BillingAddress:  sampleAddress(),
		Lines: []domain.UnvalidatedOrderLine{
			{OrderLineID: "line-1", ProductCode: "W1234", Quantity: 10},
			{OrderLineID: "line-2", ProductCode: "G123", Quantity: 2.5},
		},
	}
	okCheck := func(_ context.Context, addr domain.UnvalidatedAddress) (placing.CheckedAddress, error) {
		return placing.CheckedAddress{Address: addr}, nil
	}
	validated, err := placing.ValidateOrder(context.Background(), catalog.CodeExists, okCheck, order)
	require.NoError(t, err)
	priced, err := placing.PriceOrder(context.Background(), catalog.UnitPrice, validated)
	require.NoError(t, err)
	return priced
}
