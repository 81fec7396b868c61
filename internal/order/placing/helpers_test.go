package placing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/placing"
)

func allCodesExist(context.Context, domain.ProductCode) bool { return true }

func okAddressCheck(_ context.Context, addr domain.UnvalidatedAddress) (placing.CheckedAddress, error) {
	return placing.CheckedAddress{Address: addr}, nil
}

func tablePrices(prices map[string]string) placing.GetProductPrice {
	return func(_ context.Context, code domain.ProductCode) (domain.Price, error) {
		raw, ok := prices[code.String()]
		if !ok {
			return domain.Price{}, &domain.PricingError{Kind: domain.PricingUnknownCode, Code: code.String()}
		}
		return domain.NewPrice(decimal.RequireFromString(raw))
	}
}

func defaultPrices() placing.GetProductPrice {
	return tablePrices(map[string]string{"W1234": "3.00", "G123": "7.00"})
}

func flatShipping(raw string) placing.CalculateShippingCost {
	return func(domain.PricedOrder) domain.Price {
		price, err := domain.NewPrice(decimal.RequireFromString(raw))
		if err != nil {
			panic(err)
		}
		return price
	}
}

func plainLetter(order domain.PricedOrder) placing.Letter {
	return placing.Letter{Body: "Thank you for your order " + order.OrderID.String() + "."}
}

func alwaysSend(context.Context, placing.OrderAcknowledgment) placing.SendResult { return placing.Sent }

func neverSend(context.Context, placing.OrderAcknowledgment) placing.SendResult {
	return placing.NotSent
}

func sampleUnvalidated() domain.UnvalidatedOrder {
	address := domain.UnvalidatedAddress{
		AddressLine1: "1 Main St",
		City:         "Springfield",
		ZipCode:      "12345",
	}
	return domain.UnvalidatedOrder{
		OrderID: "order-1",
		CustomerInfo: domain.UnvalidatedCustomerInfo{
			FirstName:    "Ada",
			LastName:     "Lovelace",
			EmailAddress: "ada@example.com",
		},
		ShippingAddress: address,
		BillingAddress:  address,
		Lines: []domain.UnvalidatedOrderLine{
			{OrderLineID: "line-1", ProductCode: "W1234", Quantity: 10},
			{OrderLineID: "line-2", ProductCode: "G123", Quantity: 2.5},
		},
	}
}

func mustValidated(t *testing.T) domain.ValidatedOrder {
	t.Helper()
	validated, err := placing.ValidateOrder(context.Background(), allCodesExist, okAddressCheck, sampleUnvalidated())
	require.NoError(t, err)
	return validated
}

func mustPriced(t *testing.T) domain.PricedOrder {
	t.Helper()
	priced, err := placing.PriceOrder(context.Background(), defaultPrices(), mustValidated(t))
	require.NoError(t, err)
	return priced
}
