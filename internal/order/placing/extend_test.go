package placing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/placing"
)

func TestAddShippingInfoLeavesAmountAlone(t *testing.T) {
	priced := mustPriced(t)
	extended := placing.AddShippingInfo(flatShipping("5.00"), priced)

	assert.Equal(t, priced, extended.Order)
	assert.Equal(t, domain.ShippingPostalService, extended.ShippingInfo.Method)
	assert.True(t, extended.ShippingInfo.Cost.Amount().Equal(decimal.RequireFromString("5.00")))
	assert.True(t, extended.Order.AmountToBill.Amount().Equal(priced.AmountToBill.Amount()))
}

func TestAddShippingInfoRemoteZipGoesByCourier(t *testing.T) {
	order := sampleUnvalidated()
	order.ShippingAddress.ZipCode = "90210"
	validated, err := placing.ValidateOrder(context.Background(), allCodesExist, okAddressCheck, order)
	require.NoError(t, err)
	priced, err := placing.PriceOrder(context.Background(), defaultPrices(), validated)
	require.NoError(t, err)

	extended := placing.AddShippingInfo(flatShipping("5.00"), priced)
	assert.Equal(t, domain.ShippingFedex48, extended.ShippingInfo.Method)
}

func TestApplyFreeShippingPromotion(t *testing.T) {
	// 47.50 total: below threshold, cost stays.
	small := placing.AddShippingInfo(flatShipping("5.00"), mustPriced(t))
	kept := placing.ApplyFreeShippingPromotion(small)
	assert.True(t, kept.ShippingInfo.Cost.Amount().Equal(decimal.RequireFromString("5.00")))

	// Push the total above 100 with a bigger widget line.
	order := sampleUnvalidated()
	order.Lines = []domain.UnvalidatedOrderLine{
		{OrderLineID: "line-1", ProductCode: "W1234", Quantity: 100},
	}
	validated, err := placing.ValidateOrder(context.Background(), allCodesExist, okAddressCheck, order)
	require.NoError(t, err)
	priced, err := placing.PriceOrder(context.Background(), defaultPrices(), validated)
	require.NoError(t, err)

	big := placing.AddShippingInfo(flatShipping("5.00"), priced)
	free := placing.ApplyFreeShippingPromotion(big)
	assert.True(t, free.ShippingInfo.Cost.Amount().IsZero())
	assert.Equal(t, big.Order, free.Order)
}
