package placing

import (
	"github.com/shopspring/decimal"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
)

// Extension stages sit between pricing and acknowledgment. Each one is a
// pure function over the priced order; none of them touch the already
// established AmountToBill.

var freeShippingThreshold = decimal.NewFromInt(100)

// AddShippingInfo wraps a priced order with a delivery method and cost.
// Anything shipping to a remote zip range goes by courier, the rest by
// postal service; the cost itself comes from the injected calculator.
func AddShippingInfo(calc CalculateShippingCost, priced domain.PricedOrder) domain.PricedOrderWithShipping {
	method := domain.ShippingPostalService
	if priced.ShippingAddress.ZipCode.String() >= "90000" {
		method = domain.ShippingFedex48
	}
	return domain.PricedOrderWithShipping{
		Order: priced,
		ShippingInfo: domain.ShippingInfo{
			Method: method,
			Cost:   calc(priced),
		},
	}
}

// ApplyFreeShippingPromotion waives the shipping cost on orders billing
// above the promotion threshold. The order itself is untouched.
func ApplyFreeShippingPromotion(order domain.PricedOrderWithShipping) domain.PricedOrderWithShipping {
	if !order.Order.AmountToBill.Amount().GreaterThan(freeShippingThreshold) {
		return order
	}
	freeCost, err := domain.NewPrice(decimal.Zero)
	if err != nil {
		return order
	}
	return domain.PricedOrderWithShipping{
		Order: order.Order,
		ShippingInfo: domain.ShippingInfo{
			Method: order.ShippingInfo.Method,
			Cost:   freeCost,
		},
	}
}
