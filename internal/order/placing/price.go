package placing

import (
	"context"
	"errors"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
)

// PriceOrder maps every validated line to a priced one and establishes
// AmountToBill. The type-state guarantees the input is already fully
// constraint-checked, so the only failures left are pricing ones: an
// unknown code at the price lookup, or a total outside the billable
// range.
func PriceOrder(ctx context.Context, getPrice GetProductPrice, validated domain.ValidatedOrder) (domain.PricedOrder, error) {
	lines := make([]domain.PricedOrderLine, 0, len(validated.Lines))
	for _, line := range validated.Lines {
		unitPrice, err := getPrice(ctx, line.ProductCode)
		if err != nil {
			var pricingErr *domain.PricingError
			if errors.As(err, &pricingErr) {
				return domain.PricedOrder{}, pricingErr
			}
			var svcErr *domain.ServiceError
			if errors.As(err, &svcErr) {
				return domain.PricedOrder{}, svcErr
			}
			return domain.PricedOrder{}, &domain.PricingError{Kind: domain.PricingUnknownCode, Code: line.ProductCode.String()}
		}
		linePrice, err := unitPrice.Multiply(line.Quantity.Value())
		if err != nil {
			return domain.PricedOrder{}, &domain.PricingError{Kind: domain.PricingAmountOutOfRange, Code: line.ProductCode.String()}
		}
		lines = append(lines, domain.PricedOrderLine{
			OrderLineID: line.OrderLineID,
			ProductCode: line.ProductCode,
			Quantity:    line.Quantity,
			LinePrice:   linePrice,
		})
	}

	priced, err := domain.NewPricedOrder(validated, lines)
	if err != nil {
		return domain.PricedOrder{}, &domain.PricingError{Kind: domain.PricingAmountOutOfRange}
	}
	return priced, nil
}
