package placing

import (
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
)

// CreateEvents folds a priced order and the optional acknowledgment into
// the workflow's output. Pure and deterministic: the same inputs always
// produce the same list in the same order (acknowledgment, order-placed,
// billable). The ordering carries no meaning for consumers but staying
// fixed keeps assertions simple.
func CreateEvents(priced domain.PricedOrder, ack *domain.OrderAcknowledgmentSent) []domain.PlaceOrderEvent {
	events := make([]domain.PlaceOrderEvent, 0, 3)
	if ack != nil {
		events = append(events, *ack)
	}
	events = append(events, domain.OrderPlaced{Order: priced})
	if priced.AmountToBill.IsPositive() {
		events = append(events, domain.BillableOrderPlaced{
			OrderID:        priced.OrderID,
			BillingAddress: priced.BillingAddress,
			AmountToBill:   priced.AmountToBill,
		})
	}
	return events
}
