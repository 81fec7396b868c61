package placing

import (
	"context"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
)

// AcknowledgeOrder renders and sends the acknowledgment letter. A failed
// send is not a pipeline error: the order stands, there is just no
// acknowledgment event, so the return is nil rather than an error.
func AcknowledgeOrder(ctx context.Context, createLetter CreateOrderAcknowledgmentLetter, send SendOrderAcknowledgment, priced domain.PricedOrder) *domain.OrderAcknowledgmentSent {
	ack := OrderAcknowledgment{
		EmailAddress: priced.CustomerInfo.EmailAddress,
		Letter:       createLetter(priced),
	}
	if send(ctx, ack) != Sent {
		return nil
	}
	return &domain.OrderAcknowledgmentSent{
		OrderID:      priced.OrderID,
		EmailAddress: priced.CustomerInfo.EmailAddress,
	}
}
