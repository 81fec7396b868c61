// Package contracts defines the wire shape of placed-order events: the
// envelope every service agrees on, independent of the domain types.
package contracts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
)

type Event struct {
	EventID   string         `json:"event_id"`
	OrderID   string         `json:"order_id"`
	CreatedAt time.Time      `json:"created_at"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
}

const (
	EventOrderPlaced             = "order.placed"
	EventBillableOrderPlaced     = "order.billable"
	EventOrderAcknowledgmentSent = "order.acknowledgment_sent"
)

// FromDomain maps one placement's event list onto wire envelopes,
// preserving order. Event IDs are fresh UUIDs; CreatedAt is the
// placement timestamp for every envelope of the batch.
func FromDomain(events []domain.PlaceOrderEvent, placedAt time.Time) []Event {
	out := make([]Event, 0, len(events))
	for _, evt := range events {
		switch e := evt.(type) {
		case domain.OrderPlaced:
			out = append(out, Event{
				EventID:   uuid.NewString(),
				OrderID:   e.Order.OrderID.String(),
				CreatedAt: placedAt,
				Type:      EventOrderPlaced,
				Payload:   orderPlacedPayload(e.Order),
			})
		case domain.BillableOrderPlaced:
			out = append(out, Event{
				EventID:   uuid.NewString(),
				OrderID:   e.OrderID.String(),
				CreatedAt: placedAt,
				Type:      EventBillableOrderPlaced,
				Payload: map[string]any{
					"amount_to_bill":   e.AmountToBill.Amount().StringFixed(2),
					"billing_city":     e.BillingAddress.City.String(),
					"billing_zip_code": e.BillingAddress.ZipCode.String(),
				},
			})
		case domain.OrderAcknowledgmentSent:
			out = append(out, Event{
				EventID:   uuid.NewString(),
				OrderID:   e.OrderID.String(),
				CreatedAt: placedAt,
				Type:      EventOrderAcknowledgmentSent,
				Payload: map[string]any{
					"email_address": e.EmailAddress.String(),
				},
			})
		}
	}
	return out
}

func orderPlacedPayload(order domain.PricedOrder) map[string]any {
	lines := make([]map[string]any, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, map[string]any{
			"line_id":      l.OrderLineID.String(),
			"product_code": l.ProductCode.String(),
			"quantity":     l.Quantity.Value().String(),
			"line_price":   l.LinePrice.Amount().StringFixed(2),
		})
	}
	return map[string]any{
		"amount_to_bill": order.AmountToBill.Amount().StringFixed(2),
		"customer_email": order.CustomerInfo.EmailAddress.String(),
		"shipping_city":  order.ShippingAddress.City.String(),
		"lines":          lines,
	}
}

// ParseAmount reads a payload amount back into a decimal; consumers use
// it instead of touching float64.
func ParseAmount(raw any) (decimal.Decimal, bool) {
	s, ok := raw.(string)
	if !ok {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
