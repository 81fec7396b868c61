// Package placing implements the order placement workflow: four pure
// pipeline stages (validate, price, acknowledge, create events) plus the
// optional shipping extension stages, composed over the railway
// combinators. Stages receive every external capability as an ordinary
// parameter; only the Workflow composition root binds concrete ones.
package placing

import (
	"context"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
)

// CheckProductCodeExists reports whether a syntactically valid product
// code is present in the catalog. It is a plain predicate with no
// failure channel; validation adapts a false answer into a per-line
// rejection before composing.
type CheckProductCodeExists func(ctx context.Context, code domain.ProductCode) bool

// CheckedAddress is an address the address service confirmed to exist.
type CheckedAddress struct {
	Address domain.UnvalidatedAddress
}

// CheckAddressExists confirms an address with a remote service. Domain
// rejections come back as domain.ErrAddressNotFound or
// domain.ErrAddressInvalidFormat; transport and auth failures come back
// as *domain.ServiceError, never conflated with a rejection.
type CheckAddressExists func(ctx context.Context, addr domain.UnvalidatedAddress) (CheckedAddress, error)

// GetProductPrice looks up the unit price for a code that already passed
// the existence check. An unknown code is a *domain.PricingError.
type GetProductPrice func(ctx context.Context, code domain.ProductCode) (domain.Price, error)

// CalculateShippingCost prices delivery for a priced order. Pure.
type CalculateShippingCost func(order domain.PricedOrder) domain.Price

// Letter is a rendered acknowledgment body.
type Letter struct {
	Body string
}

// CreateOrderAcknowledgmentLetter renders the letter for a priced order. Pure.
type CreateOrderAcknowledgmentLetter func(order domain.PricedOrder) Letter

// OrderAcknowledgment is what gets handed to the sender.
type OrderAcknowledgment struct {
	EmailAddress domain.EmailAddress
	Letter       Letter
}

// SendResult is an outcome, not an error: a missed acknowledgment is a
// business-acceptable non-event, not a pipeline failure.
type SendResult string

const (
	Sent    SendResult = "SENT"
	NotSent SendResult = "NOT_SENT"
)

// SendOrderAcknowledgment delivers the acknowledgment letter.
type SendOrderAcknowledgment func(ctx context.Context, ack OrderAcknowledgment) SendResult
