package placing

import (
	"context"
	"errors"
	"time"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/pkg/railway"
)

// PlaceOrderCommand is the inbound command shape handed to the workflow
// by the transport layer.
type PlaceOrderCommand struct {
	Order     domain.UnvalidatedOrder
	Timestamp time.Time
	UserID    string
}

// Deps are the concrete capabilities the composition root binds into the
// workflow. Every field is required.
type Deps struct {
	CheckProductCodeExists CheckProductCodeExists
	CheckAddressExists     CheckAddressExists
	GetProductPrice        GetProductPrice
	CalculateShippingCost  CalculateShippingCost
	CreateLetter           CreateOrderAcknowledgmentLetter
	SendAcknowledgment     SendOrderAcknowledgment
}

// Workflow is the composition root of order placement: the one place
// where capabilities are partially applied into stages and the stages
// are chained. Each Place call is independent of every other, so any
// number of orders may flow through one Workflow concurrently.
type Workflow struct {
	deps Deps
}

func New(deps Deps) *Workflow {
	return &Workflow{deps: deps}
}

// Place runs validate -> price -> extend -> acknowledge -> events. A
// failure at any stage short-circuits the rest and comes back as exactly
// one of *domain.ValidationError, *domain.PricingError or
// *domain.ServiceError; partial results are never returned.
func (w *Workflow) Place(ctx context.Context, cmd PlaceOrderCommand) ([]domain.PlaceOrderEvent, error) {
	validated := railway.From(ValidateOrder(ctx, w.deps.CheckProductCodeExists, w.deps.CheckAddressExists, cmd.Order))

	priced := railway.Bind(validated, func(v domain.ValidatedOrder) railway.Result[domain.PricedOrder] {
		return railway.From(PriceOrder(ctx, w.deps.GetProductPrice, v))
	})

	extended := railway.Map(priced, func(p domain.PricedOrder) domain.PricedOrderWithShipping {
		return ApplyFreeShippingPromotion(AddShippingInfo(w.deps.CalculateShippingCost, p))
	})

	events := railway.Map(extended, func(p domain.PricedOrderWithShipping) []domain.PlaceOrderEvent {
		ack := AcknowledgeOrder(ctx, w.deps.CreateLetter, w.deps.SendAcknowledgment, p.Order)
		return CreateEvents(p.Order, ack)
	})

	return railway.MapError(events, normalizeError).Unpack()
}

// normalizeError keeps the contract boundary honest: whatever a stage
// produced, the caller sees one of the three pipeline error types.
func normalizeError(err error) error {
	var (
		validationErr *domain.ValidationError
		pricingErr    *domain.PricingError
		serviceErr    *domain.ServiceError
	)
	switch {
	case errors.As(err, &validationErr):
		return validationErr
	case errors.As(err, &pricingErr):
		return pricingErr
	case errors.As(err, &serviceErr):
		return serviceErr
	default:
		return &domain.ServiceError{Service: "place-order", Cause: err}
	}
}

// Outcome labels used by transports and metrics when classifying a Place
// result.
const (
	OutcomePlaced          = "placed"
	OutcomeValidationError = "validation_error"
	OutcomePricingError    = "pricing_error"
	OutcomeServiceError    = "service_error"
)

// ClassifyError maps a Place error onto its outcome label.
func ClassifyError(err error) string {
	var (
		validationErr *domain.ValidationError
		pricingErr    *domain.PricingError
	)
	switch {
	case err == nil:
		return OutcomePlaced
	case errors.As(err, &validationErr):
		return OutcomeValidationError
	case errors.As(err, &pricingErr):
		return OutcomePricingError
	default:
		return OutcomeServiceError
	}
}
