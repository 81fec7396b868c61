package placing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/placing"
)

func testWorkflow(send placing.SendOrderAcknowledgment) *placing.Workflow {
	return placing.New(placing.Deps{
		CheckProductCodeExists: allCodesExist,
		CheckAddressExists:     okAddressCheck,
		GetProductPrice:        defaultPrices(),
		CalculateShippingCost:  flatShipping("5.00"),
		CreateLetter:           plainLetter,
		SendAcknowledgment:     send,
	})
}

func testCommand() placing.PlaceOrderCommand {
	return placing.PlaceOrderCommand{
		Order:     sampleUnvalidated(),
		Timestamp: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		UserID:    "user-1",
	}
}

func TestWorkflowPlaceHappyPath(t *testing.T) {
	events, err := testWorkflow(alwaysSend).Place(context.Background(), testCommand())
	require.NoError(t, err)
	require.Len(t, events, 3)

	ack, ok := events[0].(domain.OrderAcknowledgmentSent)
	require.True(t, ok)
	assert.Equal(t, "order-1", ack.OrderID.String())

	placed, ok := events[1].(domain.OrderPlaced)
	require.True(t, ok)
	sum := placed.Order.Lines[0].LinePrice.Amount().Add(placed.Order.Lines[1].LinePrice.Amount())
	assert.True(t, placed.Order.AmountToBill.Amount().Equal(sum))

	_, ok = events[2].(domain.BillableOrderPlaced)
	assert.True(t, ok)
}

func TestWorkflowPlaceNotSentStillPlaces(t *testing.T) {
	events, err := testWorkflow(neverSend).Place(context.Background(), testCommand())
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, e := range events {
		_, isAck := e.(domain.OrderAcknowledgmentSent)
		assert.False(t, isAck)
	}
}

func TestWorkflowPlaceValidationFailureShortCircuits(t *testing.T) {
	priceCalls := 0
	countingPrices := func(ctx context.Context, code domain.ProductCode) (domain.Price, error) {
		priceCalls++
		return defaultPrices()(ctx, code)
	}
	workflow := placing.New(placing.Deps{
		CheckProductCodeExists: allCodesExist,
		CheckAddressExists:     okAddressCheck,
		GetProductPrice:        countingPrices,
		CalculateShippingCost:  flatShipping("5.00"),
		CreateLetter:           plainLetter,
		SendAcknowledgment:     alwaysSend,
	})

	cmd := testCommand()
	cmd.Order.OrderID = ""

	events, err := workflow.Place(context.Background(), cmd)
	assert.Nil(t, events)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, priceCalls, "pricing must not run after a validation failure")
}

func TestWorkflowPlaceServiceError(t *testing.T) {
	workflow := placing.New(placing.Deps{
		CheckProductCodeExists: allCodesExist,
		CheckAddressExists: func(context.Context, domain.UnvalidatedAddress) (placing.CheckedAddress, error) {
			return placing.CheckedAddress{}, &domain.ServiceError{Service: "address-service", Cause: errors.New("timeout")}
		},
		GetProductPrice:       defaultPrices(),
		CalculateShippingCost: flatShipping("5.00"),
		CreateLetter:          plainLetter,
		SendAcknowledgment:    alwaysSend,
	})

	events, err := workflow.Place(context.Background(), testCommand())
	assert.Nil(t, events)

	var svcErr *domain.ServiceError
	require.ErrorAs(t, err, &svcErr)
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, placing.OutcomePlaced, placing.ClassifyError(nil))
	assert.Equal(t, placing.OutcomeValidationError, placing.ClassifyError(&domain.ValidationError{}))
	assert.Equal(t, placing.OutcomePricingError, placing.ClassifyError(&domain.PricingError{Kind: domain.PricingUnknownCode}))
	assert.Equal(t, placing.OutcomeServiceError, placing.ClassifyError(&domain.ServiceError{Service: "catalog", Cause: errors.New("x")}))
	assert.Equal(t, placing.OutcomeServiceError, placing.ClassifyError(errors.New("unexpected")))
}

func TestWorkflowPlaceIsConcurrencySafe(t *testing.T) {
	workflow := testWorkflow(alwaysSend)
	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := workflow.Place(context.Background(), testCommand())
			done <- err
		}()
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, <-done)
	}
}
