package placing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/pkg/railway"
)

// lineCheckConcurrency caps the per-line fan-out so a huge order cannot
// flood the catalog with existence checks.
const lineCheckConcurrency = 8

// ValidateOrder turns an untrusted order into a ValidatedOrder, or
// reports why it cannot. Aggregation is collect-all: every bad field and
// every bad line shows up in the returned *domain.ValidationError so the
// caller can fix the whole request in one round trip.
//
// An address check that fails for infrastructure reasons is returned as
// the *domain.ServiceError it is, immediately and alone; it says nothing
// about whether the order is valid.
func ValidateOrder(ctx context.Context, checkCode CheckProductCodeExists, checkAddress CheckAddressExists, unvalidated domain.UnvalidatedOrder) (domain.ValidatedOrder, error) {
	var failures []domain.ValidationFailure
	collect := func(err error) {
		failures = append(failures, domain.ValidationFailure{Cause: err})
	}

	orderID, err := domain.NewOrderID(unvalidated.OrderID)
	if err != nil {
		collect(err)
	}

	customer, errs := validateCustomerInfo(unvalidated.CustomerInfo)
	for _, e := range errs {
		collect(e)
	}

	shipping, err := validateAddress(ctx, checkAddress, "shipping address", unvalidated.ShippingAddress)
	if err != nil {
		var svcErr *domain.ServiceError
		if errors.As(err, &svcErr) {
			return domain.ValidatedOrder{}, svcErr
		}
		collect(err)
	}
	billing, err := validateAddress(ctx, checkAddress, "billing address", unvalidated.BillingAddress)
	if err != nil {
		var svcErr *domain.ServiceError
		if errors.As(err, &svcErr) {
			return domain.ValidatedOrder{}, svcErr
		}
		collect(err)
	}

	if len(unvalidated.Lines) == 0 {
		collect(&domain.ConstraintError{Field: "Lines", Kind: domain.ConstraintEmpty})
	}

	// Lines are independent of each other, so their code checks fan out
	// concurrently and join here before the order moves on.
	results := make([]railway.Result[domain.ValidatedOrderLine], len(unvalidated.Lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lineCheckConcurrency)
	for i, raw := range unvalidated.Lines {
		g.Go(func() error {
			results[i] = railway.MapError(
				validateLine(gctx, checkCode, raw),
				func(err error) error {
					return domain.ValidationFailure{Line: raw.OrderLineID, Cause: err}
				},
			)
			return nil
		})
	}
	_ = g.Wait()

	lines, lineErrs := railway.Partition(results)
	for _, e := range lineErrs {
		var f domain.ValidationFailure
		if errors.As(e, &f) {
			failures = append(failures, f)
		} else {
			collect(e)
		}
	}

	if len(failures) > 0 {
		return domain.ValidatedOrder{}, &domain.ValidationError{Failures: failures}
	}

	return domain.ValidatedOrder{
		OrderID:         orderID,
		CustomerInfo:    customer,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		Lines:           lines,
	}, nil
}

func validateCustomerInfo(raw domain.UnvalidatedCustomerInfo) (domain.CustomerInfo, []error) {
	var errs []error

	first, err := domain.NewString50("FirstName", raw.FirstName)
	if err != nil {
		errs = append(errs, err)
	}
	last, err := domain.NewString50("LastName", raw.LastName)
	if err != nil {
		errs = append(errs, err)
	}
	email, err := domain.NewEmailAddress(raw.EmailAddress)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return domain.CustomerInfo{}, errs
	}
	return domain.CustomerInfo{
		Name:         domain.PersonalName{FirstName: first, LastName: last},
		EmailAddress: email,
	}, nil
}

// validateAddress confirms existence through the remote check and only
// then builds the constrained Address from the checked response.
func validateAddress(ctx context.Context, checkAddress CheckAddressExists, which string, raw domain.UnvalidatedAddress) (domain.Address, error) {
	checked, err := checkAddress(ctx, raw)
	if err != nil {
		var svcErr *domain.ServiceError
		if errors.As(err, &svcErr) {
			return domain.Address{}, svcErr
		}
		return domain.Address{}, fmt.Errorf("%s: %w", which, err)
	}

	var errs []error
	line1, err := domain.NewString50("AddressLine1", checked.Address.AddressLine1)
	if err != nil {
		errs = append(errs, err)
	}
	line2, err := domain.NewOptionalString50("AddressLine2", checked.Address.AddressLine2)
	if err != nil {
		errs = append(errs, err)
	}
	line3, err := domain.NewOptionalString50("AddressLine3", checked.Address.AddressLine3)
	if err != nil {
		errs = append(errs, err)
	}
	line4, err := domain.NewOptionalString50("AddressLine4", checked.Address.AddressLine4)
	if err != nil {
		errs = append(errs, err)
	}
	city, err := domain.NewString50("City", checked.Address.City)
	if err != nil {
		errs = append(errs, err)
	}
	zip, err := domain.NewZipCode(checked.Address.ZipCode)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return domain.Address{}, fmt.Errorf("%s: %w", which, errors.Join(errs...))
	}

	return domain.Address{
		AddressLine1: line1,
		AddressLine2: line2,
		AddressLine3: line3,
		AddressLine4: line4,
		City:         city,
		ZipCode:      zip,
	}, nil
}

// validateLine checks one raw line: id, code syntax, code existence, and
// a quantity in the unit the code's variant implies. All problems found
// in the line are joined into one error.
func validateLine(ctx context.Context, checkCode CheckProductCodeExists, raw domain.UnvalidatedOrderLine) railway.Result[domain.ValidatedOrderLine] {
	var errs []error

	lineID, err := domain.NewOrderLineID(raw.OrderLineID)
	if err != nil {
		errs = append(errs, err)
	}

	var qty domain.OrderQuantity
	code, err := domain.NewProductCode(raw.ProductCode)
	if err != nil {
		errs = append(errs, err)
	} else if !checkCode(ctx, code) {
		errs = append(errs, &domain.ProductCodeNotFoundError{Code: raw.ProductCode})
	} else {
		// The quantity variant depends on the code, so it is only
		// checkable once the code itself is good.
		q, qerr := domain.NewOrderQuantity(code, decimal.NewFromFloat(raw.Quantity))
		if qerr != nil {
			errs = append(errs, qerr)
		}
		qty = q
	}

	if len(errs) > 0 {
		return railway.Err[domain.ValidatedOrderLine](errors.Join(errs...))
	}

	return railway.Ok(domain.ValidatedOrderLine{
		OrderLineID: lineID,
		ProductCode: code,
		Quantity:    qty,
	})
}
