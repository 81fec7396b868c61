package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ConstraintKind enumerates every way a smart constructor can reject raw
// input. The set is closed: callers may switch on it exhaustively.
type ConstraintKind string

const (
	ConstraintEmpty           ConstraintKind = "EMPTY"
	ConstraintTooLong         ConstraintKind = "TOO_LONG"
	ConstraintBelowMin        ConstraintKind = "BELOW_MIN"
	ConstraintAboveMax        ConstraintKind = "ABOVE_MAX"
	ConstraintPatternMismatch ConstraintKind = "PATTERN_MISMATCH"
	ConstraintNotWholeNumber  ConstraintKind = "NOT_WHOLE_NUMBER"
)

// ConstraintError reports that raw input violated a value invariant.
// Limit carries the violated bound ("50", "100.00") when one applies.
type ConstraintError struct {
	Field string
	Kind  ConstraintKind
	Limit string
}

func (e *ConstraintError) Error() string {
	if e.Limit != "" {
		return fmt.Sprintf("%s: %s (limit %s)", e.Field, e.Kind, e.Limit)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Kind)
}

// ProductCodeNotFoundError is a domain rejection: the code parses but no
// such product exists in the catalog.
type ProductCodeNotFoundError struct {
	Code string
}

func (e *ProductCodeNotFoundError) Error() string {
	return fmt.Sprintf("product code %q not found", e.Code)
}

// Address check domain rejections. Infrastructure failures of the check
// are a ServiceError instead, never one of these.
var (
	ErrAddressNotFound      = errors.New("address not found")
	ErrAddressInvalidFormat = errors.New("address format not recognized")
)

// ValidationFailure is one rejected field or order line. Line holds the
// order line id, or "" for order-level fields (id, customer, addresses).
type ValidationFailure struct {
	Line  string
	Cause error
}

func (f ValidationFailure) Error() string {
	if f.Line != "" {
		return fmt.Sprintf("line %s: %v", f.Line, f.Cause)
	}
	return f.Cause.Error()
}

// ValidationError aggregates every failure found in one order. The
// validation stage collects all of them rather than stopping at the
// first, so a caller can fix an entire bad request in one round trip.
type ValidationError struct {
	Failures []ValidationFailure
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	return "order validation failed: " + strings.Join(msgs, "; ")
}

// PricingErrorKind is the closed set of pricing failures.
type PricingErrorKind string

const (
	PricingUnknownCode      PricingErrorKind = "UNKNOWN_PRODUCT_CODE"
	PricingAmountOutOfRange PricingErrorKind = "AMOUNT_OUT_OF_RANGE"
)

type PricingError struct {
	Kind PricingErrorKind
	Code string // product code involved, when relevant
}

func (e *PricingError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("pricing failed: %s (%s)", e.Kind, e.Code)
	}
	return fmt.Sprintf("pricing failed: %s", e.Kind)
}

// ServiceError wraps an infrastructure failure from a remote capability
// (timeout, auth, transport). It is deliberately distinct from the
// domain rejections above so callers can retry without treating the
// order as permanently invalid.
type ServiceError struct {
	Service string
	Cause   error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service %s failed: %v", e.Service, e.Cause)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}
