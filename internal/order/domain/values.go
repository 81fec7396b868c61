// Package domain holds the order-placement domain model: constrained
// primitive values that cannot exist in an invalid state, the
// Unvalidated/Validated/Priced order lifecycle, the placement events and
// the per-stage error taxonomy.
//
// Every constrained type keeps its raw value unexported and is obtainable
// only through its New constructor, so any instance seen downstream
// already satisfies its invariant and never needs rechecking.
package domain

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

const maxStringLength = 50

var (
	widgetCodePattern = regexp.MustCompile(`^W\d{4}$`)
	gizmoCodePattern  = regexp.MustCompile(`^G\d{3}$`)
	emailPattern      = regexp.MustCompile(`^\S+@\S+$`)
	zipCodePattern    = regexp.MustCompile(`^\d{5}$`)

	minUnitQuantity = decimal.NewFromInt(1)
	maxUnitQuantity = decimal.NewFromInt(1000)
	minKilogramQty  = decimal.RequireFromString("0.05")
	maxKilogramQty  = decimal.RequireFromString("100.00")
	maxPrice        = decimal.NewFromInt(1000)
	maxBilling      = decimal.NewFromInt(10000)
)

func newBoundedString(field, raw string) (string, error) {
	if raw == "" {
		return "", &ConstraintError{Field: field, Kind: ConstraintEmpty}
	}
	if len(raw) > maxStringLength {
		return "", &ConstraintError{Field: field, Kind: ConstraintTooLong, Limit: strconv.Itoa(maxStringLength)}
	}
	return raw, nil
}

// String50 is a non-empty string of at most 50 characters.
type String50 struct {
	value string
}

func NewString50(field, raw string) (String50, error) {
	v, err := newBoundedString(field, raw)
	if err != nil {
		return String50{}, err
	}
	return String50{value: v}, nil
}

// NewOptionalString50 treats empty input as absent rather than invalid.
func NewOptionalString50(field, raw string) (*String50, error) {
	if raw == "" {
		return nil, nil
	}
	s, err := NewString50(field, raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (s String50) String() string { return s.value }

// OrderID identifies one order; non-empty, at most 50 characters.
type OrderID struct {
	value string
}

func NewOrderID(raw string) (OrderID, error) {
	v, err := newBoundedString("OrderID", raw)
	if err != nil {
		return OrderID{}, err
	}
	return OrderID{value: v}, nil
}

func (id OrderID) String() string { return id.value }

// OrderLineID identifies one line within an order.
type OrderLineID struct {
	value string
}

func NewOrderLineID(raw string) (OrderLineID, error) {
	v, err := newBoundedString("OrderLineID", raw)
	if err != nil {
		return OrderLineID{}, err
	}
	return OrderLineID{value: v}, nil
}

func (id OrderLineID) String() string { return id.value }

// EmailAddress is a syntactically plausible email address.
type EmailAddress struct {
	value string
}

func NewEmailAddress(raw string) (EmailAddress, error) {
	if raw == "" {
		return EmailAddress{}, &ConstraintError{Field: "EmailAddress", Kind: ConstraintEmpty}
	}
	if !emailPattern.MatchString(raw) {
		return EmailAddress{}, &ConstraintError{Field: "EmailAddress", Kind: ConstraintPatternMismatch}
	}
	return EmailAddress{value: raw}, nil
}

func (e EmailAddress) String() string { return e.value }

// ZipCode is a five-digit postal code.
type ZipCode struct {
	value string
}

func NewZipCode(raw string) (ZipCode, error) {
	if raw == "" {
		return ZipCode{}, &ConstraintError{Field: "ZipCode", Kind: ConstraintEmpty}
	}
	if !zipCodePattern.MatchString(raw) {
		return ZipCode{}, &ConstraintError{Field: "ZipCode", Kind: ConstraintPatternMismatch}
	}
	return ZipCode{value: raw}, nil
}

func (z ZipCode) String() string { return z.value }

// ProductCodeKind discriminates the two product families.
type ProductCodeKind string

const (
	WidgetCode ProductCodeKind = "WIDGET"
	GizmoCode  ProductCodeKind = "GIZMO"
)

// ProductCode is a tagged union: Widget codes are "W" plus 4 digits,
// Gizmo codes are "G" plus 3 digits. The kind drives which quantity
// variant the associated order line must carry.
type ProductCode struct {
	kind ProductCodeKind
	code string
}

func NewProductCode(raw string) (ProductCode, error) {
	switch {
	case raw == "":
		return ProductCode{}, &ConstraintError{Field: "ProductCode", Kind: ConstraintEmpty}
	case widgetCodePattern.MatchString(raw):
		return ProductCode{kind: WidgetCode, code: raw}, nil
	case gizmoCodePattern.MatchString(raw):
		return ProductCode{kind: GizmoCode, code: raw}, nil
	default:
		return ProductCode{}, &ConstraintError{Field: "ProductCode", Kind: ConstraintPatternMismatch}
	}
}

func (p ProductCode) Kind() ProductCodeKind { return p.kind }
func (p ProductCode) String() string        { return p.code }

// QuantityKind discriminates the two order quantity variants.
type QuantityKind string

const (
	UnitQuantity     QuantityKind = "UNIT"
	KilogramQuantity QuantityKind = "KILOGRAM"
)

// OrderQuantity is either a whole unit count (widgets, 1-1000) or a
// kilogram weight (gizmos, 0.05-100.00). The variant is selected by the
// product code, so constructing a quantity requires the code.
type OrderQuantity struct {
	kind  QuantityKind
	value decimal.Decimal
}

func NewOrderQuantity(code ProductCode, raw decimal.Decimal) (OrderQuantity, error) {
	switch code.Kind() {
	case WidgetCode:
		if !raw.IsInteger() {
			return OrderQuantity{}, &ConstraintError{Field: "OrderQuantity", Kind: ConstraintNotWholeNumber}
		}
		if raw.LessThan(minUnitQuantity) {
			return OrderQuantity{}, &ConstraintError{Field: "OrderQuantity", Kind: ConstraintBelowMin, Limit: minUnitQuantity.String()}
		}
		if raw.GreaterThan(maxUnitQuantity) {
			return OrderQuantity{}, &ConstraintError{Field: "OrderQuantity", Kind: ConstraintAboveMax, Limit: maxUnitQuantity.String()}
		}
		return OrderQuantity{kind: UnitQuantity, value: raw}, nil
	default:
		if raw.LessThan(minKilogramQty) {
			return OrderQuantity{}, &ConstraintError{Field: "OrderQuantity", Kind: ConstraintBelowMin, Limit: minKilogramQty.String()}
		}
		if raw.GreaterThan(maxKilogramQty) {
			return OrderQuantity{}, &ConstraintError{Field: "OrderQuantity", Kind: ConstraintAboveMax, Limit: maxKilogramQty.String()}
		}
		return OrderQuantity{kind: KilogramQuantity, value: raw}, nil
	}
}

func (q OrderQuantity) Kind() QuantityKind     { return q.kind }
func (q OrderQuantity) Value() decimal.Decimal { return q.value }

// Price is a non-negative amount of money, at most 1000.00 per line.
type Price struct {
	amount decimal.Decimal
}

func NewPrice(raw decimal.Decimal) (Price, error) {
	if raw.IsNegative() {
		return Price{}, &ConstraintError{Field: "Price", Kind: ConstraintBelowMin, Limit: "0"}
	}
	if raw.GreaterThan(maxPrice) {
		return Price{}, &ConstraintError{Field: "Price", Kind: ConstraintAboveMax, Limit: maxPrice.String()}
	}
	return Price{amount: raw}, nil
}

func (p Price) Amount() decimal.Decimal { return p.amount }

// Multiply scales a unit price by a quantity, revalidating the bound.
func (p Price) Multiply(qty decimal.Decimal) (Price, error) {
	return NewPrice(p.amount.Mul(qty))
}

// BillingAmount is the total billed for one order, at most 10000.00.
type BillingAmount struct {
	amount decimal.Decimal
}

func NewBillingAmount(raw decimal.Decimal) (BillingAmount, error) {
	if raw.IsNegative() {
		return BillingAmount{}, &ConstraintError{Field: "BillingAmount", Kind: ConstraintBelowMin, Limit: "0"}
	}
	if raw.GreaterThan(maxBilling) {
		return BillingAmount{}, &ConstraintError{Field: "BillingAmount", Kind: ConstraintAboveMax, Limit: maxBilling.String()}
	}
	return BillingAmount{amount: raw}, nil
}

// SumPrices folds line prices into a billing amount.
func SumPrices(prices []Price) (BillingAmount, error) {
	total := decimal.Zero
	for _, p := range prices {
		total = total.Add(p.amount)
	}
	return NewBillingAmount(total)
}

func (b BillingAmount) Amount() decimal.Decimal { return b.amount }
func (b BillingAmount) IsPositive() bool        { return b.amount.IsPositive() }
