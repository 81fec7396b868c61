package domain

// The order lifecycle is three distinct record types, one per state.
// Each stage consumes one state and produces the next; handing a
// PricedOrder to a stage that wants a ValidatedOrder does not compile.
// Records are values and are never mutated after construction.

// UnvalidatedOrder is the untrusted inbound document. Raw strings and
// numbers only; any field may be malformed.
type UnvalidatedOrder struct {
	OrderID         string
	CustomerInfo    UnvalidatedCustomerInfo
	ShippingAddress UnvalidatedAddress
	BillingAddress  UnvalidatedAddress
	Lines           []UnvalidatedOrderLine
}

type UnvalidatedCustomerInfo struct {
	FirstName    string
	LastName     string
	EmailAddress string
}

type UnvalidatedAddress struct {
	AddressLine1 string
	AddressLine2 string
	AddressLine3 string
	AddressLine4 string
	City         string
	ZipCode      string
}

type UnvalidatedOrderLine struct {
	OrderLineID string
	ProductCode string
	// Quantity is raw and unitless; validation decides units vs kilograms
	// from the product code.
	Quantity float64
}

// PersonalName is a validated customer name.
type PersonalName struct {
	FirstName String50
	LastName  String50
}

type CustomerInfo struct {
	Name         PersonalName
	EmailAddress EmailAddress
}

// Address is a validated, existence-confirmed postal address.
// Lines 2-4 are optional.
type Address struct {
	AddressLine1 String50
	AddressLine2 *String50
	AddressLine3 *String50
	AddressLine4 *String50
	City         String50
	ZipCode      ZipCode
}

type ValidatedOrderLine struct {
	OrderLineID OrderLineID
	ProductCode ProductCode
	Quantity    OrderQuantity
}

// ValidatedOrder has every field constraint-checked, both addresses
// confirmed to exist, and at least one validated line.
type ValidatedOrder struct {
	OrderID         OrderID
	CustomerInfo    CustomerInfo
	ShippingAddress Address
	BillingAddress  Address
	Lines           []ValidatedOrderLine
}

type PricedOrderLine struct {
	OrderLineID OrderLineID
	ProductCode ProductCode
	Quantity    OrderQuantity
	LinePrice   Price
}

// PricedOrder carries the billing total. AmountToBill always equals the
// sum of the line prices: NewPricedOrder is the only constructor and
// computes it there, once.
type PricedOrder struct {
	OrderID         OrderID
	CustomerInfo    CustomerInfo
	ShippingAddress Address
	BillingAddress  Address
	Lines           []PricedOrderLine
	AmountToBill    BillingAmount
}

func NewPricedOrder(validated ValidatedOrder, lines []PricedOrderLine) (PricedOrder, error) {
	prices := make([]Price, 0, len(lines))
	for _, l := range lines {
		prices = append(prices, l.LinePrice)
	}
	amount, err := SumPrices(prices)
	if err != nil {
		return PricedOrder{}, err
	}
	return PricedOrder{
		OrderID:         validated.OrderID,
		CustomerInfo:    validated.CustomerInfo,
		ShippingAddress: validated.ShippingAddress,
		BillingAddress:  validated.BillingAddress,
		Lines:           lines,
		AmountToBill:    amount,
	}, nil
}

// ShippingMethod is how a priced order will be delivered.
type ShippingMethod string

const (
	ShippingPostalService ShippingMethod = "POSTAL_SERVICE"
	ShippingFedex24       ShippingMethod = "FEDEX_24"
	ShippingFedex48       ShippingMethod = "FEDEX_48"
	ShippingUps48         ShippingMethod = "UPS_48"
)

type ShippingInfo struct {
	Method ShippingMethod
	// Cost is carried separately from AmountToBill so the amount
	// invariant on PricedOrder stays intact.
	Cost Price
}

// PricedOrderWithShipping is the output of the optional extension stages
// inserted between pricing and acknowledgment. It wraps the priced order
// without modifying it.
type PricedOrderWithShipping struct {
	Order        PricedOrder
	ShippingInfo ShippingInfo
}
