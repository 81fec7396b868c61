package domain

// PlaceOrderEvent is the sealed union of everything a successful
// placement can emit. The three events are independent records, not
// variants of one base struct; consumers switch on the concrete type.
type PlaceOrderEvent interface {
	isPlaceOrderEvent()
}

// OrderPlaced signals that the order passed the whole pipeline. It
// carries the complete priced order for downstream consumers (shipping,
// analytics).
type OrderPlaced struct {
	Order PricedOrder
}

// BillableOrderPlaced is emitted only when there is something to bill.
type BillableOrderPlaced struct {
	OrderID        OrderID
	BillingAddress Address
	AmountToBill   BillingAmount
}

// OrderAcknowledgmentSent is emitted only when the acknowledgment letter
// was actually delivered.
type OrderAcknowledgmentSent struct {
	OrderID      OrderID
	EmailAddress EmailAddress
}

func (OrderPlaced) isPlaceOrderEvent()             {}
func (BillableOrderPlaced) isPlaceOrderEvent()     {}
func (OrderAcknowledgmentSent) isPlaceOrderEvent() {}
