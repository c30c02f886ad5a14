package fulfillment

import "time"

// Status is the platform-side status of a fulfillment order.
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusOnHold Status = "ON_HOLD"
	StatusClosed Status = "CLOSED"
)

func (s Status) String() string {
	return string(s)
}

// Location is a platform inventory location.
type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LineItem is a fulfillment order line item as exposed by the platform.
type LineItem struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	RemainingQuantity int    `json:"remainingQuantity"`
}

// SplitLineItem names a line item and quantity to move into a new
// fulfillment order.
type SplitLineItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// FulfillmentOrder is one shippable unit of an order, assigned to a single
// location. Only the fields this service inspects are modeled.
type FulfillmentOrder struct {
	ID                 string     `json:"id"`
	Status             Status     `json:"status"`
	AssignedLocationID string     `json:"assignedLocationId"`
	LineItems          []LineItem `json:"lineItems"`
}

// Order is the platform order projection carrying its fulfillment orders.
// Tags are the order-level marker labels, not line-item properties.
type Order struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	CreatedAt         time.Time          `json:"createdAt"`
	Tags              []string           `json:"tags"`
	FulfillmentOrders []FulfillmentOrder `json:"fulfillmentOrders"`
}

// HeldAt reports whether any fulfillment order of o is currently on hold at
// the given location.
func (o *Order) HeldAt(locationID string) bool {
	return o.FindHeld(locationID) != nil
}

// FindHeld returns the first fulfillment order of o that is on hold at the
// given location, or nil.
func (o *Order) FindHeld(locationID string) *FulfillmentOrder {
	for i := range o.FulfillmentOrders {
		fo := &o.FulfillmentOrders[i]
		if fo.Status == StatusOnHold && fo.AssignedLocationID == locationID {
			return fo
		}
	}
	return nil
}
