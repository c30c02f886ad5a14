package heldorder

import (
	"strings"
	"time"

	"github.com/corray333/backend-labs/presale/internal/service/models/fulfillment"
)

// View is the display projection of an order currently held at the pre-sale
// location. It is recomputed from live platform state on every listing and
// never persisted.
type View struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	LineItems string    `json:"lineItems"`
}

// FromOrder builds the view for an order using the line items of its
// fulfillment orders held at the given location.
func FromOrder(o *fulfillment.Order, locationID string) View {
	titles := make([]string, 0)
	for _, fo := range o.FulfillmentOrders {
		if fo.Status != fulfillment.StatusOnHold || fo.AssignedLocationID != locationID {
			continue
		}
		for _, item := range fo.LineItems {
			titles = append(titles, item.Title)
		}
	}

	return View{
		ID:        o.ID,
		Name:      o.Name,
		CreatedAt: o.CreatedAt,
		LineItems: strings.Join(titles, ", "),
	}
}
