package shopify

import (
	"time"

	"github.com/corray333/backend-labs/presale/internal/service/models/fulfillment"
)

// Wire-level shapes of the Admin API connection envelopes. Kept separate from
// the service models so query documents and edges/node nesting stay out of
// the rest of the codebase.

type edges[T any] struct {
	Edges []struct {
		Node T `json:"node"`
	} `json:"edges"`
}

type locationNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type lineItemNode struct {
	ID                string `json:"id"`
	RemainingQuantity int    `json:"remainingQuantity"`
	LineItem          struct {
		Title string `json:"title"`
	} `json:"lineItem"`
}

type fulfillmentOrderNode struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	AssignedLocation struct {
		Location struct {
			ID string `json:"id"`
		} `json:"location"`
	} `json:"assignedLocation"`
	LineItems edges[lineItemNode] `json:"lineItems"`
}

type orderNode struct {
	ID                string                      `json:"id"`
	Name              string                      `json:"name"`
	CreatedAt         time.Time                   `json:"createdAt"`
	Tags              []string                    `json:"tags"`
	FulfillmentOrders edges[fulfillmentOrderNode] `json:"fulfillmentOrders"`
}

func (n *fulfillmentOrderNode) toModel() fulfillment.FulfillmentOrder {
	items := make([]fulfillment.LineItem, 0, len(n.LineItems.Edges))
	for _, e := range n.LineItems.Edges {
		items = append(items, fulfillment.LineItem{
			ID:                e.Node.ID,
			Title:             e.Node.LineItem.Title,
			RemainingQuantity: e.Node.RemainingQuantity,
		})
	}

	return fulfillment.FulfillmentOrder{
		ID:                 n.ID,
		Status:             fulfillment.Status(n.Status),
		AssignedLocationID: n.AssignedLocation.Location.ID,
		LineItems:          items,
	}
}

func (n *orderNode) toModel() fulfillment.Order {
	fos := make([]fulfillment.FulfillmentOrder, 0, len(n.FulfillmentOrders.Edges))
	for _, e := range n.FulfillmentOrders.Edges {
		fo := e.Node
		fos = append(fos, fo.toModel())
	}

	return fulfillment.Order{
		ID:                n.ID,
		Name:              n.Name,
		CreatedAt:         n.CreatedAt,
		Tags:              n.Tags,
		FulfillmentOrders: fos,
	}
}
