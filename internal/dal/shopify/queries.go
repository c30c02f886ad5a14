package shopify

import (
	"context"
	"fmt"

	"github.com/corray333/backend-labs/presale/internal/service/models/fulfillment"
)

const orderFields = `
	id
	name
	createdAt
	tags
	fulfillmentOrders(first: 10) {
		edges {
			node {
				id
				status
				assignedLocation {
					location {
						id
					}
				}
				lineItems(first: 50) {
					edges {
						node {
							id
							remainingQuantity
							lineItem {
								title
							}
						}
					}
				}
			}
		}
	}`

const listLocationsQuery = `
query listLocations {
	locations(first: 50) {
		edges {
			node {
				id
				name
			}
		}
	}
}`

const listUnfulfilledOrdersQuery = `
query listUnfulfilledOrders($first: Int!, $query: String!) {
	orders(first: $first, query: $query) {
		edges {
			node {` + orderFields + `
			}
		}
	}
}`

const getOrderQuery = `
query getOrder($id: ID!) {
	order(id: $id) {` + orderFields + `
	}
}`

// ListLocations returns the shop's inventory locations.
func (c *Client) ListLocations(ctx context.Context) ([]fulfillment.Location, error) {
	var data struct {
		Locations edges[locationNode] `json:"locations"`
	}
	if err := c.do(ctx, "listLocations", listLocationsQuery, nil, &data); err != nil {
		return nil, err
	}

	locations := make([]fulfillment.Location, 0, len(data.Locations.Edges))
	for _, e := range data.Locations.Edges {
		locations = append(locations, fulfillment.Location{
			ID:   e.Node.ID,
			Name: e.Node.Name,
		})
	}

	return locations, nil
}

// ListUnfulfilledOrders returns a single bounded page of unfulfilled orders
// with their fulfillment orders. Shops with more unfulfilled orders than the
// page size see a truncated view.
func (c *Client) ListUnfulfilledOrders(ctx context.Context, first int) ([]fulfillment.Order, error) {
	var data struct {
		Orders edges[orderNode] `json:"orders"`
	}
	variables := map[string]any{
		"first": first,
		"query": "fulfillment_status:unshipped",
	}
	if err := c.do(ctx, "listUnfulfilledOrders", listUnfulfilledOrdersQuery, variables, &data); err != nil {
		return nil, err
	}

	orders := make([]fulfillment.Order, 0, len(data.Orders.Edges))
	for _, e := range data.Orders.Edges {
		node := e.Node
		orders = append(orders, node.toModel())
	}

	return orders, nil
}

// GetOrder returns a single order with its current fulfillment orders.
func (c *Client) GetOrder(ctx context.Context, id string) (*fulfillment.Order, error) {
	var data struct {
		Order *orderNode `json:"order"`
	}
	if err := c.do(ctx, "getOrder", getOrderQuery, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	if data.Order == nil {
		return nil, fmt.Errorf("order %s not found", id)
	}

	order := data.Order.toModel()

	return &order, nil
}
