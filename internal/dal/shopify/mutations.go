package shopify

import (
	"context"
	"fmt"
	"strings"

	"github.com/corray333/backend-labs/presale/internal/service/models/fulfillment"
)

// UserError is a structured, business-level rejection reported by a
// mutation, as opposed to a transport or GraphQL error.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// UserErrorsError carries the userErrors payload of a failed mutation.
type UserErrorsError struct {
	Operation string
	Errors    []UserError
}

func (e *UserErrorsError) Error() string {
	messages := make([]string, len(e.Errors))
	for i, ue := range e.Errors {
		messages[i] = ue.Message
	}

	return fmt.Sprintf("%s rejected: %s", e.Operation, strings.Join(messages, "; "))
}

func userErrorsOf(op string, errs []UserError) error {
	if len(errs) == 0 {
		return nil
	}

	return &UserErrorsError{Operation: op, Errors: errs}
}

const holdMutation = `
mutation holdFulfillmentOrder($id: ID!, $reason: FulfillmentHoldReason!, $reasonNotes: String) {
	fulfillmentOrderHold(fulfillmentOrderId: $id, fulfillmentHold: {reason: $reason, reasonNotes: $reasonNotes}) {
		fulfillmentOrder {
			id
			status
		}
		userErrors {
			field
			message
		}
	}
}`

const releaseHoldMutation = `
mutation releaseFulfillmentOrderHold($id: ID!) {
	fulfillmentOrderReleaseHold(id: $id) {
		fulfillmentOrder {
			id
			status
		}
		userErrors {
			field
			message
		}
	}
}`

const splitMutation = `
mutation splitFulfillmentOrder($splits: [FulfillmentOrderSplitInput!]!) {
	fulfillmentOrderSplit(fulfillmentOrderSplits: $splits) {
		fulfillmentOrderSplits {
			fulfillmentOrder {
				id
			}
			remainingFulfillmentOrder {
				id
			}
		}
		userErrors {
			field
			message
		}
	}
}`

const tagsAddMutation = `
mutation addOrderTags($id: ID!, $tags: [String!]!) {
	tagsAdd(id: $id, tags: $tags) {
		userErrors {
			field
			message
		}
	}
}`

const tagsRemoveMutation = `
mutation removeOrderTags($id: ID!, $tags: [String!]!) {
	tagsRemove(id: $id, tags: $tags) {
		userErrors {
			field
			message
		}
	}
}`

// HoldReasonInventoryOutOfStock is the fixed reason code used for every hold
// this service places.
const HoldReasonInventoryOutOfStock = "INVENTORY_OUT_OF_STOCK"

type mutationPayload struct {
	UserErrors []UserError `json:"userErrors"`
}

// HoldFulfillmentOrder places a hold with the fixed reason code and the given
// note on the fulfillment order.
func (c *Client) HoldFulfillmentOrder(ctx context.Context, id, note string) error {
	var data struct {
		Payload mutationPayload `json:"fulfillmentOrderHold"`
	}
	variables := map[string]any{
		"id":          id,
		"reason":      HoldReasonInventoryOutOfStock,
		"reasonNotes": note,
	}
	if err := c.do(ctx, "holdFulfillmentOrder", holdMutation, variables, &data); err != nil {
		return err
	}

	return userErrorsOf("holdFulfillmentOrder", data.Payload.UserErrors)
}

// ReleaseHold releases the hold on the fulfillment order.
func (c *Client) ReleaseHold(ctx context.Context, id string) error {
	var data struct {
		Payload mutationPayload `json:"fulfillmentOrderReleaseHold"`
	}
	if err := c.do(ctx, "releaseFulfillmentOrderHold", releaseHoldMutation, map[string]any{"id": id}, &data); err != nil {
		return err
	}

	return userErrorsOf("releaseFulfillmentOrderHold", data.Payload.UserErrors)
}

// SplitFulfillmentOrder moves the given line items out of the fulfillment
// order into a newly created one.
func (c *Client) SplitFulfillmentOrder(ctx context.Context, id string, items []fulfillment.SplitLineItem) error {
	lineItems := make([]map[string]any, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, map[string]any{
			"id":       item.ID,
			"quantity": item.Quantity,
		})
	}

	var data struct {
		Payload mutationPayload `json:"fulfillmentOrderSplit"`
	}
	variables := map[string]any{
		"splits": []map[string]any{
			{
				"fulfillmentOrderId":        id,
				"fulfillmentOrderLineItems": lineItems,
			},
		},
	}
	if err := c.do(ctx, "splitFulfillmentOrder", splitMutation, variables, &data); err != nil {
		return err
	}

	return userErrorsOf("splitFulfillmentOrder", data.Payload.UserErrors)
}

// AddOrderTags adds tags to the order.
func (c *Client) AddOrderTags(ctx context.Context, orderID string, tags []string) error {
	var data struct {
		Payload mutationPayload `json:"tagsAdd"`
	}
	variables := map[string]any{"id": orderID, "tags": tags}
	if err := c.do(ctx, "addOrderTags", tagsAddMutation, variables, &data); err != nil {
		return err
	}

	return userErrorsOf("tagsAdd", data.Payload.UserErrors)
}

// RemoveOrderTags removes tags from the order.
func (c *Client) RemoveOrderTags(ctx context.Context, orderID string, tags []string) error {
	var data struct {
		Payload mutationPayload `json:"tagsRemove"`
	}
	variables := map[string]any{"id": orderID, "tags": tags}
	if err := c.do(ctx, "removeOrderTags", tagsRemoveMutation, variables, &data); err != nil {
		return err
	}

	return userErrorsOf("tagsRemove", data.Payload.UserErrors)
}
