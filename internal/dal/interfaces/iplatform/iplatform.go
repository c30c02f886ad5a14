package iplatform

import (
	"context"

	"github.com/corray333/backend-labs/presale/internal/service/models/fulfillment"
)

// IPlatformGateway is an interface for the commerce platform Admin API.
type IPlatformGateway interface {
	ListLocations(ctx context.Context) ([]fulfillment.Location, error)
	ListUnfulfilledOrders(ctx context.Context, first int) ([]fulfillment.Order, error)
	GetOrder(ctx context.Context, id string) (*fulfillment.Order, error)

	HoldFulfillmentOrder(ctx context.Context, id, note string) error
	ReleaseHold(ctx context.Context, id string) error
	SplitFulfillmentOrder(ctx context.Context, id string, items []fulfillment.SplitLineItem) error
	AddOrderTags(ctx context.Context, orderID string, tags []string) error
	RemoveOrderTags(ctx context.Context, orderID string, tags []string) error
}
