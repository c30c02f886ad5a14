package presalesvc

import (
	"context"
	"log/slog"

	"github.com/corray333/backend-labs/presale/internal/service/models/fulfillment"
)

// HandleOrderCreated applies the pre-sale hold to a newly created order:
// every open fulfillment order assigned to the configured location is held,
// and the order is tagged when at least one hold was applied. Mutation
// failures are logged and never surfaced to the webhook caller.
func (s *PresaleService) HandleOrderCreated(ctx context.Context, shop, orderID string) error {
	stored, err := s.settingsRepo.Get(ctx, shop)
	if err != nil {
		return err
	}
	if stored == nil || stored.LocationID == "" {
		slog.Info("No pre-sale location configured, skipping order", "shop", shop, "order_id", orderID)
		return nil
	}

	order, err := s.platform.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	held := 0
	for _, fo := range order.FulfillmentOrders {
		if fo.AssignedLocationID != stored.LocationID || fo.Status != fulfillment.StatusOpen {
			continue
		}
		if err := s.platform.HoldFulfillmentOrder(ctx, fo.ID, holdNote); err != nil {
			slog.Error("Failed to hold fulfillment order",
				"order_id", orderID,
				"fulfillment_order_id", fo.ID,
				"error", err,
			)

			continue
		}
		held++
	}

	if held == 0 {
		return nil
	}

	if err := s.platform.AddOrderTags(ctx, orderID, []string{MarkerTag}); err != nil {
		slog.Error("Failed to tag held order", "order_id", orderID, "error", err)
	}

	slog.Info("Pre-sale hold applied", "order_id", orderID, "fulfillment_orders_held", held)

	return nil
}
