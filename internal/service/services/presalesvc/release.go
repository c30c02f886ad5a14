package presalesvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/corray333/backend-labs/presale/internal/dal/shopify"
	"github.com/corray333/backend-labs/presale/internal/service/models/auditlog"
	"github.com/corray333/backend-labs/presale/internal/service/models/fulfillment"
)

// ReleaseInput selects which held orders to release. When All is set the
// current held-order view supplies the order ids and OrderIDs is ignored.
// Filter is a case-insensitive substring match on line-item titles; empty
// matches every item.
type ReleaseInput struct {
	OrderIDs []string
	Filter   string
	All      bool
}

// ReleaseResult reports what a release batch did.
type ReleaseResult struct {
	Released   int      `json:"released"`
	Split      int      `json:"split"`
	Failed     int      `json:"failed"`
	OrderNames []string `json:"orderNames"`
}

type releaseOutcome struct {
	released  bool
	wasSplit  bool
	orderName string
}

// ReleaseOrders runs the release reconciliation for the selected orders:
// fresh fetch, full or partial (split) release, tag cleanup, one audit
// entry. Without a configured location it is a no-op.
func (s *PresaleService) ReleaseOrders(ctx context.Context, shop string, in ReleaseInput) (ReleaseResult, error) {
	result := ReleaseResult{OrderNames: []string{}}

	stored, err := s.settingsRepo.Get(ctx, shop)
	if err != nil {
		return result, err
	}
	if stored == nil || stored.LocationID == "" {
		return result, nil
	}
	locationID := stored.LocationID

	orderIDs := in.OrderIDs
	if in.All {
		views, err := s.HeldOrders(ctx, shop)
		if err != nil {
			return result, err
		}
		orderIDs = make([]string, 0, len(views))
		for _, v := range views {
			orderIDs = append(orderIDs, v.ID)
		}
	}

	touched := make([]string, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		outcome, err := s.releaseOrder(ctx, orderID, locationID, in.Filter)
		if err != nil {
			if !s.continueOnError {
				return result, fmt.Errorf("release of order %s failed: %w", orderID, err)
			}
			slog.Error("Order release failed, continuing batch", "order_id", orderID, "error", err)
			result.Failed++

			continue
		}
		if !outcome.released {
			continue
		}

		result.Released++
		if outcome.wasSplit {
			result.Split++
		}
		result.OrderNames = append(result.OrderNames, outcome.orderName)
		touched = append(touched, orderID)
	}

	if err := s.finalizeTags(ctx, touched, locationID); err != nil {
		return result, err
	}

	if result.Released > 0 {
		action := auditlog.ActionRelease
		if result.Split > 0 {
			action = auditlog.ActionSplitRelease
		}
		s.recordAudit(ctx, auditlog.Entry{
			Shop:        shop,
			Action:      action,
			Description: releaseDescription(result, in.Filter),
			CreatedAt:   s.now(),
		})
	}

	return result, nil
}

// releaseOrder reconciles a single order against the configured location.
// The order's fulfillment orders are always re-fetched first; the page-load
// snapshot an operator acted from is never trusted.
func (s *PresaleService) releaseOrder(ctx context.Context, orderID, locationID, filter string) (releaseOutcome, error) {
	order, err := s.platform.GetOrder(ctx, orderID)
	if err != nil {
		return releaseOutcome{}, err
	}

	fo := order.FindHeld(locationID)
	if fo == nil {
		return releaseOutcome{}, nil
	}

	toRelease, toRetain := partitionLineItems(fo.LineItems, filter)
	if len(toRelease) == 0 {
		return releaseOutcome{}, nil
	}

	if len(toRetain) == 0 {
		// Full release: every line item matched.
		if err := s.platform.ReleaseHold(ctx, fo.ID); err != nil {
			return releaseOutcome{}, err
		}

		return releaseOutcome{released: true, orderName: order.Name}, nil
	}

	if err := s.partialRelease(ctx, fo, toRelease); err != nil {
		var userErrs *shopify.UserErrorsError
		if errors.As(err, &userErrs) {
			// The platform rejected the split; the compensating re-hold has
			// already run, so the order is skipped rather than failed.
			slog.Error("Split rejected by platform, order re-held",
				"order_id", orderID,
				"fulfillment_order_id", fo.ID,
				"error", err,
			)

			return releaseOutcome{}, nil
		}

		return releaseOutcome{}, err
	}

	return releaseOutcome{released: true, wasSplit: true, orderName: order.Name}, nil
}

// partialRelease releases the hold, splits the matched line items into a new
// fulfillment order and re-holds the original, which then carries only the
// retained items. Each completed step records its compensation.
func (s *PresaleService) partialRelease(ctx context.Context, fo *fulfillment.FulfillmentOrder, toRelease []fulfillment.LineItem) error {
	splitItems := make([]fulfillment.SplitLineItem, 0, len(toRelease))
	for _, item := range toRelease {
		splitItems = append(splitItems, fulfillment.SplitLineItem{
			ID:       item.ID,
			Quantity: item.RemainingQuantity,
		})
	}

	return runSaga(ctx, []sagaStep{
		{
			name: "release_hold",
			run: func(ctx context.Context) error {
				return s.platform.ReleaseHold(ctx, fo.ID)
			},
			undo: func(ctx context.Context) error {
				return s.platform.HoldFulfillmentOrder(ctx, fo.ID, holdNote)
			},
		},
		{
			name: "split_line_items",
			run: func(ctx context.Context) error {
				return s.platform.SplitFulfillmentOrder(ctx, fo.ID, splitItems)
			},
		},
		{
			name: "rehold_remainder",
			run: func(ctx context.Context) error {
				return s.platform.HoldFulfillmentOrder(ctx, fo.ID, holdNote)
			},
		},
	})
}

// finalizeTags re-queries every touched order and removes the marker tag
// from orders with no remaining hold at the location. The re-check is
// deliberate: a webhook may have applied a new hold since the release.
func (s *PresaleService) finalizeTags(ctx context.Context, orderIDs []string, locationID string) error {
	for _, orderID := range orderIDs {
		order, err := s.platform.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order.HeldAt(locationID) {
			continue
		}
		if err := s.platform.RemoveOrderTags(ctx, orderID, []string{MarkerTag}); err != nil {
			return err
		}
	}

	return nil
}

// partitionLineItems splits items into those matching the filter and the
// rest. An empty filter matches everything.
func partitionLineItems(items []fulfillment.LineItem, filter string) (matched, rest []fulfillment.LineItem) {
	needle := strings.ToLower(strings.TrimSpace(filter))
	for _, item := range items {
		if needle == "" || strings.Contains(strings.ToLower(item.Title), needle) {
			matched = append(matched, item)
		} else {
			rest = append(rest, item)
		}
	}

	return matched, rest
}

func releaseDescription(result ReleaseResult, filter string) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "Released %d order(s)", result.Released)
	if result.Split > 0 {
		fmt.Fprintf(&b, ", %d with split", result.Split)
	}
	if filter = strings.TrimSpace(filter); filter != "" {
		fmt.Fprintf(&b, ", filter %q", filter)
	}
	if len(result.OrderNames) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(result.OrderNames, ", "))
	}

	return b.String()
}
