package presalesvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/presale/internal/dal/interfaces/iauditrepo"
	"github.com/corray333/backend-labs/presale/internal/dal/interfaces/iplatform"
	"github.com/corray333/backend-labs/presale/internal/dal/interfaces/isettingsrepo"
	"github.com/corray333/backend-labs/presale/internal/service/models/auditlog"
	"github.com/corray333/backend-labs/presale/internal/service/models/fulfillment"
	"github.com/corray333/backend-labs/presale/internal/service/models/heldorder"
	"github.com/corray333/backend-labs/presale/internal/service/models/settings"
	"github.com/spf13/viper"
)

const (
	// MarkerTag labels orders that currently have at least one held
	// fulfillment order at the pre-sale location.
	MarkerTag = "presale-hold"

	holdNote = "Pre-sale hold: awaiting stock at the pre-sale location"

	defaultOrdersPageSize = 50
	auditPageSize         = 20
	maxAuditPageSize      = 100
)

// PresaleService holds fulfillment on pre-sale orders and releases those
// holds on operator action.
type PresaleService struct {
	platform        iplatform.IPlatformGateway
	settingsRepo    isettingsrepo.ISettingsRepository
	auditRepo       iauditrepo.IAuditRepository
	auditPublisher  iauditrepo.IAuditPublisher
	ordersPageSize  int
	continueOnError bool
	now             func() time.Time
}

// option is a function that configures the PresaleService.
type option func(*PresaleService)

// MustNewPresaleService creates a new PresaleService.
func MustNewPresaleService(opts ...option) *PresaleService {
	s := &PresaleService{
		ordersPageSize:  defaultOrdersPageSize,
		continueOnError: viper.GetBool("release.continue_on_error"),
		now:             time.Now,
	}
	if size := viper.GetInt("shopify.orders_page_size"); size > 0 {
		s.ordersPageSize = size
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPlatformGateway sets the commerce platform gateway.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPlatformGateway(gw iplatform.IPlatformGateway) option {
	return func(s *PresaleService) {
		s.platform = gw
	}
}

// WithSettingsRepository sets the settings repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSettingsRepository(repo isettingsrepo.ISettingsRepository) option {
	return func(s *PresaleService) {
		s.settingsRepo = repo
	}
}

// WithAuditRepository sets the audit log repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditRepository(repo iauditrepo.IAuditRepository) option {
	return func(s *PresaleService) {
		s.auditRepo = repo
	}
}

// WithAuditPublisher sets the optional audit event publisher.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditPublisher(pub iauditrepo.IAuditPublisher) option {
	return func(s *PresaleService) {
		s.auditPublisher = pub
	}
}

// WithContinueOnError makes a release batch keep going past per-order
// mutation failures instead of aborting on the first one.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithContinueOnError(v bool) option {
	return func(s *PresaleService) {
		s.continueOnError = v
	}
}

// WithClock overrides the time source.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *PresaleService) {
		s.now = now
	}
}

// SaveSettings stores the pre-sale location for the shop and records the
// change in the audit log.
func (s *PresaleService) SaveSettings(ctx context.Context, shop, locationID string) (settings.Settings, error) {
	stored := settings.Settings{
		Shop:       shop,
		LocationID: locationID,
		UpdatedAt:  s.now(),
	}
	if err := s.settingsRepo.Upsert(ctx, stored); err != nil {
		return settings.Settings{}, err
	}

	s.recordAudit(ctx, auditlog.Entry{
		Shop:        shop,
		Action:      auditlog.ActionSettings,
		Description: fmt.Sprintf("Pre-sale location set to %s", locationID),
		CreatedAt:   stored.UpdatedAt,
	})

	return stored, nil
}

// Settings returns the stored settings for the shop, or nil when none exist.
func (s *PresaleService) Settings(ctx context.Context, shop string) (*settings.Settings, error) {
	return s.settingsRepo.Get(ctx, shop)
}

// Locations lists the shop's inventory locations for the settings picker.
func (s *PresaleService) Locations(ctx context.Context) ([]fulfillment.Location, error) {
	return s.platform.ListLocations(ctx)
}

// HeldOrders returns the current held-order view: unfulfilled orders with at
// least one fulfillment order on hold at the configured location. The view
// is recomputed from live platform state on every call.
func (s *PresaleService) HeldOrders(ctx context.Context, shop string) ([]heldorder.View, error) {
	stored, err := s.settingsRepo.Get(ctx, shop)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.LocationID == "" {
		return []heldorder.View{}, nil
	}

	orders, err := s.platform.ListUnfulfilledOrders(ctx, s.ordersPageSize)
	if err != nil {
		return nil, err
	}

	views := make([]heldorder.View, 0)
	for i := range orders {
		if orders[i].HeldAt(stored.LocationID) {
			views = append(views, heldorder.FromOrder(&orders[i], stored.LocationID))
		}
	}

	return views, nil
}

// RecentAudit returns the newest audit entries for the shop. A non-positive
// or oversized limit falls back to the default display page.
func (s *PresaleService) RecentAudit(ctx context.Context, shop string, limit int) ([]auditlog.Entry, error) {
	if limit <= 0 || limit > maxAuditPageSize {
		limit = auditPageSize
	}

	return s.auditRepo.ListRecent(ctx, shop, limit)
}

// recordAudit appends the entry and forwards it to the broker. A publish
// failure never fails the enclosing action.
func (s *PresaleService) recordAudit(ctx context.Context, entry auditlog.Entry) {
	if err := s.auditRepo.Insert(ctx, entry); err != nil {
		slog.Error("Failed to insert audit log entry", "action", entry.Action, "error", err)
		return
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Publish(ctx, []auditlog.Entry{entry}); err != nil {
		slog.Error("Failed to publish audit log entry", "action", entry.Action, "error", err)
	}
}
