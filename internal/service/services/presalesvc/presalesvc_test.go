package presalesvc

import (
	"context"
	"testing"

	"github.com/corray333/backend-labs/presale/internal/service/models/auditlog"
)

func TestPresaleService_HeldOrders(t *testing.T) {
	t.Parallel()

	t.Run("projects only orders held at the configured location", func(t *testing.T) {
		held := heldOrder("order-1", "#1001", "Widget", "Gadget")
		elsewhere := heldOrder("order-2", "#1002", "Sprocket")
		elsewhere.FulfillmentOrders[0].AssignedLocationID = "gid://shopify/Location/other"
		open := heldOrder("order-3", "#1003", "Cog")
		open.FulfillmentOrders[0].Status = "OPEN"

		platform := newFakePlatform(held, elsewhere, open)
		svc, _ := makeService(platform)

		views, err := svc.HeldOrders(context.Background(), testShop)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(views) != 1 {
			t.Fatalf("expected 1 held order, got %d", len(views))
		}
		if views[0].ID != "order-1" || views[0].Name != "#1001" {
			t.Fatalf("unexpected view %+v", views[0])
		}
		if views[0].LineItems != "Widget, Gadget" {
			t.Fatalf("expected concatenated titles, got %q", views[0].LineItems)
		}
	})

	t.Run("empty without configured location", func(t *testing.T) {
		platform := newFakePlatform(heldOrder("order-1", "#1001", "Widget"))
		svc := MustNewPresaleService(
			WithPlatformGateway(platform),
			WithSettingsRepository(newFakeSettingsRepo()),
			WithAuditRepository(&fakeAuditRepo{}),
		)

		views, err := svc.HeldOrders(context.Background(), testShop)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(views) != 0 {
			t.Fatalf("expected empty view, got %v", views)
		}
	})
}

func TestPresaleService_SaveSettings(t *testing.T) {
	t.Parallel()

	platform := newFakePlatform()
	svc, audit := makeService(platform)

	stored, err := svc.SaveSettings(context.Background(), testShop, "gid://shopify/Location/9")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stored.LocationID != "gid://shopify/Location/9" {
		t.Fatalf("unexpected stored settings %+v", stored)
	}

	got, err := svc.Settings(context.Background(), testShop)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got == nil || got.LocationID != "gid://shopify/Location/9" {
		t.Fatalf("expected settings persisted, got %+v", got)
	}

	if len(audit.entries) != 1 || audit.entries[0].Action != auditlog.ActionSettings {
		t.Fatalf("expected one SETTINGS audit entry, got %v", audit.entries)
	}
}
