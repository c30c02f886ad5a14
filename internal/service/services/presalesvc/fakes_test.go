package presalesvc

import (
	"context"
	"fmt"
	"slices"

	"github.com/corray333/backend-labs/presale/internal/service/models/auditlog"
	"github.com/corray333/backend-labs/presale/internal/service/models/fulfillment"
	"github.com/corray333/backend-labs/presale/internal/service/models/settings"
)

// fakePlatform is an in-memory stand-in for the commerce platform. Mutations
// transition state the way the real platform does so that re-reads observe
// the effects of earlier calls.
type fakePlatform struct {
	locations []fulfillment.Location
	orders    map[string]*fulfillment.Order

	calls []string

	getOrderErr   error
	holdErr       error
	releaseErr    error
	splitErr      error
	removeTagsErr error
	nextFOID      int
}

func newFakePlatform(orders ...*fulfillment.Order) *fakePlatform {
	p := &fakePlatform{orders: map[string]*fulfillment.Order{}}
	for _, o := range orders {
		p.orders[o.ID] = o
	}
	return p
}

func (p *fakePlatform) record(format string, args ...any) {
	p.calls = append(p.calls, fmt.Sprintf(format, args...))
}

func (p *fakePlatform) callsNamed(prefix string) []string {
	var out []string
	for _, c := range p.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			out = append(out, c)
		}
	}
	return out
}

func (p *fakePlatform) findFO(id string) *fulfillment.FulfillmentOrder {
	for _, o := range p.orders {
		for i := range o.FulfillmentOrders {
			if o.FulfillmentOrders[i].ID == id {
				return &o.FulfillmentOrders[i]
			}
		}
	}
	return nil
}

func (p *fakePlatform) orderOfFO(id string) *fulfillment.Order {
	for _, o := range p.orders {
		for i := range o.FulfillmentOrders {
			if o.FulfillmentOrders[i].ID == id {
				return o
			}
		}
	}
	return nil
}

func (p *fakePlatform) ListLocations(_ context.Context) ([]fulfillment.Location, error) {
	return p.locations, nil
}

func (p *fakePlatform) ListUnfulfilledOrders(_ context.Context, _ int) ([]fulfillment.Order, error) {
	out := make([]fulfillment.Order, 0, len(p.orders))
	for _, o := range p.orders {
		out = append(out, *o)
	}
	slices.SortFunc(out, func(a, b fulfillment.Order) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out, nil
}

func (p *fakePlatform) GetOrder(_ context.Context, id string) (*fulfillment.Order, error) {
	p.record("getOrder %s", id)
	if p.getOrderErr != nil {
		return nil, p.getOrderErr
	}
	o, ok := p.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s not found", id)
	}
	copied := *o
	copied.FulfillmentOrders = slices.Clone(o.FulfillmentOrders)
	copied.Tags = slices.Clone(o.Tags)
	return &copied, nil
}

func (p *fakePlatform) HoldFulfillmentOrder(_ context.Context, id, _ string) error {
	p.record("hold %s", id)
	if p.holdErr != nil {
		return p.holdErr
	}
	fo := p.findFO(id)
	if fo == nil {
		return fmt.Errorf("fulfillment order %s not found", id)
	}
	fo.Status = fulfillment.StatusOnHold
	return nil
}

func (p *fakePlatform) ReleaseHold(_ context.Context, id string) error {
	p.record("release %s", id)
	if p.releaseErr != nil {
		return p.releaseErr
	}
	fo := p.findFO(id)
	if fo == nil {
		return fmt.Errorf("fulfillment order %s not found", id)
	}
	fo.Status = fulfillment.StatusOpen
	return nil
}

func (p *fakePlatform) SplitFulfillmentOrder(_ context.Context, id string, items []fulfillment.SplitLineItem) error {
	p.record("split %s %v", id, items)
	if p.splitErr != nil {
		return p.splitErr
	}
	fo := p.findFO(id)
	if fo == nil {
		return fmt.Errorf("fulfillment order %s not found", id)
	}
	order := p.orderOfFO(id)

	moved := make([]fulfillment.LineItem, 0, len(items))
	kept := make([]fulfillment.LineItem, 0)
	for _, li := range fo.LineItems {
		isMoved := false
		for _, s := range items {
			if s.ID == li.ID {
				isMoved = true
				break
			}
		}
		if isMoved {
			moved = append(moved, li)
		} else {
			kept = append(kept, li)
		}
	}
	fo.LineItems = kept

	p.nextFOID++
	order.FulfillmentOrders = append(order.FulfillmentOrders, fulfillment.FulfillmentOrder{
		ID:                 fmt.Sprintf("%s-split-%d", id, p.nextFOID),
		Status:             fo.Status,
		AssignedLocationID: fo.AssignedLocationID,
		LineItems:          moved,
	})
	return nil
}

func (p *fakePlatform) AddOrderTags(_ context.Context, orderID string, tags []string) error {
	p.record("addTags %s %v", orderID, tags)
	o, ok := p.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	for _, t := range tags {
		if !slices.Contains(o.Tags, t) {
			o.Tags = append(o.Tags, t)
		}
	}
	return nil
}

func (p *fakePlatform) RemoveOrderTags(_ context.Context, orderID string, tags []string) error {
	p.record("removeTags %s %v", orderID, tags)
	if p.removeTagsErr != nil {
		return p.removeTagsErr
	}
	o, ok := p.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	o.Tags = slices.DeleteFunc(o.Tags, func(t string) bool {
		return slices.Contains(tags, t)
	})
	return nil
}

type fakeSettingsRepo struct {
	stored map[string]settings.Settings
}

func newFakeSettingsRepo(rows ...settings.Settings) *fakeSettingsRepo {
	r := &fakeSettingsRepo{stored: map[string]settings.Settings{}}
	for _, row := range rows {
		r.stored[row.Shop] = row
	}
	return r
}

func (r *fakeSettingsRepo) Get(_ context.Context, shop string) (*settings.Settings, error) {
	s, ok := r.stored[shop]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, s settings.Settings) error {
	r.stored[s.Shop] = s
	return nil
}

type fakeAuditRepo struct {
	entries []auditlog.Entry
}

func (r *fakeAuditRepo) Insert(_ context.Context, entry auditlog.Entry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) ListRecent(_ context.Context, shop string, limit int) ([]auditlog.Entry, error) {
	var out []auditlog.Entry
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].Shop == shop {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}
