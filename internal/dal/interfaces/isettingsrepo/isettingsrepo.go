package isettingsrepo

import (
	"context"

	"github.com/corray333/backend-labs/presale/internal/service/models/settings"
)

// ISettingsRepository is an interface for the settings postgres repository.
// Get returns nil when no settings row exists for the shop.
type ISettingsRepository interface {
	Get(ctx context.Context, shop string) (*settings.Settings, error)
	Upsert(ctx context.Context, s settings.Settings) error
}
