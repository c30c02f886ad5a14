package savesettings

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/presale/internal/service/models/settings"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	SaveSettings(ctx context.Context, shop, locationID string) (settings.Settings, error)
	Settings(ctx context.Context, shop string) (*settings.Settings, error)
}

// saveSettingsRequest represents a save settings request.
type saveSettingsRequest struct {
	LocationID string `json:"locationId" validate:"required"`
}

// Validate validates the save settings request.
func (r *saveSettingsRequest) Validate() error {
	return validator.New().Struct(r)
}

// SaveSettings handles the save settings request.
func SaveSettings(w http.ResponseWriter, r *http.Request, service service, shop string) {
	req := saveSettingsRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for save settings", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for save settings", "error", err)

		return
	}

	stored, err := service.SaveSettings(r.Context(), shop, req.LocationID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error saving settings", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(stored); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for save settings", "error", err)
	}
}

// GetSettings handles the get settings request. A shop with no settings yet
// gets an empty object rather than a 404.
func GetSettings(w http.ResponseWriter, r *http.Request, service service, shop string) {
	stored, err := service.Settings(r.Context(), shop)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error getting settings", "error", err)

		return
	}
	if stored == nil {
		stored = &settings.Settings{Shop: shop}
	}

	if err := json.NewEncoder(w).Encode(stored); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for get settings", "error", err)
	}
}
