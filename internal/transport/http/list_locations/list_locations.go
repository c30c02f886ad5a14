package listlocations

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/presale/internal/service/models/fulfillment"
)

type service interface {
	Locations(ctx context.Context) ([]fulfillment.Location, error)
}

func ListLocations(w http.ResponseWriter, r *http.Request, service service) {
	locations, err := service.Locations(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error listing locations", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(locations); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for list locations", "error", err)
	}
}
