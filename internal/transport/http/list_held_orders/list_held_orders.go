package listheldorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/presale/internal/service/models/heldorder"
)

type service interface {
	HeldOrders(ctx context.Context, shop string) ([]heldorder.View, error)
}

func ListHeldOrders(w http.ResponseWriter, r *http.Request, service service, shop string) {
	views, err := service.HeldOrders(r.Context(), shop)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error listing held orders", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(views); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for list held orders", "error", err)
	}
}
