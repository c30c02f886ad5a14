package releaseorders

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/presale/internal/service/services/presalesvc"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	ReleaseOrders(ctx context.Context, shop string, in presalesvc.ReleaseInput) (presalesvc.ReleaseResult, error)
}

// releaseOrdersRequest represents a release request: either an explicit id
// selection or everything in the current filtered view.
type releaseOrdersRequest struct {
	OrderIDs []string `json:"orderIds" validate:"required_without=All"`
	Filter   string   `json:"filter"`
	All      bool     `json:"all"`
}

// Validate validates the release orders request.
func (r *releaseOrdersRequest) Validate() error {
	return validator.New().Struct(r)
}

// releaseOrdersResponse is the action outcome shown to the operator.
type releaseOrdersResponse struct {
	Status  string                   `json:"status"`
	Message string                   `json:"message"`
	Result  presalesvc.ReleaseResult `json:"result"`
}

// ReleaseOrders handles the release orders request.
func ReleaseOrders(w http.ResponseWriter, r *http.Request, service service, shop string) {
	req := releaseOrdersRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for release orders", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for release orders", "error", err)

		return
	}

	result, err := service.ReleaseOrders(r.Context(), shop, presalesvc.ReleaseInput{
		OrderIDs: req.OrderIDs,
		Filter:   req.Filter,
		All:      req.All,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error releasing orders", "error", err)

		return
	}

	resp := releaseOrdersResponse{
		Status:  "success",
		Message: fmt.Sprintf("Released %d order(s)", result.Released),
		Result:  result,
	}
	if result.Released == 0 {
		resp.Status = "info"
		resp.Message = "No orders matched the release criteria"
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for release orders", "error", err)
	}
}
