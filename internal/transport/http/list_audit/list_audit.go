package listaudit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/presale/internal/service/models/auditlog"
	"github.com/gorilla/schema"
)

type service interface {
	RecentAudit(ctx context.Context, shop string, limit int) ([]auditlog.Entry, error)
}

type listAuditRequest struct {
	Limit int `schema:"limit,omitempty"`
}

func ListAudit(w http.ResponseWriter, r *http.Request, service service, shop string) {
	decoder := schema.NewDecoder()
	query := &listAuditRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request for list audit", "error", err)

		return
	}

	entries, err := service.RecentAudit(r.Context(), shop, query.Limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error listing audit entries", "error", err)

		return
	}
	if entries == nil {
		entries = []auditlog.Entry{}
	}

	if err := json.NewEncoder(w).Encode(entries); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for list audit", "error", err)
	}
}
