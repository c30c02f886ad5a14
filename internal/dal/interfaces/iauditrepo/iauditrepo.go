package iauditrepo

import (
	"context"

	"github.com/corray333/backend-labs/presale/internal/service/models/auditlog"
)

// IAuditRepository is an interface for the audit log postgres repository.
type IAuditRepository interface {
	Insert(ctx context.Context, entry auditlog.Entry) error
	ListRecent(ctx context.Context, shop string, limit int) ([]auditlog.Entry, error)
}

// IAuditPublisher publishes audit entries to the message broker.
type IAuditPublisher interface {
	Publish(ctx context.Context, entries []auditlog.Entry) error
}
