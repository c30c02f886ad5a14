package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/presale/internal/dal/postgres"
	"github.com/corray333/backend-labs/presale/internal/service/models/auditlog"
)

// AuditRepository implements the audit log repository for PostgreSQL.
type AuditRepository struct {
	pgClient *postgres.Client
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(pgClient *postgres.Client) *AuditRepository {
	return &AuditRepository{
		pgClient: pgClient,
	}
}

// Insert appends one audit log entry.
func (r *AuditRepository) Insert(ctx context.Context, entry auditlog.Entry) error {
	query, args, err := sq.Insert("audit_log").
		Columns("shop", "action", "description", "created_at").
		Values(entry.Shop, entry.Action, entry.Description, entry.CreatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build audit log insert query: %w", err)
	}

	if _, err := r.pgClient.Pool().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert audit log entry: %w", err)
	}

	return nil
}

// ListRecent returns the newest entries for the shop, most recent first.
func (r *AuditRepository) ListRecent(ctx context.Context, shop string, limit int) ([]auditlog.Entry, error) {
	query, args, err := sq.Select("id", "shop", "action", "description", "created_at").
		From("audit_log").
		Where(sq.Eq{"shop": shop}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build audit log select query: %w", err)
	}

	rows, err := r.pgClient.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var result []auditlog.Entry
	for rows.Next() {
		var entry auditlog.Entry
		var action string
		if err := rows.Scan(&entry.ID, &entry.Shop, &action, &entry.Description, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit log entry: %w", err)
		}
		parsed, err := auditlog.ParseAction(action)
		if err != nil {
			return nil, fmt.Errorf("failed to parse audit action %q: %w", action, err)
		}
		entry.Action = parsed
		result = append(result, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
