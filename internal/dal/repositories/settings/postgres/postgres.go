package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/presale/internal/dal/postgres"
	"github.com/corray333/backend-labs/presale/internal/service/models/settings"
	"github.com/jackc/pgx/v5"
)

// SettingsRepository implements the settings repository for PostgreSQL.
type SettingsRepository struct {
	pgClient *postgres.Client
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(pgClient *postgres.Client) *SettingsRepository {
	return &SettingsRepository{
		pgClient: pgClient,
	}
}

// Get returns the settings row for the shop, or nil when none exists.
func (r *SettingsRepository) Get(ctx context.Context, shop string) (*settings.Settings, error) {
	query, args, err := sq.Select("shop", "location_id", "updated_at").
		From("presale_settings").
		Where(sq.Eq{"shop": shop}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build settings select query: %w", err)
	}

	var s settings.Settings
	row := r.pgClient.Pool().QueryRow(ctx, query, args...)
	if err := row.Scan(&s.Shop, &s.LocationID, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan settings: %w", err)
	}

	return &s, nil
}

// Upsert creates or replaces the settings row for the shop.
func (r *SettingsRepository) Upsert(ctx context.Context, s settings.Settings) error {
	query, args, err := sq.Insert("presale_settings").
		Columns("shop", "location_id", "updated_at").
		Values(s.Shop, s.LocationID, s.UpdatedAt).
		Suffix("ON CONFLICT (shop) DO UPDATE SET location_id = EXCLUDED.location_id, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build settings upsert query: %w", err)
	}

	if _, err := r.pgClient.Pool().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}

	return nil
}
