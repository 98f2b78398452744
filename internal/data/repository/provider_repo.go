package repository

import (
	"context"
	"fmt"

	"booking-platform/internal/data/entity"
	"booking-platform/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProviderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error)
	FindActiveByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]*entity.Provider, error)
}

type providerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProviderRepository(db database.PgxIface, log *zap.Logger) ProviderRepository {
	return &providerRepository{
		db:  db,
		log: log.With(zap.String("repository", "provider")),
	}
}

func (r *providerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	query := `
		SELECT id, workspace_id, name, is_active, created_at, updated_at
		FROM providers
		WHERE id = $1
	`

	var provider entity.Provider
	err := r.db.QueryRow(ctx, query, id).Scan(
		&provider.ID,
		&provider.WorkspaceID,
		&provider.Name,
		&provider.IsActive,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find provider by ID",
			zap.Error(err),
			zap.String("provider_id", id.String()),
		)
		return nil, fmt.Errorf("find provider by ID %s: %w", id.String(), err)
	}

	return &provider, nil
}

func (r *providerRepository) FindActiveByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]*entity.Provider, error) {
	query := `
		SELECT id, workspace_id, name, is_active, created_at, updated_at
		FROM providers
		WHERE workspace_id = $1 AND is_active = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, workspaceID)
	if err != nil {
		r.log.Error("Failed to find providers by workspace ID",
			zap.Error(err),
			zap.String("workspace_id", workspaceID.String()),
		)
		return nil, fmt.Errorf("find providers by workspace ID %s: %w", workspaceID.String(), err)
	}
	defer rows.Close()

	var providers []*entity.Provider
	for rows.Next() {
		var provider entity.Provider
		err := rows.Scan(
			&provider.ID,
			&provider.WorkspaceID,
			&provider.Name,
			&provider.IsActive,
			&provider.CreatedAt,
			&provider.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan provider row", zap.Error(err))
			return nil, fmt.Errorf("scan provider row: %w", err)
		}
		providers = append(providers, &provider)
	}

	return providers, nil
}
