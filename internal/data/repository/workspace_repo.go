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

type WorkspaceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Workspace, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Workspace, error)
}

type workspaceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWorkspaceRepository(db database.PgxIface, log *zap.Logger) WorkspaceRepository {
	return &workspaceRepository{
		db:  db,
		log: log.With(zap.String("repository", "workspace")),
	}
}

func (r *workspaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Workspace, error) {
	query := `
		SELECT id, slug, name, timezone, public_booking_enabled, created_at, updated_at
		FROM workspaces
		WHERE id = $1
	`

	var ws entity.Workspace
	err := r.db.QueryRow(ctx, query, id).Scan(
		&ws.ID,
		&ws.Slug,
		&ws.Name,
		&ws.Timezone,
		&ws.PublicBookingEnabled,
		&ws.CreatedAt,
		&ws.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find workspace by ID",
			zap.Error(err),
			zap.String("workspace_id", id.String()),
		)
		return nil, fmt.Errorf("find workspace by ID %s: %w", id.String(), err)
	}

	return &ws, nil
}

func (r *workspaceRepository) FindBySlug(ctx context.Context, slug string) (*entity.Workspace, error) {
	query := `
		SELECT id, slug, name, timezone, public_booking_enabled, created_at, updated_at
		FROM workspaces
		WHERE slug = $1
	`

	var ws entity.Workspace
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&ws.ID,
		&ws.Slug,
		&ws.Name,
		&ws.Timezone,
		&ws.PublicBookingEnabled,
		&ws.CreatedAt,
		&ws.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find workspace by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find workspace by slug %s: %w", slug, err)
	}

	return &ws, nil
}
