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

type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	FindActiveByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]*entity.Service, error)
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	query := `
		SELECT id, workspace_id, name, duration_minutes, price_cents,
		       deposit_type, deposit_amount_cents, deposit_percent, is_active,
		       created_at, updated_at
		FROM services
		WHERE id = $1
	`

	var service entity.Service
	err := r.db.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.WorkspaceID,
		&service.Name,
		&service.DurationMinutes,
		&service.PriceCents,
		&service.DepositType,
		&service.DepositAmountCents,
		&service.DepositPercent,
		&service.IsActive,
		&service.CreatedAt,
		&service.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id.String(), err)
	}

	return &service, nil
}

func (r *serviceRepository) FindActiveByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]*entity.Service, error) {
	query := `
		SELECT id, workspace_id, name, duration_minutes, price_cents,
		       deposit_type, deposit_amount_cents, deposit_percent, is_active,
		       created_at, updated_at
		FROM services
		WHERE workspace_id = $1 AND is_active = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, workspaceID)
	if err != nil {
		r.log.Error("Failed to find services by workspace ID",
			zap.Error(err),
			zap.String("workspace_id", workspaceID.String()),
		)
		return nil, fmt.Errorf("find services by workspace ID %s: %w", workspaceID.String(), err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		var service entity.Service
		err := rows.Scan(
			&service.ID,
			&service.WorkspaceID,
			&service.Name,
			&service.DurationMinutes,
			&service.PriceCents,
			&service.DepositType,
			&service.DepositAmountCents,
			&service.DepositPercent,
			&service.IsActive,
			&service.CreatedAt,
			&service.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, &service)
	}

	return services, nil
}
