package repository

import (
	"context"
	"fmt"

	"booking-platform/internal/data/entity"
	"booking-platform/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SlotRepository interface {
	FindActiveForWeekday(ctx context.Context, workspaceID, providerID uuid.UUID, weekday int) ([]*entity.Slot, error)
	FindActiveByProviderID(ctx context.Context, providerID uuid.UUID) ([]*entity.Slot, error)
}

type slotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSlotRepository(db database.PgxIface, log *zap.Logger) SlotRepository {
	return &slotRepository{
		db:  db,
		log: log.With(zap.String("repository", "slot")),
	}
}

func (r *slotRepository) FindActiveForWeekday(ctx context.Context, workspaceID, providerID uuid.UUID, weekday int) ([]*entity.Slot, error) {
	query := `
		SELECT id, workspace_id, provider_id, weekday, start_time, end_time, capacity, is_active, created_at, updated_at
		FROM slots
		WHERE workspace_id = $1 AND provider_id = $2 AND weekday = $3 AND is_active = true
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, workspaceID, providerID, weekday)
	if err != nil {
		r.log.Error("Failed to find slots for weekday",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
			zap.Int("weekday", weekday),
		)
		return nil, fmt.Errorf("find slots for provider %s weekday %d: %w", providerID.String(), weekday, err)
	}
	defer rows.Close()

	var slots []*entity.Slot
	for rows.Next() {
		var slot entity.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.WorkspaceID,
			&slot.ProviderID,
			&slot.Weekday,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Capacity,
			&slot.IsActive,
			&slot.CreatedAt,
			&slot.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, nil
}

func (r *slotRepository) FindActiveByProviderID(ctx context.Context, providerID uuid.UUID) ([]*entity.Slot, error) {
	query := `
		SELECT id, workspace_id, provider_id, weekday, start_time, end_time, capacity, is_active, created_at, updated_at
		FROM slots
		WHERE provider_id = $1 AND is_active = true
		ORDER BY weekday, start_time
	`

	rows, err := r.db.Query(ctx, query, providerID)
	if err != nil {
		r.log.Error("Failed to find slots by provider ID",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("find slots by provider ID %s: %w", providerID.String(), err)
	}
	defer rows.Close()

	var slots []*entity.Slot
	for rows.Next() {
		var slot entity.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.WorkspaceID,
			&slot.ProviderID,
			&slot.Weekday,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Capacity,
			&slot.IsActive,
			&slot.CreatedAt,
			&slot.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, nil
}
