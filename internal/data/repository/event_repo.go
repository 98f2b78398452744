package repository

import (
	"context"
	"fmt"

	"booking-platform/internal/data/entity"
	"booking-platform/pkg/database"

	"go.uber.org/zap"
)

// EventRepository is append-only: events are written for audit and never
// read back by the application.
type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (id, workspace_id, source, type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		event.ID,
		event.WorkspaceID,
		event.Source,
		event.Type,
		event.Payload,
		event.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("type", event.Type),
		)
		return fmt.Errorf("create event %s: %w", event.Type, err)
	}

	return nil
}
