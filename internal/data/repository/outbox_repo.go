package repository

import (
	"context"
	"fmt"
	"time"

	"booking-platform/internal/data/entity"
	"booking-platform/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OutboxRepository interface {
	Create(ctx context.Context, entry *entity.OutboxEntry) error
	FindDue(ctx context.Context, now time.Time, limit int) ([]*entity.OutboxEntry, error)
	MarkSent(ctx context.Context, id uuid.UUID, attempts int, sentAt time.Time) error
	MarkRetry(ctx context.Context, id uuid.UUID, attempts int, nextAt time.Time, errMsg string) error
	MarkDead(ctx context.Context, id uuid.UUID, attempts int, errMsg string) error
}

type outboxRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOutboxRepository(db database.PgxIface, log *zap.Logger) OutboxRepository {
	return &outboxRepository{
		db:  db,
		log: log.With(zap.String("repository", "outbox")),
	}
}

func (r *outboxRepository) Create(ctx context.Context, entry *entity.OutboxEntry) error {
	query := `
		INSERT INTO notification_outbox (id, workspace_id, to_phone, template, body, payload,
		                                 status, attempts, scheduled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.WorkspaceID,
		entry.ToPhone,
		entry.Template,
		entry.Body,
		entry.Payload,
		entry.Status,
		entry.Attempts,
		entry.ScheduledAt,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create outbox entry",
			zap.Error(err),
			zap.String("template", entry.Template),
			zap.String("workspace_id", entry.WorkspaceID.String()),
		)
		return fmt.Errorf("create outbox entry %s: %w", entry.Template, err)
	}

	return nil
}

// FindDue returns PENDING and RETRY entries whose scheduled_at has passed,
// oldest first.
func (r *outboxRepository) FindDue(ctx context.Context, now time.Time, limit int) ([]*entity.OutboxEntry, error) {
	query := `
		SELECT id, workspace_id, to_phone, template, body, payload,
		       status, attempts, scheduled_at, sent_at, error, created_at, updated_at
		FROM notification_outbox
		WHERE status IN ('PENDING', 'RETRY') AND scheduled_at <= $1
		ORDER BY created_at
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, now, limit)
	if err != nil {
		r.log.Error("Failed to find due outbox entries", zap.Error(err))
		return nil, fmt.Errorf("find due outbox entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.OutboxEntry
	for rows.Next() {
		var entry entity.OutboxEntry
		err := rows.Scan(
			&entry.ID,
			&entry.WorkspaceID,
			&entry.ToPhone,
			&entry.Template,
			&entry.Body,
			&entry.Payload,
			&entry.Status,
			&entry.Attempts,
			&entry.ScheduledAt,
			&entry.SentAt,
			&entry.Error,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan outbox row", zap.Error(err))
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id uuid.UUID, attempts int, sentAt time.Time) error {
	query := `
		UPDATE notification_outbox
		SET status = 'SENT', attempts = $2, sent_at = $3, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, id, attempts, sentAt); err != nil {
		r.log.Error("Failed to mark outbox entry sent",
			zap.Error(err),
			zap.String("outbox_id", id.String()),
		)
		return fmt.Errorf("mark outbox entry %s sent: %w", id.String(), err)
	}

	return nil
}

func (r *outboxRepository) MarkRetry(ctx context.Context, id uuid.UUID, attempts int, nextAt time.Time, errMsg string) error {
	query := `
		UPDATE notification_outbox
		SET status = 'RETRY', attempts = $2, scheduled_at = $3, error = $4, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, id, attempts, nextAt, errMsg); err != nil {
		r.log.Error("Failed to mark outbox entry for retry",
			zap.Error(err),
			zap.String("outbox_id", id.String()),
		)
		return fmt.Errorf("mark outbox entry %s for retry: %w", id.String(), err)
	}

	return nil
}

func (r *outboxRepository) MarkDead(ctx context.Context, id uuid.UUID, attempts int, errMsg string) error {
	query := `
		UPDATE notification_outbox
		SET status = 'DEAD', attempts = $2, error = $3, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, id, attempts, errMsg); err != nil {
		r.log.Error("Failed to mark outbox entry dead",
			zap.Error(err),
			zap.String("outbox_id", id.String()),
		)
		return fmt.Errorf("mark outbox entry %s dead: %w", id.String(), err)
	}

	return nil
}
