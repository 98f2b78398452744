package entity

import (
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "PENDING"
	OutboxStatusSent    OutboxStatus = "SENT"
	OutboxStatusRetry   OutboxStatus = "RETRY"
	OutboxStatusDead    OutboxStatus = "DEAD"
)

// OutboxEntry is one WhatsApp notification waiting to be delivered. Rows
// are enqueued in the same flow that confirms a booking and drained later
// by the cron endpoint, so delivery failures never block reconciliation.
type OutboxEntry struct {
	Base
	WorkspaceID uuid.UUID    `db:"workspace_id"`
	ToPhone     string       `db:"to_phone"`
	Template    string       `db:"template"`
	Body        string       `db:"body"`
	Payload     []byte       `db:"payload"`
	Status      OutboxStatus `db:"status"`
	Attempts    int          `db:"attempts"`
	ScheduledAt time.Time    `db:"scheduled_at"`
	SentAt      *time.Time   `db:"sent_at"`
	Error       *string      `db:"error"`
}
