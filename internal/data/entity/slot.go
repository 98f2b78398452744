package entity

import (
	"github.com/google/uuid"
)

// Slot is a weekly recurring availability window, not a concrete
// appointment. Weekday follows 0=Sunday through 6=Saturday and
// StartTime/EndTime are wall-clock "HH:MM" values in the workspace zone.
type Slot struct {
	Base
	WorkspaceID uuid.UUID `db:"workspace_id"`
	ProviderID  uuid.UUID `db:"provider_id"`
	Weekday     int       `db:"weekday"`
	StartTime   string    `db:"start_time"`
	EndTime     string    `db:"end_time"`
	Capacity    int       `db:"capacity"`
	IsActive    bool      `db:"is_active"`
}
