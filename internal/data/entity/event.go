package entity

import (
	"github.com/google/uuid"
)

// Event is an append-only audit record. WorkspaceID is nil for
// notifications that could not be attributed to a tenant.
type Event struct {
	BaseSimple
	WorkspaceID *uuid.UUID `db:"workspace_id"`
	Source      string     `db:"source"`
	Type        string     `db:"type"`
	Payload     []byte     `db:"payload"`
}
