package entity

import (
	"github.com/google/uuid"
)

type Provider struct {
	Base
	WorkspaceID uuid.UUID `db:"workspace_id"`
	Name        string    `db:"name"`
	IsActive    bool      `db:"is_active"`
}
