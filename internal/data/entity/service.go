package entity

import (
	"github.com/google/uuid"
)

type DepositType string

const (
	DepositTypeFixed   DepositType = "FIXED"
	DepositTypePercent DepositType = "PERCENT"
)

type Service struct {
	Base
	WorkspaceID        uuid.UUID   `db:"workspace_id"`
	Name               string      `db:"name"`
	DurationMinutes    int         `db:"duration_minutes"`
	PriceCents         int64       `db:"price_cents"`
	DepositType        DepositType `db:"deposit_type"`
	DepositAmountCents int64       `db:"deposit_amount_cents"`
	DepositPercent     int         `db:"deposit_percent"`
	IsActive           bool        `db:"is_active"`
}

// DepositCents resolves the deposit owed at booking time. PERCENT deposits
// round half up on the price; either mode is floored at one cent so the
// gateway never sees a zero amount.
func (s *Service) DepositCents() int64 {
	if s.DepositType == DepositTypePercent {
		cents := (s.PriceCents*int64(s.DepositPercent) + 50) / 100
		if cents < 1 {
			return 1
		}
		return cents
	}
	if s.DepositAmountCents < 1 {
		return 1
	}
	return s.DepositAmountCents
}
