package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// Payment is one payment attempt owned by a booking. ExternalReference is
// the order id sent to the gateway at session creation; ExternalID the
// transaction id the gateway returned; ExternalPaymentID the confirmation
// number delivered by the IPN once the payment executes.
type Payment struct {
	Base
	BookingID         uuid.UUID     `db:"booking_id"`
	WorkspaceID       uuid.UUID     `db:"workspace_id"`
	Provider          string        `db:"provider"`
	ExternalReference string        `db:"external_reference"`
	ExternalID        *string       `db:"external_id"`
	ExternalPaymentID *string       `db:"external_payment_id"`
	AmountCents       int64         `db:"amount_cents"`
	Status            PaymentStatus `db:"status"`
	RawPayload        []byte        `db:"raw_payload"`
}
