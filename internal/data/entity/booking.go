package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type BookingPaymentStatus string

const (
	BookingPaymentStatusUnpaid BookingPaymentStatus = "UNPAID"
	BookingPaymentStatusPaid   BookingPaymentStatus = "PAID"
)

// Booking occupies the half-open interval [StartAt, EndAt) on a provider's
// calendar. EndAt is always StartAt plus the service duration.
type Booking struct {
	Base
	WorkspaceID   uuid.UUID            `db:"workspace_id"`
	ServiceID     uuid.UUID            `db:"service_id"`
	ProviderID    uuid.UUID            `db:"provider_id"`
	CustomerName  string               `db:"customer_name"`
	CustomerPhone string               `db:"customer_phone"`
	StartAt       time.Time            `db:"start_at"`
	EndAt         time.Time            `db:"end_at"`
	Status        BookingStatus        `db:"status"`
	PaymentStatus BookingPaymentStatus `db:"payment_status"`
	Notes         *string              `db:"notes"`
}
