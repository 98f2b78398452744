package response

import (
	"time"

	"booking-platform/internal/data/entity"
)

type PaymentResponse struct {
	ID                string               `json:"id"`
	BookingID         string               `json:"booking_id"`
	Provider          string               `json:"provider"`
	ExternalReference string               `json:"external_reference"`
	AmountCents       int64                `json:"amount_cents"`
	Status            entity.PaymentStatus `json:"status"`
	CreatedAt         time.Time            `json:"created_at"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                payment.ID.String(),
		BookingID:         payment.BookingID.String(),
		Provider:          payment.Provider,
		ExternalReference: payment.ExternalReference,
		AmountCents:       payment.AmountCents,
		Status:            payment.Status,
		CreatedAt:         payment.CreatedAt,
	}
}

// PaymentSessionResponse carries what the payment button widget needs.
type PaymentSessionResponse struct {
	TransactionID string `json:"transaction_id"`
	Token         string `json:"token"`
	DocumentName  string `json:"document_name"`
}

// IPNAck is always returned with a body so the gateway's retry logic stays
// well-defined.
type IPNAck struct {
	OK   bool   `json:"ok"`
	Note string `json:"note,omitempty"`
}
