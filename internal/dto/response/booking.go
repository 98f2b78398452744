package response

import (
	"time"

	"booking-platform/internal/data/entity"
)

type BookingResponse struct {
	ID            string                      `json:"id"`
	WorkspaceID   string                      `json:"workspace_id"`
	ServiceID     string                      `json:"service_id"`
	ProviderID    string                      `json:"provider_id"`
	CustomerName  string                      `json:"customer_name"`
	CustomerPhone string                      `json:"customer_phone"`
	StartAt       time.Time                   `json:"start_at"`
	EndAt         time.Time                   `json:"end_at"`
	Status        entity.BookingStatus        `json:"status"`
	PaymentStatus entity.BookingPaymentStatus `json:"payment_status"`
	Notes         *string                     `json:"notes,omitempty"`
	Payment       *PaymentResponse            `json:"payment,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            booking.ID.String(),
		WorkspaceID:   booking.WorkspaceID.String(),
		ServiceID:     booking.ServiceID.String(),
		ProviderID:    booking.ProviderID.String(),
		CustomerName:  booking.CustomerName,
		CustomerPhone: booking.CustomerPhone,
		StartAt:       booking.StartAt,
		EndAt:         booking.EndAt,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		Notes:         booking.Notes,
		CreatedAt:     booking.CreatedAt,
	}
}
