package adaptor

import (
	"net/http"
	"strings"

	"booking-platform/internal/usecase"
	"booking-platform/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Workspace    *WorkspaceHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Payment      *PaymentHandler
	Outbox       *OutboxHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Workspace:    NewWorkspaceHandler(service.Workspace, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Payment:      NewPaymentHandler(service.Payment, log),
		Outbox:       NewOutboxHandler(service.Outbox, config.Cron.Secret, log),
	}
}

// handleServiceError maps service-layer errors onto HTTP status codes by
// message classification.
func handleServiceError(w http.ResponseWriter, err error) {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "validation failed"):
		utils.ResponseBadRequest(w, msg, nil)
	case strings.Contains(msg, "invalid signature"):
		utils.ResponseUnauthorized(w, msg)
	case strings.Contains(msg, "not found"):
		utils.ResponseNotFound(w, msg)
	case strings.Contains(msg, "already booked"),
		strings.Contains(msg, "cannot"),
		strings.Contains(msg, "invalid"):
		utils.ResponseBadRequest(w, msg, nil)
	default:
		utils.ResponseInternalError(w, "Internal server error")
	}
}
