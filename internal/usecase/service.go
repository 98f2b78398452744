package usecase

import (
	"time"

	"booking-platform/internal/data/repository"
	"booking-platform/pkg/utils"
	"booking-platform/pkg/whatsapp"

	"go.uber.org/zap"
)

type Service struct {
	Workspace    WorkspaceService
	Availability AvailabilityService
	Booking      BookingService
	Payment      PaymentService
	Outbox       OutboxService
}

func NewService(repo *repository.Repository, config *utils.Config, gw PaymentGateway, sender whatsapp.Sender, defaultLoc *time.Location, log *zap.Logger) *Service {
	availability := NewAvailabilityService(repo, defaultLoc, log)

	return &Service{
		Workspace:    NewWorkspaceService(repo, log),
		Availability: availability,
		Booking:      NewBookingService(repo, availability, defaultLoc, log),
		Payment:      NewPaymentService(repo, gw, log),
		Outbox:       NewOutboxService(repo, sender, log),
	}
}
