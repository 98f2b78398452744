package repository

import (
	"booking-platform/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Workspace WorkspaceRepository
	Provider  ProviderRepository
	Service   ServiceRepository
	Slot      SlotRepository
	Booking   BookingRepository
	Payment   PaymentRepository
	Outbox    OutboxRepository
	Event     EventRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Workspace: NewWorkspaceRepository(db, log),
		Provider:  NewProviderRepository(db, log),
		Service:   NewServiceRepository(db, log),
		Slot:      NewSlotRepository(db, log),
		Booking:   NewBookingRepository(db, log),
		Payment:   NewPaymentRepository(db, log),
		Outbox:    NewOutboxRepository(db, log),
		Event:     NewEventRepository(db, log),
	}
}
