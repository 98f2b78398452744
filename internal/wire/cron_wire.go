package wire

import (
	"booking-platform/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCron(r chi.Router, outboxHandler *adaptor.OutboxHandler) {
	// GET /api/cron/notifications/process?key=... - Drain the outbox
	r.Get("/api/cron/notifications/process", outboxHandler.ProcessNotifications)
}
