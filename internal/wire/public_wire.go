package wire

import (
	"time"

	"booking-platform/internal/adaptor"
	"booking-platform/pkg/middleware"
	"booking-platform/pkg/ratelimit"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePublic(
	r chi.Router,
	handler *adaptor.Handler,
	limiter *ratelimit.Limiter,
	log *zap.Logger,
) {
	// GET /api/public/workspaces/{slug}/meta - Booking page metadata
	r.Get("/api/public/workspaces/{slug}/meta", handler.Workspace.GetMeta)

	// GET /api/public/workspaces/{slug}/availability - Bookable start times
	r.Get("/api/public/workspaces/{slug}/availability", handler.Availability.GetAvailability)

	// Booking creation is the abuse target, so it gets a per-IP cap.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter, "public_bookings", 10, time.Minute, log))

		// POST /api/public/bookings - Create a PENDING booking
		r.Post("/api/public/bookings", handler.Booking.CreateBooking)
	})
}
