package wire

import (
	"booking-platform/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAdmin(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// Admin booking management routes. Authentication is handled by the
	// deployment's edge proxy, these stay off the public path prefix.
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// GET /api/admin/bookings/{id} - Booking details with payment
		r.Get("/{id}", bookingHandler.GetBooking)

		// PUT /api/admin/bookings/{id}/confirm - Confirm without payment
		r.Put("/{id}/confirm", bookingHandler.ConfirmBooking)

		// PUT /api/admin/bookings/{id}/cancel - Cancel and free the slot
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
