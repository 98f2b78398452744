package wire

import (
	"booking-platform/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler) {
	// POST /api/payments/session - Open a gateway order for a deposit
	r.Post("/api/payments/session", paymentHandler.CreateSession)

	// GET /api/webhooks/yappy - Gateway IPN callback (query parameters)
	r.Get("/api/webhooks/yappy", paymentHandler.HandleIPN)
}
