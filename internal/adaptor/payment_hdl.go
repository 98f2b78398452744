package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"booking-platform/internal/dto/request"
	"booking-platform/internal/usecase"
	"booking-platform/pkg/utils"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreateSession handles POST /api/payments/session.
func (h *PaymentHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePaymentSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.CreatePaymentSession(r.Context(), requestOrigin(r), &req)
	if err != nil {
		h.log.Warn("Create payment session failed",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
		)
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Payment session created successfully", result)
}

// HandleIPN handles GET /api/webhooks/yappy. The gateway delivers the
// notification as query parameters and retries on non-2xx, so every
// terminal outcome other than a bad signature acknowledges with 200.
func (h *PaymentHandler) HandleIPN(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	notif := &request.IPNNotification{
		OrderID:            query.Get("orderId"),
		TransactionID:      query.Get("transactionId"),
		Status:             query.Get("status"),
		Domain:             query.Get("domain"),
		Hash:               query.Get("hash"),
		ConfirmationNumber: query.Get("confirmationNumber"),
	}

	ack, err := h.service.ProcessIPN(r.Context(), notif)
	if err != nil {
		h.log.Warn("IPN processing failed",
			zap.Error(err),
			zap.String("order_id", notif.Reference()),
			zap.String("status", notif.Status),
		)
		handleIPNError(w, err)
		return
	}

	utils.ResponseSuccess(w, "IPN processed", ack)
}

// handleIPNError classifies reconciliation errors. Unknown payments are
// acknowledged upstream with 200, so a "not found" reaching here is a
// persistence failure mid-reconciliation and must answer 5xx to make the
// gateway redeliver.
func handleIPNError(w http.ResponseWriter, err error) {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "validation failed"):
		utils.ResponseBadRequest(w, msg, nil)
	case strings.Contains(msg, "invalid signature"):
		utils.ResponseUnauthorized(w, msg)
	default:
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// requestOrigin rebuilds the externally visible base URL, trusting the
// proxy headers the deployment sets.
func requestOrigin(r *http.Request) string {
	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		if r.TLS != nil {
			scheme = "https"
		} else {
			scheme = "http"
		}
	}

	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}

	return scheme + "://" + host
}
