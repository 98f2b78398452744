package adaptor

import (
	"encoding/json"
	"net/http"

	"booking-platform/internal/dto/request"
	"booking-platform/internal/usecase"
	"booking-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/public/bookings.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		h.log.Warn("Create booking failed",
			zap.Error(err),
			zap.String("workspace", req.Workspace),
		)
		handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Booking created successfully", result)
}

// GetBooking handles GET /api/admin/bookings/{id}.
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	result, err := h.service.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Booking retrieved successfully", result)
}

// ConfirmBooking handles PUT /api/admin/bookings/{id}/confirm.
func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	if err := h.service.ConfirmBooking(r.Context(), bookingID); err != nil {
		h.log.Warn("Confirm booking failed",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Booking confirmed successfully", nil)
}

// CancelBooking handles PUT /api/admin/bookings/{id}/cancel.
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	if err := h.service.CancelBooking(r.Context(), bookingID); err != nil {
		h.log.Warn("Cancel booking failed",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled successfully", nil)
}
