package adaptor

import (
	"net/http"

	"booking-platform/internal/dto/request"
	"booking-platform/internal/usecase"
	"booking-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetAvailability handles GET /api/public/workspaces/{slug}/availability.
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	req := &request.AvailabilityRequest{
		ProviderID: r.URL.Query().Get("provider_id"),
		ServiceID:  r.URL.Query().Get("service_id"),
		Date:       r.URL.Query().Get("date"),
	}

	result, err := h.service.GetAvailability(r.Context(), slug, req)
	if err != nil {
		h.log.Warn("Get availability failed",
			zap.Error(err),
			zap.String("slug", slug),
			zap.String("date", req.Date),
		)
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Availability retrieved successfully", result)
}
