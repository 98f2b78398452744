package adaptor

import (
	"crypto/subtle"
	"net/http"

	"booking-platform/internal/usecase"
	"booking-platform/pkg/utils"

	"go.uber.org/zap"
)

const defaultDrainLimit = 50

type OutboxHandler struct {
	service    usecase.OutboxService
	cronSecret string
	log        *zap.Logger
}

func NewOutboxHandler(service usecase.OutboxService, cronSecret string, log *zap.Logger) *OutboxHandler {
	return &OutboxHandler{
		service:    service,
		cronSecret: cronSecret,
		log:        log.With(zap.String("handler", "outbox")),
	}
}

// ProcessNotifications handles GET /api/cron/notifications/process. The
// scheduler authenticates with a shared key in the query string.
func (h *OutboxHandler) ProcessNotifications(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if h.cronSecret == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.cronSecret)) != 1 {
		h.log.Warn("Cron drain rejected, bad key")
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	limit := utils.ParseInt(r.URL.Query().Get("limit"), defaultDrainLimit)

	result, err := h.service.ProcessBatch(r.Context(), limit)
	if err != nil {
		h.log.Error("Notification drain failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Notifications processed", result)
}
