package adaptor

import (
	"net/http"

	"booking-platform/internal/usecase"
	"booking-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WorkspaceHandler struct {
	service usecase.WorkspaceService
	log     *zap.Logger
}

func NewWorkspaceHandler(service usecase.WorkspaceService, log *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		service: service,
		log:     log.With(zap.String("handler", "workspace")),
	}
}

// GetMeta handles GET /api/public/workspaces/{slug}/meta.
func (h *WorkspaceHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	result, err := h.service.GetMeta(r.Context(), slug)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Workspace retrieved successfully", result)
}
