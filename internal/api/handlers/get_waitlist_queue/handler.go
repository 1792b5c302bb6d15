package get_waitlist_queue

import (
	"errors"
	"net/http"

	"github.com/m04kA/Marina-SlipService/internal/api/handlers"
	"github.com/m04kA/Marina-SlipService/internal/api/middleware"
	"github.com/m04kA/Marina-SlipService/internal/service/waitlist"
)

const (
	msgMissingActor = "не удалось определить пользователя"
	msgStaffOnly    = "операция доступна только сотрудникам марины"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /waitlist - Missing actor context")
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingActor)
		return
	}

	result, err := h.service.GetQueue(r.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrAccessDenied):
			h.logger.Warn("GET /waitlist - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgStaffOnly)
		default:
			h.logger.Error("GET /waitlist - Failed to get queue: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /waitlist - Queue retrieved successfully: count=%d", len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result)
}
