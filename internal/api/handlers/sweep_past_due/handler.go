package sweep_past_due

import (
	"errors"
	"net/http"

	"github.com/m04kA/Marina-SlipService/internal/api/handlers"
	"github.com/m04kA/Marina-SlipService/internal/api/middleware"
	"github.com/m04kA/Marina-SlipService/internal/service/reservations"
)

const (
	msgMissingActor = "не удалось определить пользователя"
	msgForbidden    = "операция доступна только сотрудникам"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/maintenance/complete-past-due
// Вызывается периодическим заданием; повторный вызов безопасен
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /maintenance/complete-past-due - Missing actor context")
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingActor)
		return
	}

	result, err := h.service.CompletePastDue(r.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("POST /maintenance/complete-past-due - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /maintenance/complete-past-due - Sweep failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /maintenance/complete-past-due - Sweep finished: completed=%d", result.CompletedCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
