package cancel_waitlist_entry

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Marina-SlipService/internal/api/handlers"
	"github.com/m04kA/Marina-SlipService/internal/api/middleware"
	"github.com/m04kA/Marina-SlipService/internal/service/waitlist"
	"github.com/m04kA/Marina-SlipService/internal/service/waitlist/models"
)

const (
	msgMissingActor   = "не удалось определить пользователя"
	msgInvalidEntryID = "некорректный ID записи листа ожидания"
	msgNotFound       = "запись листа ожидания не найдена"
	msgForbidden      = "доступ запрещен"
	msgAlreadyRemoved = "запись уже удалена из листа ожидания"
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

// Handle PATCH /api/v1/waitlist/{entryId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /waitlist/{id}/cancel - Missing actor context")
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingActor)
		return
	}

	vars := mux.Vars(r)
	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /waitlist/{id}/cancel - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	err = h.service.Cancel(r.Context(), entryID, &models.CancelEntryRequest{Actor: actor})
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrEntryNotFound):
			h.logger.Warn("PATCH /waitlist/{id}/cancel - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, waitlist.ErrAccessDenied):
			h.logger.Warn("PATCH /waitlist/{id}/cancel - Access denied: entry_id=%d, user_id=%d",
				entryID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, waitlist.ErrAlreadyRemoved):
			h.logger.Warn("PATCH /waitlist/{id}/cancel - Already removed: entry_id=%d", entryID)
			handlers.RespondUnprocessable(w, msgAlreadyRemoved)

		default:
			h.logger.Error("PATCH /waitlist/{id}/cancel - Failed to cancel entry: entry_id=%d, error=%v",
				entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /waitlist/{id}/cancel - Entry cancelled successfully: entry_id=%d, user_id=%d",
		entryID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
