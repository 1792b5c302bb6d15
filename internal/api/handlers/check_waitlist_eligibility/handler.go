package check_waitlist_eligibility

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Marina-SlipService/internal/api/handlers"
	"github.com/m04kA/Marina-SlipService/internal/api/middleware"
	"github.com/m04kA/Marina-SlipService/internal/service/waitlist"
)

const (
	msgMissingActor   = "не удалось определить пользователя"
	msgInvalidEntryID = "некорректный ID записи листа ожидания"
	msgForbidden      = "операция доступна только сотрудникам"
	msgNotFound       = "запись листа ожидания не найдена"
	msgAlreadyRemoved = "запись уже удалена из листа ожидания"
	msgBoatNotFound   = "лодка не найдена"
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

// Handle GET /api/v1/waitlist/{entryId}/eligibility
// Административная проверка "запрос все еще ждет?"
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /waitlist/{id}/eligibility - Missing actor context")
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingActor)
		return
	}

	if !actor.IsStaff {
		h.logger.Warn("GET /waitlist/{id}/eligibility - Access denied: user_id=%d", actor.UserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	vars := mux.Vars(r)
	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /waitlist/{id}/eligibility - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	result, err := h.service.CheckEligibility(r.Context(), entryID)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrEntryNotFound):
			h.logger.Warn("GET /waitlist/{id}/eligibility - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, waitlist.ErrAlreadyRemoved):
			h.logger.Warn("GET /waitlist/{id}/eligibility - Already removed: entry_id=%d", entryID)
			handlers.RespondUnprocessable(w, msgAlreadyRemoved)

		case errors.Is(err, waitlist.ErrBoatNotFound):
			h.logger.Warn("GET /waitlist/{id}/eligibility - Boat not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgBoatNotFound)

		default:
			h.logger.Error("GET /waitlist/{id}/eligibility - Failed to check eligibility: entry_id=%d, error=%v",
				entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /waitlist/{id}/eligibility - Checked successfully: entry_id=%d, still_waiting=%t",
		entryID, result.StillWaiting)
	handlers.RespondJSON(w, http.StatusOK, result)
}
