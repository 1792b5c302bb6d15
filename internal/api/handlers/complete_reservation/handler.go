package complete_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Marina-SlipService/internal/api/handlers"
	"github.com/m04kA/Marina-SlipService/internal/api/middleware"
	"github.com/m04kA/Marina-SlipService/internal/service/reservations"
	"github.com/m04kA/Marina-SlipService/internal/service/reservations/models"
)

const (
	msgMissingActor         = "не удалось определить пользователя"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgNotCheckedIn         = "самостоятельное завершение возможно только из статуса checked_in"
	msgTooEarly             = "самостоятельное завершение возможно через 30 дней после заселения"
	msgAlreadyTerminal      = "бронирование уже завершено или отменено"
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

// Handle PATCH /api/v1/reservations/{reservationId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/complete - Missing actor context")
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingActor)
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/complete - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.service.Complete(r.Context(), reservationID, &models.CompleteRequest{Actor: actor})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/complete - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/complete - Access denied: reservation_id=%d, user_id=%d",
				reservationID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrNotCheckedIn):
			h.logger.Warn("PATCH /reservations/{id}/complete - Not checked in: reservation_id=%d", reservationID)
			handlers.RespondUnprocessable(w, msgNotCheckedIn)

		case errors.Is(err, reservations.ErrCompletionTooEarly):
			h.logger.Warn("PATCH /reservations/{id}/complete - Too early: reservation_id=%d", reservationID)
			handlers.RespondUnprocessable(w, msgTooEarly)

		case errors.Is(err, reservations.ErrAlreadyTerminal):
			h.logger.Warn("PATCH /reservations/{id}/complete - Already terminal: reservation_id=%d", reservationID)
			handlers.RespondUnprocessable(w, msgAlreadyTerminal)

		default:
			h.logger.Error("PATCH /reservations/{id}/complete - Failed to complete: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/complete - Completed successfully: reservation_id=%d, actor_id=%d, staff=%t",
		reservationID, actor.UserID, actor.IsStaff)
	handlers.RespondJSON(w, http.StatusOK, result)
}
