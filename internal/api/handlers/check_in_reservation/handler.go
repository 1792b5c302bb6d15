package check_in_reservation

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
	msgNotConfirmed         = "заселение возможно только из статуса confirmed"
	msgOutsideWindow        = "заселение возможно в пределах 24 часов от даты начала"
	msgPaymentRequired      = "перед заселением необходимо записать хотя бы один платеж"
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

// Handle PATCH /api/v1/reservations/{reservationId}/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/check-in - Missing actor context")
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingActor)
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/check-in - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.service.CheckIn(r.Context(), reservationID, &models.CheckInRequest{Actor: actor})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/check-in - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/check-in - Access denied: reservation_id=%d, user_id=%d",
				reservationID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrNotConfirmed):
			h.logger.Warn("PATCH /reservations/{id}/check-in - Not confirmed: reservation_id=%d", reservationID)
			handlers.RespondUnprocessable(w, msgNotConfirmed)

		case errors.Is(err, reservations.ErrOutsideCheckInWindow):
			h.logger.Warn("PATCH /reservations/{id}/check-in - Outside window: reservation_id=%d", reservationID)
			handlers.RespondUnprocessable(w, msgOutsideWindow)

		case errors.Is(err, reservations.ErrPaymentRequired):
			h.logger.Warn("PATCH /reservations/{id}/check-in - Payment required: reservation_id=%d", reservationID)
			handlers.RespondUnprocessable(w, msgPaymentRequired)

		default:
			h.logger.Error("PATCH /reservations/{id}/check-in - Failed to check in: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/check-in - Checked in successfully: reservation_id=%d, actor_id=%d",
		reservationID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
