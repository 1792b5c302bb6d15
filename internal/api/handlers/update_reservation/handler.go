package update_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Marina-SlipService/internal/api/handlers"
	"github.com/m04kA/Marina-SlipService/internal/api/middleware"
	updateReservation "github.com/m04kA/Marina-SlipService/internal/usecase/update_reservation"
)

const (
	msgMissingActor         = "не удалось определить пользователя"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgNotEditable          = "бронирование уже нельзя редактировать"
	msgDurationTooShort     = "минимальный срок аренды - 30 дней"
	msgInvalidInput         = "некорректные параметры запроса"
	msgBoatNotFound         = "лодка не найдена"
	msgBoatNotOwned         = "лодка принадлежит другому пользователю"
	msgSlipNotFound         = "слип не найден"
	msgSlipOutOfService     = "слип выведен из эксплуатации"
	msgSlipTooSmall         = "слип слишком мал для этой лодки"
	msgSlipConflict         = "слип уже занят на выбранные даты"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id} - Missing actor context")
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingActor)
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID, actor)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateReservation.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id} - Access denied: reservation_id=%d, user_id=%d",
				reservationID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateReservation.ErrNotEditable):
			h.logger.Warn("PATCH /reservations/{id} - Not editable: reservation_id=%d", reservationID)
			handlers.RespondUnprocessable(w, msgNotEditable)

		case errors.Is(err, updateReservation.ErrDurationTooShort):
			h.logger.Warn("PATCH /reservations/{id} - Duration too short: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgDurationTooShort)

		case errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id} - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateReservation.ErrBoatNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Boat not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgBoatNotFound)

		case errors.Is(err, updateReservation.ErrBoatNotOwned):
			h.logger.Warn("PATCH /reservations/{id} - Boat not owned: reservation_id=%d, user_id=%d",
				reservationID, actor.UserID)
			handlers.RespondForbidden(w, msgBoatNotOwned)

		case errors.Is(err, updateReservation.ErrSlipNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Slip not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgSlipNotFound)

		case errors.Is(err, updateReservation.ErrSlipOutOfService):
			h.logger.Warn("PATCH /reservations/{id} - Slip out of service: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgSlipOutOfService)

		case errors.Is(err, updateReservation.ErrSlipTooSmall):
			h.logger.Warn("PATCH /reservations/{id} - Slip too small: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgSlipTooSmall)

		case errors.Is(err, updateReservation.ErrSlipConflict):
			h.logger.Warn("PATCH /reservations/{id} - Slip conflict: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgSlipConflict)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Reservation updated successfully: reservation_id=%d, user_id=%d, total=%.2f",
		reservationID, actor.UserID, result.TotalCost)
	handlers.RespondJSON(w, http.StatusOK, result)
}
