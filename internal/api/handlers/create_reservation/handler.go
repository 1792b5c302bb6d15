package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/Marina-SlipService/internal/api/handlers"
	"github.com/m04kA/Marina-SlipService/internal/api/middleware"
	createReservation "github.com/m04kA/Marina-SlipService/internal/usecase/create_reservation"
)

const (
	msgMissingActor       = "не удалось определить пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStartDateInPast    = "дата начала аренды в прошлом"
	msgDurationTooShort   = "минимальный срок аренды - 30 дней"
	msgUnsupportedSize    = "запрошенный размерный класс не поддерживается"
	msgInvalidInput       = "некорректные параметры запроса"
	msgBoatNotFound       = "лодка не найдена"
	msgBoatNotOwned       = "лодка принадлежит другому пользователю"
	msgSlipNotFound       = "слип не найден"
	msgSlipOutOfService   = "слип выведен из эксплуатации"
	msgSlipTooSmall       = "слип слишком мал для этой лодки"
	msgSlipConflict       = "слип уже занят на выбранные даты"
	msgNoSlipsAvailable   = "нет свободных слипов на выбранные даты"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing actor context")
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingActor)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.UserID)
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrStartDateInPast):
			h.logger.Warn("POST /reservations - Start date in past: user_id=%d", actor.UserID)
			handlers.RespondBadRequest(w, msgStartDateInPast)

		case errors.Is(err, createReservation.ErrDurationTooShort):
			h.logger.Warn("POST /reservations - Duration too short: user_id=%d", actor.UserID)
			handlers.RespondBadRequest(w, msgDurationTooShort)

		case errors.Is(err, createReservation.ErrUnsupportedSize):
			h.logger.Warn("POST /reservations - Unsupported size=%d: user_id=%d", req.RequestedSize, actor.UserID)
			handlers.RespondBadRequest(w, msgUnsupportedSize)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrBoatNotFound):
			h.logger.Warn("POST /reservations - Boat not found: boat_id=%d", req.BoatID)
			handlers.RespondNotFound(w, msgBoatNotFound)

		case errors.Is(err, createReservation.ErrBoatNotOwned):
			h.logger.Warn("POST /reservations - Boat not owned: boat_id=%d, user_id=%d", req.BoatID, actor.UserID)
			handlers.RespondForbidden(w, msgBoatNotOwned)

		case errors.Is(err, createReservation.ErrSlipNotFound):
			h.logger.Warn("POST /reservations - Slip not found: user_id=%d", actor.UserID)
			handlers.RespondNotFound(w, msgSlipNotFound)

		case errors.Is(err, createReservation.ErrSlipOutOfService):
			h.logger.Warn("POST /reservations - Slip out of service: user_id=%d", actor.UserID)
			handlers.RespondBadRequest(w, msgSlipOutOfService)

		case errors.Is(err, createReservation.ErrSlipTooSmall):
			h.logger.Warn("POST /reservations - Slip too small: user_id=%d", actor.UserID)
			handlers.RespondBadRequest(w, msgSlipTooSmall)

		case errors.Is(err, createReservation.ErrSlipConflict):
			h.logger.Warn("POST /reservations - Slip conflict at commit time: user_id=%d", actor.UserID)
			handlers.RespondConflict(w, msgSlipConflict)

		case errors.Is(err, createReservation.ErrNoSlipsAvailable):
			h.logger.Warn("POST /reservations - No slips available: user_id=%d", actor.UserID)
			handlers.RespondConflict(w, msgNoSlipsAvailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, error=%v",
				actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, slip_id=%d, confirmation=%s",
		result.ID, actor.UserID, result.SlipID, result.ConfirmationNumber)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
