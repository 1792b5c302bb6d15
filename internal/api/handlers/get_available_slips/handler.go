package get_available_slips

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/Marina-SlipService/internal/api/handlers"
	"github.com/m04kA/Marina-SlipService/internal/api/middleware"
	findAvailableSlips "github.com/m04kA/Marina-SlipService/internal/usecase/find_available_slips"
)

const (
	msgMissingActor     = "не удалось определить пользователя"
	msgMissingBoatID    = "ID лодки обязателен"
	msgInvalidBoatID    = "некорректный ID лодки"
	msgMissingSize      = "размерный класс обязателен"
	msgInvalidSize      = "некорректный размерный класс"
	msgMissingDates     = "даты начала и окончания обязательны"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStartDateInPast  = "дата начала аренды в прошлом"
	msgDurationTooShort = "минимальный срок аренды - 30 дней"
	msgUnsupportedSize  = "запрошенный размерный класс не поддерживается"
	msgBoatNotFound     = "лодка не найдена"
	msgBoatNotOwned     = "лодка принадлежит другому пользователю"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	useCase FindAvailableSlipsUseCase
	logger  Logger
}

func NewHandler(useCase FindAvailableSlipsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slips/available
// Query params: boatId (required), size (required), startDate, endDate (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /slips/available - Missing actor context")
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingActor)
		return
	}

	query := r.URL.Query()

	boatIDStr := query.Get("boatId")
	if boatIDStr == "" {
		h.logger.Warn("GET /slips/available - Missing boat ID")
		handlers.RespondBadRequest(w, msgMissingBoatID)
		return
	}

	boatID, err := strconv.ParseInt(boatIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /slips/available - Invalid boat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBoatID)
		return
	}

	sizeStr := query.Get("size")
	if sizeStr == "" {
		h.logger.Warn("GET /slips/available - Missing size")
		handlers.RespondBadRequest(w, msgMissingSize)
		return
	}

	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		h.logger.Warn("GET /slips/available - Invalid size: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSize)
		return
	}

	startDateStr := query.Get("startDate")
	endDateStr := query.Get("endDate")
	if startDateStr == "" || endDateStr == "" {
		h.logger.Warn("GET /slips/available - Missing dates")
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	useCaseReq, err := ToUseCaseRequest(actor.UserID, boatID, size, startDateStr, endDateStr)
	if err != nil {
		h.logger.Warn("GET /slips/available - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, findAvailableSlips.ErrStartDateInPast):
			h.logger.Warn("GET /slips/available - Start date in past: user_id=%d", actor.UserID)
			handlers.RespondBadRequest(w, msgStartDateInPast)

		case errors.Is(err, findAvailableSlips.ErrDurationTooShort):
			h.logger.Warn("GET /slips/available - Duration too short: user_id=%d", actor.UserID)
			handlers.RespondBadRequest(w, msgDurationTooShort)

		case errors.Is(err, findAvailableSlips.ErrUnsupportedSize):
			h.logger.Warn("GET /slips/available - Unsupported size=%d: user_id=%d", size, actor.UserID)
			handlers.RespondBadRequest(w, msgUnsupportedSize)

		case errors.Is(err, findAvailableSlips.ErrInvalidInput):
			h.logger.Warn("GET /slips/available - Invalid input: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, findAvailableSlips.ErrBoatNotFound):
			h.logger.Warn("GET /slips/available - Boat not found: boat_id=%d", boatID)
			handlers.RespondNotFound(w, msgBoatNotFound)

		case errors.Is(err, findAvailableSlips.ErrBoatNotOwned):
			h.logger.Warn("GET /slips/available - Boat not owned: boat_id=%d, user_id=%d", boatID, actor.UserID)
			handlers.RespondForbidden(w, msgBoatNotOwned)

		default:
			h.logger.Error("GET /slips/available - Failed to find slips: user_id=%d, boat_id=%d, error=%v",
				actor.UserID, boatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /slips/available - Slips retrieved successfully: user_id=%d, required_size=%d, slips_count=%d",
		actor.UserID, result.RequiredSize, len(result.Slips))
	handlers.RespondJSON(w, http.StatusOK, response)
}
