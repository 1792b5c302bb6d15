package find_available_slips

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	boatRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/boat"
)

// UseCase use case поиска слипов, доступных на запрошенный интервал дат
type UseCase struct {
	slipRepo        SlipRepository
	boatRepo        BoatRepository
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slipRepo SlipRepository,
	boatRepo BoatRepository,
	reservationRepo ReservationRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		slipRepo:        slipRepo,
		boatRepo:        boatRepo,
		reservationRepo: reservationRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет поиск доступных слипов
// Слип считается занятым, если на нем есть бронирование в статусе
// confirmed/checked_in с пересекающимся интервалом дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindAvailableSlips: user=%d, boat=%d, size=%d, period=%s..%s",
		req.UserID, req.BoatID, req.RequestedSize,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("FindAvailableSlips: validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем лодку и проверяем владение
	boat, err := uc.boatRepo.GetByID(ctx, req.BoatID)
	if err != nil {
		if errors.Is(err, boatRepo.ErrBoatNotFound) {
			uc.logger.Warn("FindAvailableSlips: boat id=%d not found", req.BoatID)
			return nil, ErrBoatNotFound
		}
		uc.logger.Error("FindAvailableSlips: failed to get boat id=%d: %v", req.BoatID, err)
		return nil, fmt.Errorf("%w: failed to get boat: %v", ErrInternal, err)
	}

	if boat.UserID != req.UserID {
		uc.logger.Warn("FindAvailableSlips: boat id=%d is not owned by user id=%d", req.BoatID, req.UserID)
		return nil, ErrBoatNotOwned
	}

	// 4. Вычисляем итоговый требуемый размер
	required := requiredSize(req.RequestedSize, boat)
	if required != req.RequestedSize {
		uc.logger.Info("FindAvailableSlips: requested size %d raised to boat length %d",
			req.RequestedSize, boat.LengthFt)
	}

	// 5. Получаем слипы-кандидаты (size_class >= required, без выведенных из эксплуатации)
	// Порядок фиксирован запросом: size_class ASC, id ASC
	slips, err := uc.slipRepo.List(ctx, required, []domain.SlipStatus{domain.SlipStatusOutOfService})
	if err != nil {
		uc.logger.Error("FindAvailableSlips: failed to list slips: %v", err)
		return nil, fmt.Errorf("%w: failed to list slips: %v", ErrInternal, err)
	}

	if len(slips) == 0 {
		uc.logger.Info("FindAvailableSlips: no slips of size >= %d", required)
		return &Response{RequiredSize: required, Slips: []SlipAvailability{}}, nil
	}

	// 6. Одним запросом получаем пересекающиеся активные бронирования всех кандидатов
	slipIDs := make([]int64, len(slips))
	for i, s := range slips {
		slipIDs[i] = s.ID
	}

	overlapping, err := uc.reservationRepo.ListActiveOverlapping(ctx, slipIDs, req.StartDate, req.EndDate, nil)
	if err != nil {
		uc.logger.Error("FindAvailableSlips: failed to list overlapping reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list overlapping reservations: %v", ErrInternal, err)
	}

	occupied := make(map[int64]bool, len(overlapping))
	for _, r := range overlapping {
		occupied[r.SlipID] = true
	}

	// 7. Собираем ответ, сохраняя порядок кандидатов
	result := make([]SlipAvailability, len(slips))
	availableCount := 0
	for i, s := range slips {
		isAvailable := !occupied[s.ID]
		if isAvailable {
			availableCount++
		}
		result[i] = SlipAvailability{
			SlipID:       s.ID,
			SizeClass:    s.SizeClass,
			LocationCode: s.LocationCode,
			IsAvailable:  isAvailable,
		}
	}

	uc.logger.Info("FindAvailableSlips: %d/%d slips available for size >= %d",
		availableCount, len(slips), required)

	return &Response{RequiredSize: required, Slips: result}, nil
}
