package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	boatRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/boat"
	slipRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/slip"
)

// UseCase use case подтверждения бронирования слипа
type UseCase struct {
	slipRepo        SlipRepository
	boatRepo        BoatRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slipRepo SlipRepository,
	boatRepo BoatRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slipRepo:        slipRepo,
		boatRepo:        boatRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет подтверждение бронирования
// Между поиском доступности и подтверждением проходит время, за которое слип
// могли занять, поэтому весь путь "перепроверка + вставка" выполняется
// в одной сериализуемой транзакции с блокирующим чтением пересечений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, boat=%d, size=%d, period=%s..%s",
		req.UserID, req.BoatID, req.RequestedSize,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных - те же правила, что и в поиске доступности
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем лодку и проверяем владение
	boat, err := uc.boatRepo.GetByID(ctx, req.BoatID)
	if err != nil {
		if errors.Is(err, boatRepo.ErrBoatNotFound) {
			uc.logger.Warn("CreateReservation: boat id=%d not found", req.BoatID)
			return nil, ErrBoatNotFound
		}
		uc.logger.Error("CreateReservation: failed to get boat id=%d: %v", req.BoatID, err)
		return nil, fmt.Errorf("%w: failed to get boat: %v", ErrInternal, err)
	}

	if boat.UserID != req.UserID {
		uc.logger.Warn("CreateReservation: boat id=%d is not owned by user id=%d", req.BoatID, req.UserID)
		return nil, ErrBoatNotOwned
	}

	// 4. Вычисляем итоговый требуемый размер
	required := requiredSize(req.RequestedSize, boat)

	var result *domain.Reservation
	var assignedSlip *domain.Slip

	// 5. Перепроверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Определяем слип: выбранный клиентом или first-fit по порядку поиска
		slip, err := uc.resolveSlip(txCtx, req, required)
		if err != nil {
			return err
		}
		assignedSlip = slip

		// 5.2. Считаем стоимость от фактической длины лодки
		cost := domain.ComputeCost(boat.LengthFt, req.StartDate, req.EndDate)

		// 5.3. Создаем бронирование в статусе confirmed
		reservation := &domain.Reservation{
			UserID:             req.UserID,
			BoatID:             boat.ID,
			SlipID:             slip.ID,
			StartDate:          req.StartDate,
			EndDate:            req.EndDate,
			Status:             domain.StatusConfirmed,
			Months:             cost.Months,
			TotalCost:          cost.Total,
			ConfirmationNumber: newConfirmationNumber(),
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, slip=%d, confirmation=%s",
		result.ID, result.SlipID, result.ConfirmationNumber)

	cost := domain.ComputeCost(boat.LengthFt, result.StartDate, result.EndDate)

	return &Response{
		ID:                 result.ID,
		UserID:             result.UserID,
		BoatID:             result.BoatID,
		SlipID:             result.SlipID,
		SlipLocationCode:   assignedSlip.LocationCode,
		StartDate:          result.StartDate,
		EndDate:            result.EndDate,
		Status:             string(result.Status),
		ConfirmationNumber: result.ConfirmationNumber,
		Months:             result.Months,
		BaseCost:           cost.Base,
		Hookup:             cost.Hookup,
		TotalCost:          result.TotalCost,
		CreatedAt:          result.CreatedAt,
		UpdatedAt:          result.UpdatedAt,
	}, nil
}

// resolveSlip определяет слип для назначения внутри транзакции
//
// Если клиент выбрал конкретный слип - перепроверяем именно его на момент коммита;
// конфликт возвращается клиенту, молчаливой подмены слипа не происходит.
// Если слип не выбран - назначается первый свободный кандидат в порядке
// (size_class, id), тот же порядок, что отдает поиск доступности (first-fit)
func (uc *UseCase) resolveSlip(txCtx context.Context, req *Request, required int) (*domain.Slip, error) {
	if req.ChosenSlipID != nil {
		slip, err := uc.slipRepo.GetByID(txCtx, *req.ChosenSlipID)
		if err != nil {
			if errors.Is(err, slipRepo.ErrSlipNotFound) {
				uc.logger.Warn("CreateReservation: chosen slip id=%d not found", *req.ChosenSlipID)
				return nil, ErrSlipNotFound
			}
			uc.logger.Error("CreateReservation: failed to get slip id=%d: %v", *req.ChosenSlipID, err)
			return nil, fmt.Errorf("%w: failed to get slip: %v", ErrInternal, err)
		}

		if !slip.IsOperational() {
			uc.logger.Warn("CreateReservation: chosen slip id=%d is out of service", slip.ID)
			return nil, ErrSlipOutOfService
		}

		if slip.SizeClass < required {
			uc.logger.Warn("CreateReservation: chosen slip id=%d size=%d is below required %d",
				slip.ID, slip.SizeClass, required)
			return nil, ErrSlipTooSmall
		}

		// Перепроверка на момент коммита: блокирующее чтение пересечений
		overlapping, err := uc.reservationRepo.ListActiveOverlapping(
			txCtx, []int64{slip.ID}, req.StartDate, req.EndDate, nil)
		if err != nil {
			uc.logger.Error("CreateReservation: recheck failed for slip id=%d: %v", slip.ID, err)
			return nil, fmt.Errorf("%w: recheck failed: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateReservation: slip id=%d was booked between search and confirm", slip.ID)
			return nil, ErrSlipConflict
		}

		return slip, nil
	}

	// Слип не выбран - first-fit по детерминированному порядку кандидатов
	candidates, err := uc.slipRepo.List(txCtx, required, []domain.SlipStatus{domain.SlipStatusOutOfService})
	if err != nil {
		uc.logger.Error("CreateReservation: failed to list slips: %v", err)
		return nil, fmt.Errorf("%w: failed to list slips: %v", ErrInternal, err)
	}

	if len(candidates) == 0 {
		uc.logger.Info("CreateReservation: no slips of size >= %d exist", required)
		return nil, ErrNoSlipsAvailable
	}

	slipIDs := make([]int64, len(candidates))
	for i, s := range candidates {
		slipIDs[i] = s.ID
	}

	overlapping, err := uc.reservationRepo.ListActiveOverlapping(txCtx, slipIDs, req.StartDate, req.EndDate, nil)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to list overlapping reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list overlapping reservations: %v", ErrInternal, err)
	}

	occupied := make(map[int64]bool, len(overlapping))
	for _, r := range overlapping {
		occupied[r.SlipID] = true
	}

	for _, s := range candidates {
		if !occupied[s.ID] {
			return s, nil
		}
	}

	uc.logger.Info("CreateReservation: all %d candidate slips are occupied", len(candidates))
	return nil, ErrNoSlipsAvailable
}
