package update_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	boatRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/boat"
	reservationRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/reservation"
	slipRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/slip"
)

// UseCase use case редактирования подтверждённого бронирования
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

// Execute выполняет редактирование бронирования
//
// Редактировать можно только бронирования в статусе confirmed: после чек-ина
// изменение слипа или дат означало бы перемещение уже стоящей лодки.
// Любая комбинация изменений (лодка, слип, даты) проверяется и пишется
// атомарно: новый интервал конфликтует - отклоняется весь запрос,
// стоимость всегда пересчитывается от итоговых значений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: reservation=%d, actor=%d, staff=%t",
		req.ReservationID, req.Actor.UserID, req.Actor.IsStaff)

	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var result *domain.Reservation

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Читаем бронирование с блокировкой на всю транзакцию
		resv, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("UpdateReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 2. Доступ: владелец бронирования или сотрудник марины
		if !req.Actor.IsStaff && !req.Actor.Owns(resv.UserID) {
			uc.logger.Warn("UpdateReservation: user id=%d is not allowed to edit reservation id=%d",
				req.Actor.UserID, resv.ID)
			return ErrAccessDenied
		}

		// 3. Редактируемость: только confirmed до чек-ина
		if !resv.CanBeEdited() {
			uc.logger.Warn("UpdateReservation: reservation id=%d in status=%s is not editable",
				resv.ID, resv.Status)
			return ErrNotEditable
		}

		// 4. Применяем изменения поверх текущих значений
		if req.NewStartDate != nil {
			resv.StartDate = *req.NewStartDate
		}
		if req.NewEndDate != nil {
			resv.EndDate = *req.NewEndDate
		}

		if err := validateInterval(resv.StartDate, resv.EndDate); err != nil {
			uc.logger.Warn("UpdateReservation: invalid interval for reservation id=%d: %v", resv.ID, err)
			return err
		}

		// 5. Лодка: новая должна принадлежать владельцу бронирования
		boat, err := uc.resolveBoat(txCtx, resv, req.NewBoatID)
		if err != nil {
			return err
		}
		resv.BoatID = boat.ID

		// 6. Слип: выбранный или текущий, но после смены лодки/дат он обязан подходить
		slip, err := uc.resolveSlip(txCtx, resv, req.NewSlipID, boat)
		if err != nil {
			return err
		}
		resv.SlipID = slip.ID

		// 7. Перепроверка пересечений нового интервала, исключая само бронирование
		overlapping, err := uc.reservationRepo.ListActiveOverlapping(
			txCtx, []int64{slip.ID}, resv.StartDate, resv.EndDate, &resv.ID)
		if err != nil {
			uc.logger.Error("UpdateReservation: overlap recheck failed for slip id=%d: %v", slip.ID, err)
			return fmt.Errorf("%w: overlap recheck failed: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("UpdateReservation: slip id=%d conflicts on %s..%s",
				slip.ID, resv.StartDate.Format(domain.DateFormat), resv.EndDate.Format(domain.DateFormat))
			return ErrSlipConflict
		}

		// 8. Стоимость пересчитывается всегда, от фактической длины лодки
		cost := domain.ComputeCost(boat.LengthFt, resv.StartDate, resv.EndDate)
		resv.Months = cost.Months
		resv.TotalCost = cost.Total

		if err := uc.reservationRepo.Update(txCtx, resv, req.Actor.UserID, now); err != nil {
			uc.logger.Error("UpdateReservation: failed to update reservation id=%d: %v", resv.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result = resv
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%d, slip=%d, total=%.2f",
		result.ID, result.SlipID, result.TotalCost)

	boat, err := uc.boatRepo.GetByID(ctx, result.BoatID)
	if err != nil {
		uc.logger.Error("UpdateReservation: failed to reload boat id=%d: %v", result.BoatID, err)
		return nil, fmt.Errorf("%w: failed to reload boat: %v", ErrInternal, err)
	}
	cost := domain.ComputeCost(boat.LengthFt, result.StartDate, result.EndDate)

	return &Response{
		ReservationID:      result.ID,
		BoatID:             result.BoatID,
		SlipID:             result.SlipID,
		StartDate:          result.StartDate.Format(domain.DateFormat),
		EndDate:            result.EndDate.Format(domain.DateFormat),
		Status:             string(result.Status),
		Months:             result.Months,
		BaseCost:           cost.Base,
		ElectricHookupCost: cost.Hookup,
		TotalCost:          result.TotalCost,
		ConfirmationNumber: result.ConfirmationNumber,
	}, nil
}

// resolveBoat возвращает лодку бронирования с учётом возможной замены
func (uc *UseCase) resolveBoat(txCtx context.Context, resv *domain.Reservation, newBoatID *int64) (*domain.Boat, error) {
	boatID := resv.BoatID
	if newBoatID != nil {
		boatID = *newBoatID
	}

	boat, err := uc.boatRepo.GetByID(txCtx, boatID)
	if err != nil {
		if errors.Is(err, boatRepo.ErrBoatNotFound) {
			uc.logger.Warn("UpdateReservation: boat id=%d not found", boatID)
			return nil, ErrBoatNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get boat id=%d: %v", boatID, err)
		return nil, fmt.Errorf("%w: failed to get boat: %v", ErrInternal, err)
	}

	if boat.UserID != resv.UserID {
		uc.logger.Warn("UpdateReservation: boat id=%d is not owned by reservation owner id=%d",
			boat.ID, resv.UserID)
		return nil, ErrBoatNotOwned
	}

	return boat, nil
}

// resolveSlip возвращает слип бронирования с учётом возможной замены
// и проверяет, что он эксплуатируется и вмещает лодку
func (uc *UseCase) resolveSlip(txCtx context.Context, resv *domain.Reservation, newSlipID *int64, boat *domain.Boat) (*domain.Slip, error) {
	slipID := resv.SlipID
	if newSlipID != nil {
		slipID = *newSlipID
	}

	slip, err := uc.slipRepo.GetByID(txCtx, slipID)
	if err != nil {
		if errors.Is(err, slipRepo.ErrSlipNotFound) {
			uc.logger.Warn("UpdateReservation: slip id=%d not found", slipID)
			return nil, ErrSlipNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get slip id=%d: %v", slipID, err)
		return nil, fmt.Errorf("%w: failed to get slip: %v", ErrInternal, err)
	}

	// Текущий слип перепроверяется наравне с новым: после смены лодки
	// он мог перестать подходить по длине
	if newSlipID != nil && !slip.IsOperational() {
		uc.logger.Warn("UpdateReservation: slip id=%d is out of service", slip.ID)
		return nil, ErrSlipOutOfService
	}

	if slip.SizeClass < boat.LengthFt {
		uc.logger.Warn("UpdateReservation: slip id=%d size=%d is below boat length %d",
			slip.ID, slip.SizeClass, boat.LengthFt)
		return nil, ErrSlipTooSmall
	}

	return slip, nil
}

// validateInterval проверяет корректность итогового интервала бронирования
func validateInterval(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	days := int(end.Sub(start).Hours() / 24)
	if days < domain.MinBookingDays {
		return ErrDurationTooShort
	}

	return nil
}
