package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	reservationRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/reservation"
	identityClient "github.com/m04kA/Marina-SlipService/internal/integrations/identityservice"
	"github.com/m04kA/Marina-SlipService/internal/service/reservations/models"
)

// Service сервис жизненного цикла бронирований
// Владеет переходами статусов: заселение, завершение, отмена
type Service struct {
	reservationRepo ReservationRepository
	paymentRepo     PaymentRepository
	identityClient  IdentityServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	paymentRepo PaymentRepository,
	identityClient IdentityServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		identityClient:  identityClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование, сотрудник - любое
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.ActorContext) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, actor.UserID)

	reservation, err := s.getReservation(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if !actor.IsStaff && !actor.Owns(reservation.UserID) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// CheckIn переводит бронирование confirmed -> checked_in
//
// Гарды перехода: текущий момент в пределах 24 часов от даты начала
// (в любую сторону) и по бронированию записан хотя бы один платеж.
// Отказ гарда - ожидаемый исход, строка бронирования не изменяется
func (s *Service) CheckIn(ctx context.Context, reservationID int64, req *models.CheckInRequest) (*models.ReservationResponse, error) {
	s.logger.Info("CheckIn: checking in reservation id=%d by actor=%d", reservationID, req.Actor.UserID)

	now := s.timeProvider.Now()
	var result *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.getReservation(txCtx, reservationID, "CheckIn")
		if err != nil {
			return err
		}

		if !req.Actor.IsStaff && !req.Actor.Owns(reservation.UserID) {
			s.logger.Warn("CheckIn: access denied for user=%d to reservation id=%d", req.Actor.UserID, reservationID)
			return ErrAccessDenied
		}

		if reservation.Status != domain.StatusConfirmed {
			s.logger.Warn("CheckIn: reservation id=%d has status=%s, cannot check in", reservationID, reservation.Status)
			return ErrNotConfirmed
		}

		if !reservation.WithinCheckInWindow(now) {
			s.logger.Warn("CheckIn: reservation id=%d is outside check-in window, start=%s",
				reservationID, reservation.StartDate.Format(domain.DateFormat))
			return ErrOutsideCheckInWindow
		}

		paymentCount, err := s.paymentRepo.CountByReservation(txCtx, reservationID)
		if err != nil {
			s.logger.Error("CheckIn: failed to count payments for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: CheckIn - failed to count payments: %v", ErrInternal, err)
		}

		if paymentCount == 0 {
			s.logger.Warn("CheckIn: reservation id=%d has no payments on file", reservationID)
			return ErrPaymentRequired
		}

		if err := s.reservationRepo.CheckIn(txCtx, reservationID, req.Actor.UserID, now); err != nil {
			s.logger.Error("CheckIn: failed to check in reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: CheckIn - repository error: %v", ErrInternal, err)
		}

		reservation.Status = domain.StatusCheckedIn
		reservation.CheckedInAt = &now
		reservation.CheckedInBy = &req.Actor.UserID
		result = reservation
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("CheckIn: successfully checked in reservation id=%d at %s",
		reservationID, now.Format("2006-01-02 15:04:05"))
	return models.FromDomainReservation(result), nil
}

// Complete переводит бронирование в статус completed
//
// Асимметрия гардов намеренная: владелец может завершить только
// заселённое бронирование после 30 дней с момента заселения,
// сотрудник завершает из любого нетерминального статуса без проверок
// (ручная корректировка)
func (s *Service) Complete(ctx context.Context, reservationID int64, req *models.CompleteRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Complete: completing reservation id=%d by actor=%d, staff=%t",
		reservationID, req.Actor.UserID, req.Actor.IsStaff)

	now := s.timeProvider.Now()
	var result *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.getReservation(txCtx, reservationID, "Complete")
		if err != nil {
			return err
		}

		if req.Actor.IsStaff {
			if reservation.IsTerminal() {
				s.logger.Warn("Complete: reservation id=%d is already terminal, status=%s", reservationID, reservation.Status)
				return ErrAlreadyTerminal
			}
		} else {
			if !req.Actor.Owns(reservation.UserID) {
				s.logger.Warn("Complete: access denied for user=%d to reservation id=%d", req.Actor.UserID, reservationID)
				return ErrAccessDenied
			}

			if reservation.Status != domain.StatusCheckedIn {
				s.logger.Warn("Complete: reservation id=%d has status=%s, self-completion requires checked_in",
					reservationID, reservation.Status)
				return ErrNotCheckedIn
			}

			if !reservation.EligibleForSelfCompletion(now) {
				s.logger.Warn("Complete: reservation id=%d checked in too recently for self-completion", reservationID)
				return ErrCompletionTooEarly
			}
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, reservationID, domain.StatusCompleted, req.Actor.UserID, now); err != nil {
			s.logger.Error("Complete: failed to update reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
		}

		reservation.Status = domain.StatusCompleted
		result = reservation
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Complete: successfully completed reservation id=%d", reservationID)
	return models.FromDomainReservation(result), nil
}

// Cancel переводит бронирование в статус canceled
//
// Отмена - смена статуса, не удаление строки; слип сразу освобождается
// для поиска доступности. Сотрудник отменяет без подтверждения,
// владелец обязан повторно подтвердить текущий пароль
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by actor=%d, staff=%t",
		reservationID, req.Actor.UserID, req.Actor.IsStaff)

	now := s.timeProvider.Now()

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.getReservation(txCtx, reservationID, "Cancel")
		if err != nil {
			return err
		}

		if !req.Actor.IsStaff {
			if !req.Actor.Owns(reservation.UserID) {
				s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", req.Actor.UserID, reservationID)
				return ErrAccessDenied
			}

			// Активной сессии недостаточно для деструктивного действия
			if err := s.identityClient.VerifyCredential(txCtx, req.Actor.UserID, req.Password); err != nil {
				if errors.Is(err, identityClient.ErrInvalidCredential) {
					s.logger.Warn("Cancel: credential rejected for user=%d on reservation id=%d",
						req.Actor.UserID, reservationID)
					return ErrInvalidCredential
				}
				s.logger.Error("Cancel: credential verification failed for user=%d: %v", req.Actor.UserID, err)
				return fmt.Errorf("%w: Cancel - credential verification failed: %v", ErrInternal, err)
			}
		}

		if !reservation.CanBeCancelled() {
			s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
			return ErrCannotCancel
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, reservationID, domain.StatusCanceled, req.Actor.UserID, now); err != nil {
			s.logger.Error("Cancel: failed to cancel reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
		return nil
	})
}

// RecordPayment записывает платеж по бронированию
// Запись ведет сотрудник марины; движку платеж нужен только как факт
// для гарда заселения
func (s *Service) RecordPayment(ctx context.Context, reservationID int64, req *models.RecordPaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("RecordPayment: recording payment for reservation id=%d by actor=%d",
		reservationID, req.Actor.UserID)

	if !req.Actor.IsStaff {
		s.logger.Warn("RecordPayment: user=%d is not staff", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	if req.Amount <= 0 {
		s.logger.Warn("RecordPayment: non-positive amount=%.2f for reservation id=%d", req.Amount, reservationID)
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	reservation, err := s.getReservation(ctx, reservationID, "RecordPayment")
	if err != nil {
		return nil, err
	}

	if reservation.IsTerminal() {
		s.logger.Warn("RecordPayment: reservation id=%d is terminal, status=%s", reservationID, reservation.Status)
		return nil, ErrAlreadyTerminal
	}

	var cardSuffix *string
	if req.CardSuffix != "" {
		cardSuffix = &req.CardSuffix
	}

	record := &domain.PaymentRecord{
		ReservationID: reservationID,
		Amount:        req.Amount,
		Method:        req.Method,
		CardSuffix:    cardSuffix,
		RecordedBy:    req.Actor.UserID,
	}

	created, err := s.paymentRepo.Create(ctx, record)
	if err != nil {
		s.logger.Error("RecordPayment: failed to create payment for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: RecordPayment - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RecordPayment: successfully recorded payment id=%d for reservation id=%d",
		created.ID, reservationID)
	return models.FromDomainPayment(created), nil
}

// CompletePastDue массово завершает заселённые бронирования с истекшей датой окончания
// Служебная операция для периодического задания; идемпотентна - уже
// завершённые строки не перештамповываются
func (s *Service) CompletePastDue(ctx context.Context, actor domain.ActorContext) (*models.SweepResponse, error) {
	s.logger.Info("CompletePastDue: sweep requested by actor=%d", actor.UserID)

	if !actor.IsStaff {
		s.logger.Warn("CompletePastDue: user=%d is not staff", actor.UserID)
		return nil, ErrAccessDenied
	}

	now := s.timeProvider.Now()

	count, err := s.reservationRepo.CompletePastDue(ctx, now, now)
	if err != nil {
		s.logger.Error("CompletePastDue: sweep failed: %v", err)
		return nil, fmt.Errorf("%w: CompletePastDue - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CompletePastDue: completed %d past-due reservations", count)
	return &models.SweepResponse{CompletedCount: count}, nil
}

// getReservation читает бронирование, маппя "не найдено" на сервисную ошибку
func (s *Service) getReservation(ctx context.Context, id int64, op string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}
