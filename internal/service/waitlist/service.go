package waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	boatRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/boat"
	waitlistRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/waitlist"
	"github.com/m04kA/Marina-SlipService/internal/service/waitlist/models"
)

// Service менеджер очереди листа ожидания
// Единственный владелец многострочного инварианта плотности позиций:
// активные записи (position > 0) всегда образуют последовательность 1..N
type Service struct {
	waitlistRepo    WaitlistRepository
	slipRepo        SlipRepository
	boatRepo        BoatRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр менеджера листа ожидания
func NewService(
	waitlistRepo WaitlistRepository,
	slipRepo SlipRepository,
	boatRepo BoatRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		waitlistRepo:    waitlistRepo,
		slipRepo:        slipRepo,
		boatRepo:        boatRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Join ставит запрос в конец листа ожидания
// Позиция вычисляется в БД как MAX(position)+1, чтобы две конкурентные
// постановки не получили одинаковый ранг
func (s *Service) Join(ctx context.Context, req *models.JoinWaitlistRequest) (*models.WaitlistEntryResponse, error) {
	s.logger.Info("Join: user=%d, boat=%d, size=%d, period=%s..%s",
		req.Actor.UserID, req.BoatID, req.PreferredSize,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	if req.EndDate.Before(req.StartDate) {
		s.logger.Warn("Join: end date before start date for user=%d", req.Actor.UserID)
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	if !domain.IsSupportedSlipSize(req.PreferredSize) {
		s.logger.Warn("Join: unsupported preferred size=%d for user=%d", req.PreferredSize, req.Actor.UserID)
		return nil, fmt.Errorf("%w: unsupported slip size", ErrInvalidInput)
	}

	boat, err := s.boatRepo.GetByID(ctx, req.BoatID)
	if err != nil {
		if errors.Is(err, boatRepo.ErrBoatNotFound) {
			s.logger.Warn("Join: boat id=%d not found", req.BoatID)
			return nil, ErrBoatNotFound
		}
		s.logger.Error("Join: failed to get boat id=%d: %v", req.BoatID, err)
		return nil, fmt.Errorf("%w: Join - failed to get boat: %v", ErrInternal, err)
	}

	if boat.UserID != req.Actor.UserID {
		s.logger.Warn("Join: boat id=%d is not owned by user id=%d", req.BoatID, req.Actor.UserID)
		return nil, ErrBoatNotOwned
	}

	entry := &domain.WaitlistEntry{
		UserID:        req.Actor.UserID,
		BoatID:        req.BoatID,
		PreferredSize: req.PreferredSize,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	}

	created, err := s.waitlistRepo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("Join: failed to create waitlist entry for user=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: Join - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Join: user=%d joined waitlist, entry id=%d, position=%d",
		req.Actor.UserID, created.ID, created.Position)
	return models.FromDomainEntry(created), nil
}

// Cancel удаляет запись из листа ожидания, сохраняя плотность позиций
//
// Две записи (пометка удаления и сдвиг хвоста очереди) выполняются
// в одной транзакции: частичный успех после пометки, но до сдвига,
// испортил бы ранжирование всех последующих чтений. После коммита
// любой читатель видит уже перенумерованную очередь
func (s *Service) Cancel(ctx context.Context, entryID int64, req *models.CancelEntryRequest) error {
	s.logger.Info("Cancel: cancelling waitlist entry id=%d by user=%d", entryID, req.Actor.UserID)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Читаем запись с блокировкой и фиксируем старую позицию
		entry, err := s.waitlistRepo.GetByID(txCtx, entryID)
		if err != nil {
			if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
				s.logger.Warn("Cancel: waitlist entry id=%d not found", entryID)
				return ErrEntryNotFound
			}
			s.logger.Error("Cancel: failed to get waitlist entry id=%d: %v", entryID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// 2. Только владелец записи; сотрудники на этом слое не моделируются
		if entry.UserID != req.Actor.UserID {
			s.logger.Warn("Cancel: user=%d does not own waitlist entry id=%d", req.Actor.UserID, entryID)
			return ErrAccessDenied
		}

		if entry.IsRemoved() {
			s.logger.Warn("Cancel: waitlist entry id=%d is already removed", entryID)
			return ErrAlreadyRemoved
		}

		oldPos := entry.Position

		// 3. Помечаем запись удаленной (position = 0)
		if err := s.waitlistRepo.MarkRemoved(txCtx, entryID); err != nil {
			s.logger.Error("Cancel: failed to mark waitlist entry id=%d removed: %v", entryID, err)
			return fmt.Errorf("%w: Cancel - failed to mark removed: %v", ErrInternal, err)
		}

		// 4. Сдвигаем всех, кто стоял дальше, на одну позицию влево
		if err := s.waitlistRepo.ShiftLeftAfter(txCtx, oldPos); err != nil {
			s.logger.Error("Cancel: failed to shift queue after position=%d: %v", oldPos, err)
			return fmt.Errorf("%w: Cancel - failed to shift queue: %v", ErrInternal, err)
		}

		s.logger.Info("Cancel: removed waitlist entry id=%d from position=%d", entryID, oldPos)
		return nil
	})
}

// GetQueue получает всю активную очередь в порядке позиций
// Обзорная операция для сотрудников марины
func (s *Service) GetQueue(ctx context.Context, actor domain.ActorContext) (*models.WaitlistEntryListResponse, error) {
	s.logger.Info("GetQueue: queue snapshot requested by actor=%d", actor.UserID)

	if !actor.IsStaff {
		s.logger.Warn("GetQueue: user=%d is not staff", actor.UserID)
		return nil, ErrAccessDenied
	}

	entries, err := s.waitlistRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("GetQueue: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetQueue - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetQueue: successfully fetched %d active entries", len(entries))
	return models.FromDomainEntryList(entries), nil
}

// GetUserEntries получает записи листа ожидания пользователя
func (s *Service) GetUserEntries(ctx context.Context, userID int64) (*models.WaitlistEntryListResponse, error) {
	s.logger.Info("GetUserEntries: fetching waitlist entries for user=%d", userID)

	entries, err := s.waitlistRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserEntries: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserEntries - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserEntries: successfully fetched %d entries for user=%d", len(entries), userID)
	return models.FromDomainEntryList(entries), nil
}

// CheckEligibility проверяет, действительно ли запись еще ждет
// Использует ту же логику пересечений, что и поиск доступности:
// если нашелся подходящий свободный слип, запись можно разрешать.
// Административная проверка, только чтение - статусы не меняет
func (s *Service) CheckEligibility(ctx context.Context, entryID int64) (*models.EligibilityResponse, error) {
	s.logger.Info("CheckEligibility: checking waitlist entry id=%d", entryID)

	entry, err := s.waitlistRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			s.logger.Warn("CheckEligibility: waitlist entry id=%d not found", entryID)
			return nil, ErrEntryNotFound
		}
		s.logger.Error("CheckEligibility: failed to get waitlist entry id=%d: %v", entryID, err)
		return nil, fmt.Errorf("%w: CheckEligibility - repository error: %v", ErrInternal, err)
	}

	if entry.IsRemoved() {
		s.logger.Warn("CheckEligibility: waitlist entry id=%d is already removed", entryID)
		return nil, ErrAlreadyRemoved
	}

	// Требуемый размер - максимум из предпочтения и длины лодки
	required := entry.PreferredSize
	boat, err := s.boatRepo.GetByID(ctx, entry.BoatID)
	if err != nil {
		if errors.Is(err, boatRepo.ErrBoatNotFound) {
			s.logger.Warn("CheckEligibility: boat id=%d not found", entry.BoatID)
			return nil, ErrBoatNotFound
		}
		s.logger.Error("CheckEligibility: failed to get boat id=%d: %v", entry.BoatID, err)
		return nil, fmt.Errorf("%w: CheckEligibility - failed to get boat: %v", ErrInternal, err)
	}
	if boat.LengthFt > required {
		required = boat.LengthFt
	}

	candidates, err := s.slipRepo.List(ctx, required, []domain.SlipStatus{domain.SlipStatusOutOfService})
	if err != nil {
		s.logger.Error("CheckEligibility: failed to list slips: %v", err)
		return nil, fmt.Errorf("%w: CheckEligibility - failed to list slips: %v", ErrInternal, err)
	}

	resp := &models.EligibilityResponse{
		EntryID:      entryID,
		StillWaiting: true,
	}

	if len(candidates) == 0 {
		s.logger.Info("CheckEligibility: no slips of size >= %d exist for entry id=%d", required, entryID)
		return resp, nil
	}

	slipIDs := make([]int64, len(candidates))
	for i, slip := range candidates {
		slipIDs[i] = slip.ID
	}

	overlapping, err := s.reservationRepo.ListActiveOverlapping(ctx, slipIDs, entry.StartDate, entry.EndDate, nil)
	if err != nil {
		s.logger.Error("CheckEligibility: failed to list overlapping reservations: %v", err)
		return nil, fmt.Errorf("%w: CheckEligibility - failed to list overlapping reservations: %v", ErrInternal, err)
	}

	occupied := make(map[int64]bool, len(overlapping))
	for _, r := range overlapping {
		occupied[r.SlipID] = true
	}

	for _, slip := range candidates {
		if !occupied[slip.ID] {
			resp.StillWaiting = false
			resp.AvailableSlip = &slip.ID
			s.logger.Info("CheckEligibility: entry id=%d can be granted slip id=%d", entryID, slip.ID)
			return resp, nil
		}
	}

	s.logger.Info("CheckEligibility: entry id=%d is still waiting", entryID)
	return resp, nil
}
