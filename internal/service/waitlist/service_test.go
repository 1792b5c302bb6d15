package waitlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	boatRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/boat"
	waitlistRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/waitlist"
	"github.com/m04kA/Marina-SlipService/internal/service/waitlist/models"
)

type fakeWaitlistRepo struct {
	entries map[int64]*domain.WaitlistEntry
	nextPos int

	created    *domain.WaitlistEntry
	operations []string
	shiftedPos *int
}

func (f *fakeWaitlistRepo) Create(_ context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	created := *entry
	created.ID = int64(100 + f.nextPos)
	created.Position = f.nextPos
	f.nextPos++
	f.created = &created
	return &created, nil
}

func (f *fakeWaitlistRepo) GetByID(_ context.Context, id int64) (*domain.WaitlistEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, waitlistRepo.ErrEntryNotFound
	}
	clone := *e
	return &clone, nil
}

func (f *fakeWaitlistRepo) ListActive(_ context.Context) ([]*domain.WaitlistEntry, error) {
	var result []*domain.WaitlistEntry
	for _, e := range f.entries {
		if !e.IsRemoved() {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeWaitlistRepo) GetByUserID(_ context.Context, userID int64) ([]*domain.WaitlistEntry, error) {
	var result []*domain.WaitlistEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeWaitlistRepo) MarkRemoved(_ context.Context, id int64) error {
	f.operations = append(f.operations, "mark_removed")
	f.entries[id].Position = domain.RemovedPosition
	return nil
}

func (f *fakeWaitlistRepo) ShiftLeftAfter(_ context.Context, oldPos int) error {
	f.operations = append(f.operations, "shift_left")
	f.shiftedPos = &oldPos
	for _, e := range f.entries {
		if e.Position > oldPos {
			e.Position--
		}
	}
	return nil
}

type fakeSlipRepo struct {
	slips []*domain.Slip
}

func (f *fakeSlipRepo) List(_ context.Context, minSize int, excludeStatuses []domain.SlipStatus) ([]*domain.Slip, error) {
	excluded := make(map[domain.SlipStatus]bool, len(excludeStatuses))
	for _, s := range excludeStatuses {
		excluded[s] = true
	}

	var result []*domain.Slip
	for _, slip := range f.slips {
		if slip.SizeClass >= minSize && !excluded[slip.Status] {
			result = append(result, slip)
		}
	}
	return result, nil
}

type fakeBoatRepo struct {
	boats map[int64]*domain.Boat
}

func (f *fakeBoatRepo) GetByID(_ context.Context, id int64) (*domain.Boat, error) {
	boat, ok := f.boats[id]
	if !ok {
		return nil, boatRepo.ErrBoatNotFound
	}
	return boat, nil
}

type fakeReservationRepo struct {
	active []*domain.Reservation
}

func (f *fakeReservationRepo) ListActiveOverlapping(_ context.Context, slipIDs []int64, start, end time.Time, _ *int64) ([]*domain.Reservation, error) {
	inRequest := make(map[int64]bool, len(slipIDs))
	for _, id := range slipIDs {
		inRequest[id] = true
	}

	var result []*domain.Reservation
	for _, r := range f.active {
		if inRequest[r.SlipID] && r.IsActive() && domain.IntervalsOverlap(r.StartDate, r.EndDate, start, end) {
			result = append(result, r)
		}
	}
	return result, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestService() (*fakeWaitlistRepo, *fakeSlipRepo, *fakeReservationRepo, *Service) {
	queue := &fakeWaitlistRepo{
		nextPos: 4,
		entries: map[int64]*domain.WaitlistEntry{
			101: {ID: 101, UserID: 100, BoatID: 7, PreferredSize: 26, Position: 1, StartDate: date("2026-06-01"), EndDate: date("2026-07-01")},
			102: {ID: 102, UserID: 200, BoatID: 9, PreferredSize: 40, Position: 2, StartDate: date("2026-06-01"), EndDate: date("2026-07-01")},
			103: {ID: 103, UserID: 300, BoatID: 11, PreferredSize: 26, Position: 3, StartDate: date("2026-06-15"), EndDate: date("2026-07-15")},
		},
	}
	slips := &fakeSlipRepo{slips: []*domain.Slip{
		{ID: 1, SizeClass: 26, LocationCode: "A-01", Status: domain.SlipStatusActive},
		{ID: 2, SizeClass: 40, LocationCode: "B-01", Status: domain.SlipStatusActive},
	}}
	boats := &fakeBoatRepo{boats: map[int64]*domain.Boat{
		7:  {ID: 7, UserID: 100, LengthFt: 24},
		9:  {ID: 9, UserID: 200, LengthFt: 38},
		11: {ID: 11, UserID: 300, LengthFt: 20},
	}}
	reservations := &fakeReservationRepo{}

	svc := NewService(queue, slips, boats, reservations, passthroughTxManager{}, nopLogger{})
	return queue, slips, reservations, svc
}

func TestJoin(t *testing.T) {
	t.Run("постановка в конец очереди", func(t *testing.T) {
		queue, _, _, svc := newTestService()

		resp, err := svc.Join(context.Background(), &models.JoinWaitlistRequest{
			Actor:         domain.ActorContext{UserID: 100},
			BoatID:        7,
			PreferredSize: 26,
			StartDate:     date("2026-08-01"),
			EndDate:       date("2026-09-01"),
		})

		require.NoError(t, err)
		assert.Equal(t, 4, resp.Position)
		require.NotNil(t, queue.created)
		assert.Equal(t, int64(100), queue.created.UserID)
	})

	t.Run("чужая лодка", func(t *testing.T) {
		_, _, _, svc := newTestService()

		_, err := svc.Join(context.Background(), &models.JoinWaitlistRequest{
			Actor:         domain.ActorContext{UserID: 100},
			BoatID:        9, // лодка пользователя 200
			PreferredSize: 26,
			StartDate:     date("2026-08-01"),
			EndDate:       date("2026-09-01"),
		})
		assert.ErrorIs(t, err, ErrBoatNotOwned)
	})

	t.Run("несуществующая лодка", func(t *testing.T) {
		_, _, _, svc := newTestService()

		_, err := svc.Join(context.Background(), &models.JoinWaitlistRequest{
			Actor:         domain.ActorContext{UserID: 100},
			BoatID:        999,
			PreferredSize: 26,
			StartDate:     date("2026-08-01"),
			EndDate:       date("2026-09-01"),
		})
		assert.ErrorIs(t, err, ErrBoatNotFound)
	})

	t.Run("неподдерживаемый размер слипа", func(t *testing.T) {
		_, _, _, svc := newTestService()

		_, err := svc.Join(context.Background(), &models.JoinWaitlistRequest{
			Actor:         domain.ActorContext{UserID: 100},
			BoatID:        7,
			PreferredSize: 34,
			StartDate:     date("2026-08-01"),
			EndDate:       date("2026-09-01"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("дата окончания раньше начала", func(t *testing.T) {
		_, _, _, svc := newTestService()

		_, err := svc.Join(context.Background(), &models.JoinWaitlistRequest{
			Actor:         domain.ActorContext{UserID: 100},
			BoatID:        7,
			PreferredSize: 26,
			StartDate:     date("2026-09-01"),
			EndDate:       date("2026-08-01"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCancel(t *testing.T) {
	t.Run("удаление из середины сдвигает хвост", func(t *testing.T) {
		queue, _, _, svc := newTestService()

		err := svc.Cancel(context.Background(), 102, &models.CancelEntryRequest{
			Actor: domain.ActorContext{UserID: 200},
		})

		require.NoError(t, err)

		// Пометка и сдвиг выполняются строго в этом порядке
		assert.Equal(t, []string{"mark_removed", "shift_left"}, queue.operations)
		require.NotNil(t, queue.shiftedPos)
		assert.Equal(t, 2, *queue.shiftedPos)

		// Позиции после удаления остаются плотными: 1, 2
		assert.Equal(t, domain.RemovedPosition, queue.entries[102].Position)
		assert.Equal(t, 1, queue.entries[101].Position)
		assert.Equal(t, 2, queue.entries[103].Position)
	})

	t.Run("удаление последней записи не трогает остальных", func(t *testing.T) {
		queue, _, _, svc := newTestService()

		err := svc.Cancel(context.Background(), 103, &models.CancelEntryRequest{
			Actor: domain.ActorContext{UserID: 300},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, queue.entries[101].Position)
		assert.Equal(t, 2, queue.entries[102].Position)
	})

	t.Run("только владелец записи", func(t *testing.T) {
		queue, _, _, svc := newTestService()

		err := svc.Cancel(context.Background(), 102, &models.CancelEntryRequest{
			Actor: domain.ActorContext{UserID: 100},
		})

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, queue.operations)
	})

	t.Run("повторное удаление", func(t *testing.T) {
		queue, _, _, svc := newTestService()
		queue.entries[102].Position = domain.RemovedPosition

		err := svc.Cancel(context.Background(), 102, &models.CancelEntryRequest{
			Actor: domain.ActorContext{UserID: 200},
		})

		assert.ErrorIs(t, err, ErrAlreadyRemoved)
		assert.Empty(t, queue.operations)
	})

	t.Run("несуществующая запись", func(t *testing.T) {
		_, _, _, svc := newTestService()

		err := svc.Cancel(context.Background(), 999, &models.CancelEntryRequest{
			Actor: domain.ActorContext{UserID: 100},
		})
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})
}

func TestGetQueue(t *testing.T) {
	t.Run("сотрудник видит всю очередь", func(t *testing.T) {
		queue, _, _, svc := newTestService()
		queue.entries[103].Position = domain.RemovedPosition

		resp, err := svc.GetQueue(context.Background(), domain.ActorContext{UserID: 1, IsStaff: true})

		require.NoError(t, err)
		assert.Len(t, resp.Entries, 2)
	})

	t.Run("только для сотрудников", func(t *testing.T) {
		_, _, _, svc := newTestService()

		_, err := svc.GetQueue(context.Background(), domain.ActorContext{UserID: 100})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestCheckEligibility(t *testing.T) {
	t.Run("нашелся свободный слип", func(t *testing.T) {
		_, _, _, svc := newTestService()

		resp, err := svc.CheckEligibility(context.Background(), 101)

		require.NoError(t, err)
		assert.False(t, resp.StillWaiting)
		require.NotNil(t, resp.AvailableSlip)
		assert.Equal(t, int64(1), *resp.AvailableSlip)
	})

	t.Run("требуемый размер поднимается до длины лодки", func(t *testing.T) {
		// Лодка 38 футов при предпочтении 40: подходит только слип класса 40
		_, _, reservations, svc := newTestService()
		reservations.active = []*domain.Reservation{
			{ID: 1, SlipID: 2, Status: domain.StatusConfirmed, StartDate: date("2026-06-01"), EndDate: date("2026-07-01")},
		}

		resp, err := svc.CheckEligibility(context.Background(), 102)

		require.NoError(t, err)
		assert.True(t, resp.StillWaiting)
		assert.Nil(t, resp.AvailableSlip)
	})

	t.Run("все подходящие слипы заняты", func(t *testing.T) {
		_, _, reservations, svc := newTestService()
		reservations.active = []*domain.Reservation{
			{ID: 1, SlipID: 1, Status: domain.StatusConfirmed, StartDate: date("2026-06-01"), EndDate: date("2026-07-01")},
			{ID: 2, SlipID: 2, Status: domain.StatusCheckedIn, StartDate: date("2026-06-01"), EndDate: date("2026-07-01")},
		}

		resp, err := svc.CheckEligibility(context.Background(), 101)

		require.NoError(t, err)
		assert.True(t, resp.StillWaiting)
	})

	t.Run("отмененное бронирование освобождает слип", func(t *testing.T) {
		_, _, reservations, svc := newTestService()
		reservations.active = []*domain.Reservation{
			{ID: 1, SlipID: 1, Status: domain.StatusCanceled, StartDate: date("2026-06-01"), EndDate: date("2026-07-01")},
		}

		resp, err := svc.CheckEligibility(context.Background(), 101)

		require.NoError(t, err)
		assert.False(t, resp.StillWaiting)
	})

	t.Run("удаленная запись не проверяется", func(t *testing.T) {
		queue, _, _, svc := newTestService()
		queue.entries[101].Position = domain.RemovedPosition

		_, err := svc.CheckEligibility(context.Background(), 101)
		assert.ErrorIs(t, err, ErrAlreadyRemoved)
	})
}
