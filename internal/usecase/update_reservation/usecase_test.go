package update_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	boatRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/boat"
	reservationRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/reservation"
	slipRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/slip"
	"github.com/m04kA/Marina-SlipService/pkg/ptr"
)

type fakeSlipRepo struct {
	slips map[int64]*domain.Slip
}

func (f *fakeSlipRepo) GetByID(_ context.Context, id int64) (*domain.Slip, error) {
	slip, ok := f.slips[id]
	if !ok {
		return nil, slipRepo.ErrSlipNotFound
	}
	return slip, nil
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
	reservations map[int64]*domain.Reservation
	others       []*domain.Reservation
	updated      *domain.Reservation
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	clone := *r
	return &clone, nil
}

func (f *fakeReservationRepo) ListActiveOverlapping(_ context.Context, slipIDs []int64, start, end time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	inRequest := make(map[int64]bool, len(slipIDs))
	for _, id := range slipIDs {
		inRequest[id] = true
	}

	var result []*domain.Reservation
	for _, r := range f.others {
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if inRequest[r.SlipID] && r.IsActive() && domain.IntervalsOverlap(r.StartDate, r.EndDate, start, end) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) Update(_ context.Context, r *domain.Reservation, actorID int64, now time.Time) error {
	r.LastModifiedBy = &actorID
	r.LastModifiedAt = &now
	f.updated = r
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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

func newTestFixture() (*fakeReservationRepo, *UseCase) {
	slips := &fakeSlipRepo{slips: map[int64]*domain.Slip{
		1: {ID: 1, SizeClass: 26, LocationCode: "A-01", Status: domain.SlipStatusActive},
		2: {ID: 2, SizeClass: 40, LocationCode: "B-01", Status: domain.SlipStatusActive},
		3: {ID: 3, SizeClass: 50, LocationCode: "C-01", Status: domain.SlipStatusOutOfService},
	}}
	boats := &fakeBoatRepo{boats: map[int64]*domain.Boat{
		7: {ID: 7, UserID: 100, LengthFt: 24},
		8: {ID: 8, UserID: 100, LengthFt: 38},
		9: {ID: 9, UserID: 200, LengthFt: 20},
	}}
	reservations := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{
			10: {
				ID:        10,
				UserID:    100,
				BoatID:    7,
				SlipID:    1,
				StartDate: date("2026-05-01"),
				EndDate:   date("2026-05-31"),
				Status:    domain.StatusConfirmed,
				Months:    1,
				TotalCost: 262.50,
			},
		},
	}

	uc := NewUseCase(slips, boats, reservations, passthroughTxManager{}, nopLogger{})
	return reservations, uc
}

func owner() domain.ActorContext {
	return domain.ActorContext{UserID: 100}
}

func TestExecute_ExtendDatesRecomputesCost(t *testing.T) {
	reservations, uc := newTestFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         owner(),
		NewEndDate:    ptr.Ptr(date("2026-06-15")), // 45 дней
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Months)
	assert.InDelta(t, 525.00, resp.TotalCost, 0.001)

	require.NotNil(t, reservations.updated)
	assert.Equal(t, 2, reservations.updated.Months)
	assert.InDelta(t, 525.00, reservations.updated.TotalCost, 0.001)
}

func TestExecute_BoatSubstitutionRecomputesCostAndChecksFit(t *testing.T) {
	t.Run("новая лодка не влезает в текущий слип", func(t *testing.T) {
		_, uc := newTestFixture()

		_, err := uc.Execute(context.Background(), &Request{
			ReservationID: 10,
			Actor:         owner(),
			NewBoatID:     ptr.Ptr(int64(8)), // 38 футов против слипа класса 26
		})
		assert.ErrorIs(t, err, ErrSlipTooSmall)
	})

	t.Run("замена лодки вместе со слипом", func(t *testing.T) {
		reservations, uc := newTestFixture()

		resp, err := uc.Execute(context.Background(), &Request{
			ReservationID: 10,
			Actor:         owner(),
			NewBoatID:     ptr.Ptr(int64(8)),
			NewSlipID:     ptr.Ptr(int64(2)),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(8), resp.BoatID)
		assert.Equal(t, int64(2), resp.SlipID)

		// Стоимость пересчитана от длины новой лодки: 38 * 10.50 + 10.50
		assert.InDelta(t, 409.50, resp.TotalCost, 0.001)
		require.NotNil(t, reservations.updated)
	})
}

func TestExecute_ChecksBoatOwnershipAgainstReservationOwner(t *testing.T) {
	_, uc := newTestFixture()

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         domain.ActorContext{UserID: 300, IsStaff: true},
		NewBoatID:     ptr.Ptr(int64(9)), // лодка пользователя 200, бронь пользователя 100
	})
	assert.ErrorIs(t, err, ErrBoatNotOwned)
}

func TestExecute_ConflictRefusedWithoutPartialWrite(t *testing.T) {
	reservations, uc := newTestFixture()

	reservations.others = []*domain.Reservation{
		{ID: 40, SlipID: 1, Status: domain.StatusConfirmed, StartDate: date("2026-06-10"), EndDate: date("2026-07-10")},
	}

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         owner(),
		NewEndDate:    ptr.Ptr(date("2026-06-20")),
	})

	assert.ErrorIs(t, err, ErrSlipConflict)
	assert.Nil(t, reservations.updated)
}

func TestExecute_OwnRowExcludedFromOverlapCheck(t *testing.T) {
	reservations, uc := newTestFixture()

	// Собственная строка бронирования не конфликтует сама с собой
	reservations.others = []*domain.Reservation{
		{ID: 10, SlipID: 1, Status: domain.StatusConfirmed, StartDate: date("2026-05-01"), EndDate: date("2026-05-31")},
	}

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         owner(),
		NewEndDate:    ptr.Ptr(date("2026-06-01")),
	})

	require.NoError(t, err)
}

func TestExecute_AccessAndStateGuards(t *testing.T) {
	t.Run("чужое бронирование", func(t *testing.T) {
		_, uc := newTestFixture()

		_, err := uc.Execute(context.Background(), &Request{
			ReservationID: 10,
			Actor:         domain.ActorContext{UserID: 999},
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("сотрудник может редактировать чужое", func(t *testing.T) {
		_, uc := newTestFixture()

		_, err := uc.Execute(context.Background(), &Request{
			ReservationID: 10,
			Actor:         domain.ActorContext{UserID: 999, IsStaff: true},
		})
		require.NoError(t, err)
	})

	t.Run("после заселения редактировать нельзя", func(t *testing.T) {
		reservations, uc := newTestFixture()
		reservations.reservations[10].Status = domain.StatusCheckedIn

		_, err := uc.Execute(context.Background(), &Request{
			ReservationID: 10,
			Actor:         owner(),
		})
		assert.ErrorIs(t, err, ErrNotEditable)
	})

	t.Run("несуществующее бронирование", func(t *testing.T) {
		_, uc := newTestFixture()

		_, err := uc.Execute(context.Background(), &Request{
			ReservationID: 999,
			Actor:         owner(),
		})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("слишком короткий новый интервал", func(t *testing.T) {
		_, uc := newTestFixture()

		_, err := uc.Execute(context.Background(), &Request{
			ReservationID: 10,
			Actor:         owner(),
			NewEndDate:    ptr.Ptr(date("2026-05-10")),
		})
		assert.ErrorIs(t, err, ErrDurationTooShort)
	})
}
