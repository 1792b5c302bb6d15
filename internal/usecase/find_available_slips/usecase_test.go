package find_available_slips

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	boatRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/boat"
)

type fakeSlipRepo struct {
	slips      []*domain.Slip
	gotMinSize int
}

func (f *fakeSlipRepo) List(_ context.Context, minSize int, _ []domain.SlipStatus) ([]*domain.Slip, error) {
	f.gotMinSize = minSize
	result := make([]*domain.Slip, 0, len(f.slips))
	for _, s := range f.slips {
		if s.SizeClass >= minSize {
			result = append(result, s)
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
	overlapping []*domain.Reservation
}

func (f *fakeReservationRepo) ListActiveOverlapping(_ context.Context, slipIDs []int64, start, end time.Time, _ *int64) ([]*domain.Reservation, error) {
	inRequest := make(map[int64]bool, len(slipIDs))
	for _, id := range slipIDs {
		inRequest[id] = true
	}

	var result []*domain.Reservation
	for _, r := range f.overlapping {
		if inRequest[r.SlipID] && domain.IntervalsOverlap(r.StartDate, r.EndDate, start, end) {
			result = append(result, r)
		}
	}
	return result, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

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

func newTestUseCase(slips *fakeSlipRepo, boats *fakeBoatRepo, reservations *fakeReservationRepo, now time.Time) *UseCase {
	uc := NewUseCase(slips, boats, reservations, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_RequiredSizeRaisedToBoatLength(t *testing.T) {
	slips := &fakeSlipRepo{slips: []*domain.Slip{
		{ID: 1, SizeClass: 26, LocationCode: "A-01", Status: domain.SlipStatusActive},
		{ID: 2, SizeClass: 40, LocationCode: "B-01", Status: domain.SlipStatusActive},
	}}
	boats := &fakeBoatRepo{boats: map[int64]*domain.Boat{
		7: {ID: 7, UserID: 100, Name: "Sirena", LengthFt: 34},
	}}
	reservations := &fakeReservationRepo{}

	uc := newTestUseCase(slips, boats, reservations, date("2026-04-01"))

	// Клиент выбирает класс 26 для лодки в 34 фута
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		BoatID:        7,
		RequestedSize: 26,
		StartDate:     date("2026-05-01"),
		EndDate:       date("2026-06-01"),
	})

	require.NoError(t, err)
	assert.Equal(t, 34, resp.RequiredSize)
	assert.Equal(t, 34, slips.gotMinSize)

	// Слип класса 26 отфильтрован, остался только 40-футовый
	require.Len(t, resp.Slips, 1)
	assert.Equal(t, int64(2), resp.Slips[0].SlipID)
	assert.True(t, resp.Slips[0].IsAvailable)
}

func TestExecute_OccupiedSlipsMarkedUnavailable(t *testing.T) {
	slips := &fakeSlipRepo{slips: []*domain.Slip{
		{ID: 1, SizeClass: 26, LocationCode: "A-01", Status: domain.SlipStatusActive},
		{ID: 2, SizeClass: 26, LocationCode: "A-02", Status: domain.SlipStatusActive},
		{ID: 3, SizeClass: 40, LocationCode: "B-01", Status: domain.SlipStatusActive},
	}}
	boats := &fakeBoatRepo{boats: map[int64]*domain.Boat{
		7: {ID: 7, UserID: 100, LengthFt: 24},
	}}
	reservations := &fakeReservationRepo{overlapping: []*domain.Reservation{
		{ID: 50, SlipID: 1, Status: domain.StatusConfirmed, StartDate: date("2026-05-15"), EndDate: date("2026-07-01")},
	}}

	uc := newTestUseCase(slips, boats, reservations, date("2026-04-01"))

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		BoatID:        7,
		RequestedSize: 26,
		StartDate:     date("2026-05-01"),
		EndDate:       date("2026-06-01"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Slips, 3)

	// Порядок кандидатов сохранен, занятый слип помечен
	assert.Equal(t, int64(1), resp.Slips[0].SlipID)
	assert.False(t, resp.Slips[0].IsAvailable)
	assert.True(t, resp.Slips[1].IsAvailable)
	assert.True(t, resp.Slips[2].IsAvailable)
}

func TestExecute_NonOverlappingReservationDoesNotBlock(t *testing.T) {
	slips := &fakeSlipRepo{slips: []*domain.Slip{
		{ID: 1, SizeClass: 26, LocationCode: "A-01", Status: domain.SlipStatusActive},
	}}
	boats := &fakeBoatRepo{boats: map[int64]*domain.Boat{
		7: {ID: 7, UserID: 100, LengthFt: 24},
	}}
	reservations := &fakeReservationRepo{overlapping: []*domain.Reservation{
		{ID: 50, SlipID: 1, Status: domain.StatusConfirmed, StartDate: date("2026-07-01"), EndDate: date("2026-08-01")},
	}}

	uc := newTestUseCase(slips, boats, reservations, date("2026-04-01"))

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		BoatID:        7,
		RequestedSize: 26,
		StartDate:     date("2026-05-01"),
		EndDate:       date("2026-06-01"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Slips, 1)
	assert.True(t, resp.Slips[0].IsAvailable)
}

func TestExecute_ValidationErrors(t *testing.T) {
	slips := &fakeSlipRepo{}
	boats := &fakeBoatRepo{boats: map[int64]*domain.Boat{
		7: {ID: 7, UserID: 100, LengthFt: 24},
	}}
	uc := newTestUseCase(slips, boats, &fakeReservationRepo{}, date("2026-04-01"))

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name: "дата начала в прошлом",
			req: &Request{
				UserID: 100, BoatID: 7, RequestedSize: 26,
				StartDate: date("2026-03-01"), EndDate: date("2026-04-15"),
			},
			wantErr: ErrStartDateInPast,
		},
		{
			name: "длительность меньше 30 дней",
			req: &Request{
				UserID: 100, BoatID: 7, RequestedSize: 26,
				StartDate: date("2026-05-01"), EndDate: date("2026-05-15"),
			},
			wantErr: ErrDurationTooShort,
		},
		{
			name: "размер вне списка классов",
			req: &Request{
				UserID: 100, BoatID: 7, RequestedSize: 34,
				StartDate: date("2026-05-01"), EndDate: date("2026-06-01"),
			},
			wantErr: ErrUnsupportedSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_BoatOwnership(t *testing.T) {
	slips := &fakeSlipRepo{}
	boats := &fakeBoatRepo{boats: map[int64]*domain.Boat{
		7: {ID: 7, UserID: 100, LengthFt: 24},
	}}
	uc := newTestUseCase(slips, boats, &fakeReservationRepo{}, date("2026-04-01"))

	t.Run("лодка не найдена", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			UserID: 100, BoatID: 999, RequestedSize: 26,
			StartDate: date("2026-05-01"), EndDate: date("2026-06-01"),
		})
		assert.ErrorIs(t, err, ErrBoatNotFound)
	})

	t.Run("лодка чужая", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			UserID: 200, BoatID: 7, RequestedSize: 26,
			StartDate: date("2026-05-01"), EndDate: date("2026-06-01"),
		})
		assert.ErrorIs(t, err, ErrBoatNotOwned)
	})
}
