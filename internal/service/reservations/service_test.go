package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	reservationRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/reservation"
	identityClient "github.com/m04kA/Marina-SlipService/internal/integrations/identityservice"
	"github.com/m04kA/Marina-SlipService/internal/service/reservations/models"
)

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation

	checkedInID   *int64
	statusUpdates []domain.ReservationStatus
	sweptCount    int64
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	clone := *r
	return &clone, nil
}

func (f *fakeReservationRepo) GetByUserID(_ context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.UserID != userID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeReservationRepo) CheckIn(_ context.Context, id int64, _ int64, now time.Time) error {
	f.checkedInID = &id
	r := f.reservations[id]
	r.Status = domain.StatusCheckedIn
	r.CheckedInAt = &now
	return nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus, _ int64, _ time.Time) error {
	f.statusUpdates = append(f.statusUpdates, status)
	f.reservations[id].Status = status
	return nil
}

func (f *fakeReservationRepo) CompletePastDue(_ context.Context, _ time.Time, _ time.Time) (int64, error) {
	return f.sweptCount, nil
}

type fakePaymentRepo struct {
	count   int
	created *domain.PaymentRecord
}

func (f *fakePaymentRepo) Create(_ context.Context, record *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	created := *record
	created.ID = 500
	f.created = &created
	return &created, nil
}

func (f *fakePaymentRepo) CountByReservation(_ context.Context, _ int64) (int, error) {
	return f.count, nil
}

type fakeIdentityClient struct {
	verifyErr    error
	verifyCalled bool
}

func (f *fakeIdentityClient) VerifyCredential(_ context.Context, _ int64, _ string) error {
	f.verifyCalled = true
	return f.verifyErr
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
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

func newTestService(now time.Time) (*fakeReservationRepo, *fakePaymentRepo, *fakeIdentityClient, *Service) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		10: {
			ID:                 10,
			UserID:             100,
			BoatID:             7,
			SlipID:             1,
			StartDate:          date("2026-05-01"),
			EndDate:            date("2026-05-31"),
			Status:             domain.StatusConfirmed,
			Months:             1,
			TotalCost:          262.50,
			ConfirmationNumber: "MR-1A2B3C4D5E",
		},
	}}
	payments := &fakePaymentRepo{}
	identity := &fakeIdentityClient{}

	svc := NewService(repo, payments, identity, passthroughTxManager{}, nopLogger{})
	svc.timeProvider = fixedTime{now: now}
	return repo, payments, identity, svc
}

func owner() domain.ActorContext {
	return domain.ActorContext{UserID: 100}
}

func staff() domain.ActorContext {
	return domain.ActorContext{UserID: 1, IsStaff: true}
}

func TestCheckIn(t *testing.T) {
	startOfStay := date("2026-05-01")

	t.Run("успешное заселение в пределах окна", func(t *testing.T) {
		repo, payments, _, svc := newTestService(startOfStay.Add(5 * time.Hour))
		payments.count = 1

		resp, err := svc.CheckIn(context.Background(), 10, &models.CheckInRequest{Actor: owner()})

		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCheckedIn), resp.Status)
		require.NotNil(t, resp.CheckedInAt)
		require.NotNil(t, repo.checkedInID)
		assert.Equal(t, int64(10), *repo.checkedInID)
	})

	t.Run("вне окна заселения", func(t *testing.T) {
		repo, payments, _, svc := newTestService(startOfStay.Add(-48 * time.Hour))
		payments.count = 1

		_, err := svc.CheckIn(context.Background(), 10, &models.CheckInRequest{Actor: owner()})

		assert.ErrorIs(t, err, ErrOutsideCheckInWindow)
		assert.Nil(t, repo.checkedInID)
	})

	t.Run("без записанного платежа", func(t *testing.T) {
		repo, _, _, svc := newTestService(startOfStay.Add(time.Hour))

		_, err := svc.CheckIn(context.Background(), 10, &models.CheckInRequest{Actor: owner()})

		assert.ErrorIs(t, err, ErrPaymentRequired)
		assert.Nil(t, repo.checkedInID)
	})

	t.Run("не из статуса confirmed", func(t *testing.T) {
		repo, payments, _, svc := newTestService(startOfStay.Add(time.Hour))
		payments.count = 1
		repo.reservations[10].Status = domain.StatusCanceled

		_, err := svc.CheckIn(context.Background(), 10, &models.CheckInRequest{Actor: owner()})
		assert.ErrorIs(t, err, ErrNotConfirmed)
	})

	t.Run("чужое бронирование", func(t *testing.T) {
		_, payments, _, svc := newTestService(startOfStay.Add(time.Hour))
		payments.count = 1

		_, err := svc.CheckIn(context.Background(), 10, &models.CheckInRequest{
			Actor: domain.ActorContext{UserID: 999},
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestComplete(t *testing.T) {
	checkedInAt := date("2026-05-01")

	setupCheckedIn := func(now time.Time) (*fakeReservationRepo, *Service) {
		repo, _, _, svc := newTestService(now)
		repo.reservations[10].Status = domain.StatusCheckedIn
		repo.reservations[10].CheckedInAt = &checkedInAt
		return repo, svc
	}

	t.Run("владелец завершает после 30 дней", func(t *testing.T) {
		repo, svc := setupCheckedIn(checkedInAt.AddDate(0, 0, 31))

		resp, err := svc.Complete(context.Background(), 10, &models.CompleteRequest{Actor: owner()})

		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCompleted), resp.Status)
		assert.Equal(t, []domain.ReservationStatus{domain.StatusCompleted}, repo.statusUpdates)
	})

	t.Run("владельцу рано завершать", func(t *testing.T) {
		repo, svc := setupCheckedIn(checkedInAt.AddDate(0, 0, 5))

		_, err := svc.Complete(context.Background(), 10, &models.CompleteRequest{Actor: owner()})

		assert.ErrorIs(t, err, ErrCompletionTooEarly)
		assert.Empty(t, repo.statusUpdates)
	})

	t.Run("владелец не может завершить без заселения", func(t *testing.T) {
		_, _, _, svc := newTestService(checkedInAt.AddDate(0, 0, 31))

		_, err := svc.Complete(context.Background(), 10, &models.CompleteRequest{Actor: owner()})
		assert.ErrorIs(t, err, ErrNotCheckedIn)
	})

	t.Run("сотрудник завершает сразу, без гардов", func(t *testing.T) {
		_, svc := setupCheckedIn(checkedInAt.AddDate(0, 0, 1))

		resp, err := svc.Complete(context.Background(), 10, &models.CompleteRequest{Actor: staff()})

		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	})

	t.Run("сотрудник завершает и незаселённое", func(t *testing.T) {
		_, _, _, svc := newTestService(checkedInAt)

		_, err := svc.Complete(context.Background(), 10, &models.CompleteRequest{Actor: staff()})
		require.NoError(t, err)
	})

	t.Run("терминальный статус не перезавершается", func(t *testing.T) {
		repo, _, _, svc := newTestService(checkedInAt)
		repo.reservations[10].Status = domain.StatusCompleted

		_, err := svc.Complete(context.Background(), 10, &models.CompleteRequest{Actor: staff()})
		assert.ErrorIs(t, err, ErrAlreadyTerminal)
	})
}

func TestCancel(t *testing.T) {
	now := date("2026-04-01")

	t.Run("сотрудник отменяет без пароля", func(t *testing.T) {
		repo, _, identity, svc := newTestService(now)

		err := svc.Cancel(context.Background(), 10, &models.CancelRequest{Actor: staff()})

		require.NoError(t, err)
		assert.False(t, identity.verifyCalled)
		assert.Equal(t, domain.StatusCanceled, repo.reservations[10].Status)
	})

	t.Run("владелец подтверждает паролем", func(t *testing.T) {
		repo, _, identity, svc := newTestService(now)

		err := svc.Cancel(context.Background(), 10, &models.CancelRequest{Actor: owner(), Password: "secret"})

		require.NoError(t, err)
		assert.True(t, identity.verifyCalled)
		assert.Equal(t, domain.StatusCanceled, repo.reservations[10].Status)
	})

	t.Run("неверный пароль", func(t *testing.T) {
		repo, _, identity, svc := newTestService(now)
		identity.verifyErr = identityClient.ErrInvalidCredential

		err := svc.Cancel(context.Background(), 10, &models.CancelRequest{Actor: owner(), Password: "wrong"})

		assert.ErrorIs(t, err, ErrInvalidCredential)
		assert.Equal(t, domain.StatusConfirmed, repo.reservations[10].Status)
	})

	t.Run("не владелец и не сотрудник", func(t *testing.T) {
		_, _, identity, svc := newTestService(now)

		err := svc.Cancel(context.Background(), 10, &models.CancelRequest{
			Actor:    domain.ActorContext{UserID: 999},
			Password: "secret",
		})

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.False(t, identity.verifyCalled)
	})

	t.Run("завершённое не отменяется", func(t *testing.T) {
		repo, _, _, svc := newTestService(now)
		repo.reservations[10].Status = domain.StatusCompleted

		err := svc.Cancel(context.Background(), 10, &models.CancelRequest{Actor: staff()})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestRecordPayment(t *testing.T) {
	now := date("2026-04-20")

	t.Run("сотрудник записывает платеж", func(t *testing.T) {
		_, payments, _, svc := newTestService(now)

		resp, err := svc.RecordPayment(context.Background(), 10, &models.RecordPaymentRequest{
			Actor:      staff(),
			Amount:     262.50,
			Method:     "card",
			CardSuffix: "4242",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(500), resp.ID)
		require.NotNil(t, payments.created)
		assert.Equal(t, int64(10), payments.created.ReservationID)
		assert.InDelta(t, 262.50, payments.created.Amount, 0.001)
	})

	t.Run("только для сотрудников", func(t *testing.T) {
		_, payments, _, svc := newTestService(now)

		_, err := svc.RecordPayment(context.Background(), 10, &models.RecordPaymentRequest{
			Actor:  owner(),
			Amount: 262.50,
			Method: "card",
		})

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Nil(t, payments.created)
	})

	t.Run("сумма должна быть положительной", func(t *testing.T) {
		_, _, _, svc := newTestService(now)

		_, err := svc.RecordPayment(context.Background(), 10, &models.RecordPaymentRequest{
			Actor:  staff(),
			Amount: 0,
			Method: "card",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("по терминальному бронированию платеж не записывается", func(t *testing.T) {
		repo, _, _, svc := newTestService(now)
		repo.reservations[10].Status = domain.StatusCanceled

		_, err := svc.RecordPayment(context.Background(), 10, &models.RecordPaymentRequest{
			Actor:  staff(),
			Amount: 100,
			Method: "cash",
		})
		assert.ErrorIs(t, err, ErrAlreadyTerminal)
	})
}

func TestCompletePastDue(t *testing.T) {
	now := date("2026-07-01")

	t.Run("сотрудник запускает sweep", func(t *testing.T) {
		repo, _, _, svc := newTestService(now)
		repo.sweptCount = 3

		resp, err := svc.CompletePastDue(context.Background(), staff())

		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.CompletedCount)
	})

	t.Run("только для сотрудников", func(t *testing.T) {
		_, _, _, svc := newTestService(now)

		_, err := svc.CompletePastDue(context.Background(), owner())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetByID_Access(t *testing.T) {
	now := date("2026-04-01")

	t.Run("владелец видит своё", func(t *testing.T) {
		_, _, _, svc := newTestService(now)

		resp, err := svc.GetByID(context.Background(), 10, owner())
		require.NoError(t, err)
		assert.Equal(t, "MR-1A2B3C4D5E", resp.ConfirmationNumber)
	})

	t.Run("чужое бронирование скрыто", func(t *testing.T) {
		_, _, _, svc := newTestService(now)

		_, err := svc.GetByID(context.Background(), 10, domain.ActorContext{UserID: 999})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("сотрудник видит любое", func(t *testing.T) {
		_, _, _, svc := newTestService(now)

		_, err := svc.GetByID(context.Background(), 10, staff())
		require.NoError(t, err)
	})

	t.Run("несуществующее бронирование", func(t *testing.T) {
		_, _, _, svc := newTestService(now)

		_, err := svc.GetByID(context.Background(), 999, owner())
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}
