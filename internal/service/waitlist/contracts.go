package waitlist

import (
	"context"
	"time"

	"github.com/m04kA/Marina-SlipService/internal/domain"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error)
	ListActive(ctx context.Context) ([]*domain.WaitlistEntry, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.WaitlistEntry, error)
	MarkRemoved(ctx context.Context, id int64) error
	ShiftLeftAfter(ctx context.Context, oldPos int) error
}

// SlipRepository интерфейс репозитория слипов
type SlipRepository interface {
	List(ctx context.Context, minSize int, excludeStatuses []domain.SlipStatus) ([]*domain.Slip, error)
}

// BoatRepository интерфейс репозитория лодок
type BoatRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Boat, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListActiveOverlapping(ctx context.Context, slipIDs []int64, start, end time.Time, excludeID *int64) ([]*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
