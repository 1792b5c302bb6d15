package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/Marina-SlipService/internal/domain"
)

// SlipRepository интерфейс репозитория слипов
type SlipRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slip, error)
	List(ctx context.Context, minSize int, excludeStatuses []domain.SlipStatus) ([]*domain.Slip, error)
}

// BoatRepository интерфейс репозитория лодок
type BoatRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Boat, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	ListActiveOverlapping(ctx context.Context, slipIDs []int64, start, end time.Time, excludeID *int64) ([]*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
