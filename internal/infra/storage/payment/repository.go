package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	"github.com/m04kA/Marina-SlipService/pkg/dbmetrics"
	"github.com/m04kA/Marina-SlipService/pkg/psqlbuilder"
)

// Repository репозиторий платежей по бронированиям
// Движку нужен только факт наличия платежей; запись ведется сотрудником
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает платеж по бронированию
func (r *Repository) Create(ctx context.Context, record *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payment_records").
		Columns(
			"reservation_id",
			"amount",
			"method",
			"card_suffix",
			"recorded_by",
		).
		Values(
			record.ReservationID,
			record.Amount,
			record.Method,
			record.CardSuffix,
			record.RecordedBy,
		).
		Suffix("RETURNING id, recorded_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var recordedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&recordedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	record.RecordedAt = recordedAt.Time

	return record, nil
}

// CountByReservation возвращает количество платежей по бронированию
// Гард заселения требует хотя бы одного платежа
func (r *Repository) CountByReservation(ctx context.Context, reservationID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("payment_records").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByReservation - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByReservation - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}
