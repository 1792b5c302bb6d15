package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	"github.com/m04kA/Marina-SlipService/pkg/dbmetrics"
	"github.com/m04kA/Marina-SlipService/pkg/psqlbuilder"
)

// reservationColumns полный список колонок таблицы reservations
var reservationColumns = []string{
	"id",
	"user_id",
	"boat_id",
	"slip_id",
	"start_date",
	"end_date",
	"status",
	"months",
	"total_cost",
	"confirmation_number",
	"checked_in_at",
	"checked_in_by",
	"last_modified_by",
	"last_modified_at",
	"created_at",
	"updated_at",
}

// activeStatusStrings статусы, удерживающие слип, в строковом виде для SQL фильтров
var activeStatusStrings = []string{
	string(domain.StatusConfirmed),
	string(domain.StatusCheckedIn),
}

// Repository репозиторий бронирований слипов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её -
// подтверждение бронирования всегда идет через сериализуемую транзакцию
// с перепроверкой пересечений
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"user_id",
			"boat_id",
			"slip_id",
			"start_date",
			"end_date",
			"status",
			"months",
			"total_cost",
			"confirmation_number",
		).
		Values(
			reservation.UserID,
			reservation.BoatID,
			reservation.SlipID,
			reservation.StartDate,
			reservation.EndDate,
			reservation.Status,
			reservation.Months,
			reservation.TotalCost,
			reservation.ConfirmationNumber,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции (state machine переходы) блокируем строку,
	// чтобы два параллельных перехода не прошли по одному снимку статуса
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := r.scanReservationRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_date DESC", "id DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// ListActiveOverlapping получает активные бронирования указанных слипов,
// пересекающиеся с интервалом [start, end] (тест пересечения s1 <= e2 AND s2 <= e1)
// excludeID исключает собственную строку бронирования - нужно при редактировании
//
// Внутри транзакции добавляет FOR UPDATE: это блокирующее чтение перепроверки
// на момент коммита, сужающее окно между поиском доступности и подтверждением
func (r *Repository) ListActiveOverlapping(ctx context.Context, slipIDs []int64, start, end time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"slip_id": slipIDs}).
		Where(squirrel.Eq{"status": activeStatusStrings}).
		Where(squirrel.LtOrEq{"start_date": end}).
		Where(squirrel.GtOrEq{"end_date": start}).
		OrderBy("slip_id ASC", "start_date ASC", "id ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// CheckIn переводит бронирование в checked_in со штампами заселения
func (r *Repository) CheckIn(ctx context.Context, id int64, actorID int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCheckedIn).
		Set("checked_in_at", now).
		Set("checked_in_by", actorID).
		Set("last_modified_by", actorID).
		Set("last_modified_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CheckIn - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "CheckIn")
}

// UpdateStatus обновляет статус бронирования со штампом последнего изменения
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, actorID int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("last_modified_by", actorID).
		Set("last_modified_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Update перезаписывает изменяемые поля бронирования (редактирование)
// Пишет даты, слип, лодку и пересчитанную стоимость одним запросом -
// частичной записи при отказе перепроверки не бывает
func (r *Repository) Update(ctx context.Context, reservation *domain.Reservation, actorID int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("boat_id", reservation.BoatID).
		Set("slip_id", reservation.SlipID).
		Set("start_date", reservation.StartDate).
		Set("end_date", reservation.EndDate).
		Set("months", reservation.Months).
		Set("total_cost", reservation.TotalCost).
		Set("last_modified_by", actorID).
		Set("last_modified_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": reservation.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Update")
}

// CompletePastDue массово завершает активные бронирования с истекшей датой окончания
// Идемпотентно: уже завершенные строки не попадают под условие и не перештампуются
// Возвращает количество обновленных строк
func (r *Repository) CompletePastDue(ctx context.Context, today time.Time, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCompleted).
		Set("last_modified_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": activeStatusStrings}).
		Where(squirrel.Lt{"end_date": today}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CompletePastDue - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompletePastDue - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompletePastDue - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// execExpectingRow выполняет update и проверяет, что строка была затронута
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservationRow сканирует одну строку бронирования
func (r *Repository) scanReservationRow(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var checkedInAt, lastModifiedAt, createdAt, updatedAt sql.NullTime
	var checkedInBy, lastModifiedBy sql.NullInt64

	err := row.Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.BoatID,
		&reservation.SlipID,
		&reservation.StartDate,
		&reservation.EndDate,
		&reservation.Status,
		&reservation.Months,
		&reservation.TotalCost,
		&reservation.ConfirmationNumber,
		&checkedInAt,
		&checkedInBy,
		&lastModifiedBy,
		&lastModifiedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if checkedInAt.Valid {
		reservation.CheckedInAt = &checkedInAt.Time
	}
	if checkedInBy.Valid {
		reservation.CheckedInBy = &checkedInBy.Int64
	}
	if lastModifiedBy.Valid {
		reservation.LastModifiedBy = &lastModifiedBy.Int64
	}
	if lastModifiedAt.Valid {
		reservation.LastModifiedAt = &lastModifiedAt.Time
	}
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := r.scanReservationRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
