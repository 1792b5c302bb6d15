package waitlist

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	"github.com/m04kA/Marina-SlipService/pkg/dbmetrics"
	"github.com/m04kA/Marina-SlipService/pkg/psqlbuilder"
)

// waitlistColumns полный список колонок таблицы waitlist_entries
var waitlistColumns = []string{
	"id",
	"user_id",
	"boat_id",
	"preferred_size",
	"start_date",
	"end_date",
	"position_in_queue",
	"created_at",
}

// Repository репозиторий листа ожидания
// Единственное место, где мутируется position_in_queue
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в хвост очереди
// Позиция вычисляется в самом INSERT (MAX + 1 по активным записям),
// поэтому вставка не оставляет пропусков даже при параллельных Join
func (r *Repository) Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns(
			"user_id",
			"boat_id",
			"preferred_size",
			"start_date",
			"end_date",
			"position_in_queue",
		).
		Values(
			entry.UserID,
			entry.BoatID,
			entry.PreferredSize,
			entry.StartDate,
			entry.EndDate,
			squirrel.Expr("(SELECT COALESCE(MAX(position_in_queue), 0) + 1 FROM waitlist_entries)"),
		).
		Suffix("RETURNING id, position_in_queue, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.Position,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time

	return entry, nil
}

// GetByID получает запись листа ожидания по ID
// Внутри транзакции блокирует строку (FOR UPDATE) - отмена читает позицию
// и затем мутирует соседние строки, читать нужно под блокировкой
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(waitlistColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var entry domain.WaitlistEntry
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.BoatID,
		&entry.PreferredSize,
		&entry.StartDate,
		&entry.EndDate,
		&entry.Position,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %v", ErrScanRow, err)
	}

	entry.CreatedAt = createdAt.Time

	return &entry, nil
}

// ListActive получает активные записи очереди в порядке позиций
func (r *Repository) ListActive(ctx context.Context) ([]*domain.WaitlistEntry, error) {
	return r.list(ctx, nil)
}

// GetByUserID получает активные записи пользователя в порядке позиций
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.WaitlistEntry, error) {
	return r.list(ctx, &userID)
}

// MarkRemoved помечает запись удаленной (position_in_queue = 0)
// Все запросы ранжирования фильтруют position_in_queue > 0
func (r *Repository) MarkRemoved(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("position_in_queue", domain.RemovedPosition).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRemoved - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRemoved - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkRemoved - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// ShiftLeftAfter сдвигает на единицу вниз все позиции строго больше oldPos
// Вместе с MarkRemoved восстанавливает плотную последовательность 1..N-1;
// обе мутации обязаны выполняться в одной транзакции
func (r *Repository) ShiftLeftAfter(ctx context.Context, oldPos int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("position_in_queue", squirrel.Expr("position_in_queue - 1")).
		Where(squirrel.Gt{"position_in_queue": oldPos}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ShiftLeftAfter - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ShiftLeftAfter - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// list общий запрос активных записей, опционально по пользователю
func (r *Repository) list(ctx context.Context, userID *int64) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(waitlistColumns...).
		From("waitlist_entries").
		Where(squirrel.Gt{"position_in_queue": domain.RemovedPosition}).
		OrderBy("position_in_queue ASC")

	if userID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *userID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WaitlistEntry, 0)
	for rows.Next() {
		var entry domain.WaitlistEntry
		var createdAt sql.NullTime

		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.BoatID,
			&entry.PreferredSize,
			&entry.StartDate,
			&entry.EndDate,
			&entry.Position,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: list - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
