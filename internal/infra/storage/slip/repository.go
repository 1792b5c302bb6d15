package slip

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	"github.com/m04kA/Marina-SlipService/pkg/dbmetrics"
	"github.com/m04kA/Marina-SlipService/pkg/psqlbuilder"
)

// Repository репозиторий инвентаря слипов
// Слипы заводятся вне сервиса, движок их только читает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слипов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает слипы с size_class >= minSize, исключая указанные статусы
// Сортировка фиксированная: по размерному классу, затем по ID - повторные
// запросы при неизменном состоянии возвращают одинаковый результат
func (r *Repository) List(ctx context.Context, minSize int, excludeStatuses []domain.SlipStatus) ([]*domain.Slip, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"size_class",
		"location_code",
		"status",
	).
		From("slips").
		Where(squirrel.GtOrEq{"size_class": minSize}).
		OrderBy("size_class ASC", "id ASC")

	if len(excludeStatuses) > 0 {
		statusStrings := make([]string, len(excludeStatuses))
		for i, s := range excludeStatuses {
			statusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlips(rows)
}

// GetByID получает слип по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slip, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"size_class",
		"location_code",
		"status",
	).
		From("slips").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var slip domain.Slip
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slip.ID,
		&slip.SizeClass,
		&slip.LocationCode,
		&slip.Status,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slip: %v", ErrScanRow, err)
	}

	return &slip, nil
}

// scanSlips сканирует результаты запроса в слайс слипов
func (r *Repository) scanSlips(rows *sql.Rows) ([]*domain.Slip, error) {
	slips := make([]*domain.Slip, 0)

	for rows.Next() {
		var slip domain.Slip
		if err := rows.Scan(
			&slip.ID,
			&slip.SizeClass,
			&slip.LocationCode,
			&slip.Status,
		); err != nil {
			return nil, fmt.Errorf("%w: scanSlips - scan row: %v", ErrScanRow, err)
		}
		slips = append(slips, &slip)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlips - rows error: %v", ErrScanRow, err)
	}

	return slips, nil
}
