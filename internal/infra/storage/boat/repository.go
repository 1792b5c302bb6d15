package boat

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	"github.com/m04kA/Marina-SlipService/pkg/dbmetrics"
	"github.com/m04kA/Marina-SlipService/pkg/psqlbuilder"
)

// Repository репозиторий лодок пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория лодок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает лодку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Boat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"name",
		"length_ft",
	).
		From("boats").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var boat domain.Boat
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&boat.ID,
		&boat.UserID,
		&boat.Name,
		&boat.LengthFt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBoatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan boat: %v", ErrScanRow, err)
	}

	return &boat, nil
}
