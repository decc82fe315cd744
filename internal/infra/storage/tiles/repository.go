package tiles

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/rckarchitects/crashboard/internal/domain"
	"github.com/rckarchitects/crashboard/pkg/dbmetrics"
	"github.com/rckarchitects/crashboard/pkg/psqlbuilder"
)

// Repository репозиторий для работы с тайлами дашборда
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тайлов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUserID получает все тайлы пользователя в порядке позиции на сетке
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Tile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"user_id",
		"kind",
		"position",
		"width",
		"height",
		"config",
		"created_at",
		"updated_at",
	).
		From("tiles").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("position ASC")

	// В транзакции блокируем строки: layout обновляется целиком
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
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

	return r.scanTiles(rows)
}

// GetByID получает тайл по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Tile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"kind",
		"position",
		"width",
		"height",
		"config",
		"created_at",
		"updated_at",
	).
		From("tiles").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var tile domain.Tile
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tile.ID,
		&tile.UserID,
		&tile.Kind,
		&tile.Position,
		&tile.Width,
		&tile.Height,
		&tile.Config,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan tile: %v", ErrScanRow, err)
	}

	tile.CreatedAt = createdAt.Time
	tile.UpdatedAt = updatedAt.Time

	return &tile, nil
}

// Create создает новый тайл
func (r *Repository) Create(ctx context.Context, tile *domain.Tile) (*domain.Tile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tiles").
		Columns(
			"user_id",
			"kind",
			"position",
			"width",
			"height",
			"config",
		).
		Values(
			tile.UserID,
			tile.Kind,
			tile.Position,
			tile.Width,
			tile.Height,
			tile.Config,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tile.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	tile.CreatedAt = createdAt.Time
	tile.UpdatedAt = updatedAt.Time

	return tile, nil
}

// UpdatePlacement обновляет позицию и размер одного тайла
func (r *Repository) UpdatePlacement(ctx context.Context, id int64, position, width, height int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("tiles").
		Set("position", position).
		Set("width", width).
		Set("height", height).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePlacement - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePlacement - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePlacement - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTileNotFound
	}

	return nil
}

// Delete удаляет тайл с дашборда
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("tiles").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTileNotFound
	}

	return nil
}

// scanTiles сканирует результаты запроса в слайс тайлов
func (r *Repository) scanTiles(rows *sql.Rows) ([]*domain.Tile, error) {
	tiles := make([]*domain.Tile, 0)

	for rows.Next() {
		var tile domain.Tile
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&tile.ID,
			&tile.UserID,
			&tile.Kind,
			&tile.Position,
			&tile.Width,
			&tile.Height,
			&tile.Config,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanTiles - scan row: %v", ErrScanRow, err)
		}

		tile.CreatedAt = createdAt.Time
		tile.UpdatedAt = updatedAt.Time

		tiles = append(tiles, &tile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTiles - rows error: %v", ErrScanRow, err)
	}

	return tiles, nil
}
