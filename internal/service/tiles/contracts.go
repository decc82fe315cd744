package tiles

import (
	"context"

	"github.com/rckarchitects/crashboard/internal/domain"
)

// TileRepository интерфейс репозитория тайлов
type TileRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Tile, error)
	GetByID(ctx context.Context, id int64) (*domain.Tile, error)
	Create(ctx context.Context, tile *domain.Tile) (*domain.Tile, error)
	UpdatePlacement(ctx context.Context, id int64, position, width, height int) error
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
