package get_tiles

import (
	"context"

	"github.com/rckarchitects/crashboard/internal/service/tiles/models"
)

type TileService interface {
	GetBoard(ctx context.Context, userID int64) (*models.BoardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
