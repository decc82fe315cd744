package create_tile

import (
	"context"

	"github.com/rckarchitects/crashboard/internal/service/tiles/models"
)

type TileService interface {
	CreateTile(ctx context.Context, req *models.CreateTileRequest) (*models.TileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
