package update_tile_layout

import (
	"context"

	"github.com/rckarchitects/crashboard/internal/service/tiles/models"
)

type TileService interface {
	UpdateLayout(ctx context.Context, req *models.UpdateLayoutRequest) (*models.BoardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
