package delete_tile

import "context"

type TileService interface {
	DeleteTile(ctx context.Context, tileID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
