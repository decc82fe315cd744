package tiles

import "errors"

var (
	// ErrTileNotFound возвращается, когда тайл не найден
	ErrTileNotFound = errors.New("tiles.repository: tile not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("tiles.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("tiles.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("tiles.repository: failed to scan row")
)
