package tiles

import "errors"

var (
	ErrTileNotFound = errors.New("tile not found")
	ErrAccessDenied = errors.New("access denied")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)
