package icalfeed

import "errors"

var (
	// ErrFetchFailed возвращается при недоступности ICS-фида
	ErrFetchFailed = errors.New("icalfeed client: failed to fetch feed")

	// ErrParseFailed возвращается при нечитаемом ICS-документе
	ErrParseFailed = errors.New("icalfeed client: failed to parse feed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("icalfeed client: internal error")

	// ErrServiceDegraded возвращается при применении graceful degradation
	ErrServiceDegraded = errors.New("icalfeed unavailable: graceful degradation applied")
)
