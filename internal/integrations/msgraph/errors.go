package msgraph

import "errors"

var (
	// ErrUnauthorized возвращается при просроченном или невалидном токене
	ErrUnauthorized = errors.New("msgraph client: unauthorized")

	// ErrCalendarNotFound возвращается, когда календарь пользователя не найден
	ErrCalendarNotFound = errors.New("msgraph client: calendar not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("msgraph client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от Graph API
	ErrInvalidResponse = errors.New("msgraph client: invalid response")

	// ErrTransient возвращается при временных ошибках (429, 5xx),
	// которые имеет смысл повторять
	ErrTransient = errors.New("msgraph client: transient error")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Указывает, что Graph API недоступен и вычисление должно продолжиться
	// с пустым списком событий
	ErrServiceDegraded = errors.New("msgraph unavailable: graceful degradation applied")
)
