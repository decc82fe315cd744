package get_availability

import "errors"

var (
	// ErrInvalidPolicy возвращается при некорректной конфигурации рабочего дня
	// (неположительные значения или нарушен порядок work start < lunch < work end).
	// Ошибка фатальна для вызова - запрос не повторяется
	ErrInvalidPolicy = errors.New("invalid work day policy")

	// ErrInvalidRange возвращается при некорректном окне сканирования
	ErrInvalidRange = errors.New("invalid scan range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
