package get_availability

import (
	"context"
	"time"

	"github.com/rckarchitects/crashboard/internal/domain"
)

// CalendarSource интерфейс источника календарных событий (Microsoft Graph
// или опубликованный ICS-фид). События возвращаются как есть: фильтрация
// отклоненных и all-day событий выполняется в usecase ровно один раз
type CalendarSource interface {
	Events(ctx context.Context, rangeStart, rangeEnd time.Time) ([]domain.CalendarEvent, error)
}

// ResultCache кэш готовых ответов по ключу user+window.
// Lock гарантирует не более одного конкурентного заполнения на ключ
type ResultCache interface {
	Get(key string) (*Response, bool)
	Set(key string, resp *Response)
	Lock(key string) (unlock func())
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
