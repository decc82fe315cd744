package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/rckarchitects/crashboard/internal/domain"
)

// UseCase use case вычисления доступности пользователя для встреч
type UseCase struct {
	source       CalendarSource
	cache        ResultCache
	policy       domain.WorkDayPolicy
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	source CalendarSource,
	cache ResultCache,
	policy domain.WorkDayPolicy,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		source:       source,
		cache:        cache,
		policy:       policy,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case вычисления доступности.
//
// Результат кэшируется по ключу user+window; на один ключ выполняется
// не более одного конкурентного заполнения - остальные вызовы ждут и
// читают готовый результат из кэша
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Окно по умолчанию: следующий понедельник + 2 недели
	from, to := req.From, req.To
	if from.IsZero() {
		from, to = defaultWindow(uc.timeProvider.Now().In(uc.location))
	}

	uc.logger.Info("GetAvailability: user=%d, from=%s, to=%s",
		req.UserID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	// 3. Проверяем кэш
	key := cacheKey(req.UserID, from, to)
	if resp, ok := uc.cache.Get(key); ok {
		uc.logger.Info("GetAvailability: cache hit for user=%d", req.UserID)
		return resp, nil
	}

	// 4. Захватываем ключ и перепроверяем кэш: пока мы ждали,
	// параллельный запрос мог уже заполнить его
	unlock := uc.cache.Lock(key)
	defer unlock()

	if resp, ok := uc.cache.Get(key); ok {
		uc.logger.Info("GetAvailability: cache filled concurrently for user=%d", req.UserID)
		return resp, nil
	}

	// 5. Получаем события календаря. Недоступность источника не фатальна:
	// деградируем до пустого списка - движок трактует это как
	// "встреч мало или нет" (дни максимально свободны)
	events, err := uc.source.Events(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetAvailability: calendar source failed for user=%d, degrading to empty list: %v",
			req.UserID, err)
		events = nil
	}

	// 6. Фильтруем события ровно один раз до вызова движка:
	// отклоненные (пользователь свободен), all-day и события с
	// некорректными временными метками
	filtered, skipped := filterEvents(events)
	if skipped > 0 {
		uc.logger.Warn("GetAvailability: skipped %d malformed events for user=%d", skipped, req.UserID)
	}

	// 7. Вычисляем доступность
	days, err := ComputeAvailability(filtered, from, to, uc.location, uc.policy)
	if err != nil {
		uc.logger.Error("GetAvailability: engine failed for user=%d: %v", req.UserID, err)
		return nil, err
	}

	// 8. Форматируем для отображения
	resp := &Response{
		From: from,
		To:   to,
		Days: make([]Day, len(days)),
	}
	for i, d := range days {
		resp.Days[i] = Day{
			Date:             d.Date,
			Periods:          d.Periods,
			TotalFreeMinutes: d.TotalFreeMinutes,
			Summary:          FormatPeriods(d.Periods),
			Details:          FormatDayDetails(d),
		}
	}

	uc.cache.Set(key, resp)

	uc.logger.Info("GetAvailability: computed %d qualifying days for user=%d from %d events",
		len(resp.Days), req.UserID, len(filtered))

	return resp, nil
}

// filterEvents отбрасывает отклоненные, all-day и некорректные события.
// Возвращает отфильтрованный список и количество некорректных событий.
// Ошибки разбора отдельных событий не фатальны для всего вычисления
func filterEvents(events []domain.CalendarEvent) ([]domain.CalendarEvent, int) {
	filtered := make([]domain.CalendarEvent, 0, len(events))
	skipped := 0

	for _, ev := range events {
		if !ev.HasValidTimes() {
			skipped++
			continue
		}
		if ev.IsAllDay || ev.IsDeclined() {
			continue
		}
		filtered = append(filtered, ev)
	}

	return filtered, skipped
}

// defaultWindow возвращает окно сканирования по умолчанию:
// от следующего понедельника на две недели вперед
func defaultWindow(now time.Time) (time.Time, time.Time) {
	start := startOfDay(now)
	// Строго следующий понедельник: с сегодняшнего понедельника окно
	// начиналось бы в прошлом рабочем контексте
	for {
		start = start.AddDate(0, 0, 1)
		if start.Weekday() == time.Monday {
			break
		}
	}
	return start, start.AddDate(0, 0, 14)
}

// cacheKey формирует ключ кэша результата
func cacheKey(userID int64, from, to time.Time) string {
	return fmt.Sprintf("availability:%d:%s:%s",
		userID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))
}
