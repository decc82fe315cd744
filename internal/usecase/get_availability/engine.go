package get_availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/rckarchitects/crashboard/internal/domain"
)

// ComputeAvailability вычисляет свободные окна для встреч по дням внутри
// окна [rangeStart, rangeEnd) в таймзоне loc.
//
// Движок чистый и синхронный: никакого I/O и разделяемого состояния,
// безопасен для конкурентных вызовов с независимыми входами.
//
// Контракт результата: возвращаются первые policy.MaxDaysReturned
// подходящих будних дней в хронологическом порядке. Сканирование
// останавливается при достижении лимита - дни за лимитом не оцениваются.
// Это НЕ "N лучших дней", а "первые N подходящих".
//
// События с IsAllDay или отклоненные считаются нерелевантными и
// пропускаются; события с некорректным интервалом (start >= end)
// молча отбрасываются
func ComputeAvailability(
	events []domain.CalendarEvent,
	rangeStart time.Time,
	rangeEnd time.Time,
	loc *time.Location,
	policy domain.WorkDayPolicy,
) ([]domain.DayAvailability, error) {
	if err := validatePolicy(policy); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	if !rangeStart.Before(rangeEnd) {
		return nil, fmt.Errorf("%w: rangeStart must be before rangeEnd", ErrInvalidRange)
	}

	// Отбираем занятые интервалы: отклоненное событие означает, что
	// пользователь свободен, all-day события исключаются до обработки
	busy := make([]domain.TimeInterval, 0, len(events))
	for i := range events {
		ev := &events[i]
		if ev.IsAllDay || ev.IsDeclined() {
			continue
		}
		iv := ev.Interval()
		if !iv.IsValid() {
			continue
		}
		busy = append(busy, iv)
	}

	days := make([]domain.DayAvailability, 0, policy.MaxDaysReturned)

	start := startOfDay(rangeStart.In(loc))
	end := startOfDay(rangeEnd.In(loc))

	// Цикл не продвигается дальше после достижения лимита:
	// поздние подходящие дни не вычисляются вовсе
	for day := start; day.Before(end) && len(days) < policy.MaxDaysReturned; day = day.AddDate(0, 0, 1) {
		// Выходные исключаются всегда, независимо от policy
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		avail, ok := computeDay(busy, day, policy)
		if ok {
			days = append(days, avail)
		}
	}

	return days, nil
}

// computeDay вычисляет свободные периоды одного рабочего дня.
// Возвращает false, если день не набирает policy.MinFreeMinutes
func computeDay(busy []domain.TimeInterval, day time.Time, policy domain.WorkDayPolicy) (domain.DayAvailability, bool) {
	window := domain.TimeInterval{
		Start: hourOfDay(day, policy.WorkStartHour),
		End:   hourOfDay(day, policy.WorkEndHour),
	}
	lunch := domain.TimeInterval{
		Start: hourOfDay(day, policy.LunchStartHour),
		End:   hourOfDay(day, policy.LunchEndHour),
	}

	// Шаг 1: события, реально пересекающие рабочее окно, обрезаем до него.
	// Интервалы, выродившиеся после обрезки, молча отбрасываются
	selected := make([]domain.TimeInterval, 0, len(busy))
	for _, iv := range busy {
		if !iv.Overlaps(window) {
			continue
		}
		clipped := iv.Clip(window)
		if !clipped.IsValid() {
			continue
		}
		selected = append(selected, clipped)
	}

	// Шаг 2: сливаем пересекающиеся события в занятые блоки
	blocks := mergeIntervals(selected)

	// Шаг 3: расширяем каждый занятый блок буфером с обеих сторон
	// (защита от встреч впритык), обрезаем обратно до рабочего окна
	// и снова сливаем - слияние соседних зон после расширения корректно
	// и намеренно
	buffer := time.Duration(policy.BufferHours) * time.Hour
	blocked := make([]domain.TimeInterval, 0, len(blocks))
	for _, b := range blocks {
		expanded := b.Expand(buffer).Clip(window)
		if expanded.IsValid() {
			blocked = append(blocked, expanded)
		}
	}
	blocked = mergeIntervals(blocked)

	// Шаг 4: добавляем обеденный блок, если он еще не покрыт целиком
	// существующим блоком. Обед буфером не расширяется
	blocked = injectLunch(blocked, lunch)

	// Шаг 5: свободные периоды - дополнение заблокированных внутри окна
	free := complement(blocked, window)

	// Шаг 6: склеиваем периоды, примыкающие в пределах допуска.
	// Это защита от шума временных границ, а не смысловое слияние
	// действительно раздельных окон
	free = joinAdjacent(free, domain.FreePeriodJoinTolerance)

	total := 0
	for _, p := range free {
		total += p.Minutes()
	}

	avail := domain.DayAvailability{
		Date:             day,
		Periods:          free,
		TotalFreeMinutes: total,
	}

	return avail, avail.MeetsMinimum(policy.MinFreeMinutes)
}

// mergeIntervals сливает пересекающиеся и примыкающие интервалы.
// Аккумулятор: сортировка по началу, сравнение только с последним
// накопленным интервалом
func mergeIntervals(intervals []domain.TimeInterval) []domain.TimeInterval {
	if len(intervals) <= 1 {
		return append([]domain.TimeInterval(nil), intervals...)
	}

	sorted := append([]domain.TimeInterval(nil), intervals...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []domain.TimeInterval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			// Пересечение или примыкание - расширяем конец последнего блока
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}

	return merged
}

// injectLunch добавляет обеденный блок к заблокированным периодам,
// если ни один существующий блок не покрывает его целиком
func injectLunch(blocked []domain.TimeInterval, lunch domain.TimeInterval) []domain.TimeInterval {
	if !lunch.IsValid() {
		return blocked
	}
	for _, b := range blocked {
		if b.Covers(lunch) {
			return blocked
		}
	}
	return mergeIntervals(append(blocked, lunch))
}

// complement возвращает промежутки внутри window, не покрытые blocked.
// blocked должен быть отсортирован, без пересечений и обрезан до window
func complement(blocked []domain.TimeInterval, window domain.TimeInterval) []domain.TimeInterval {
	free := make([]domain.TimeInterval, 0, len(blocked)+1)
	cursor := window.Start

	for _, b := range blocked {
		if b.Start.After(cursor) {
			free = append(free, domain.TimeInterval{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}

	if window.End.After(cursor) {
		free = append(free, domain.TimeInterval{Start: cursor, End: window.End})
	}

	return free
}

// joinAdjacent склеивает последовательные периоды, разрыв между которыми
// не превышает tolerance
func joinAdjacent(periods []domain.TimeInterval, tolerance time.Duration) []domain.TimeInterval {
	if len(periods) <= 1 {
		return periods
	}

	joined := []domain.TimeInterval{periods[0]}
	for _, p := range periods[1:] {
		last := &joined[len(joined)-1]
		if p.Start.Sub(last.End) <= tolerance {
			if p.End.After(last.End) {
				last.End = p.End
			}
			continue
		}
		joined = append(joined, p)
	}

	return joined
}

// startOfDay обнуляет время, сохраняя таймзону
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// hourOfDay возвращает момент hour:00 указанного дня
func hourOfDay(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}
