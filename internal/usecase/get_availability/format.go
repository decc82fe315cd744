package get_availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/rckarchitects/crashboard/internal/domain"
)

// FormatPeriods форматирует свободные периоды дня в компактную строку вида
// "9am-midday, 2pm-5pm". Ровно 12:00 отображается словом "midday" с любой
// стороны диапазона. Периоды разделяются ", "
func FormatPeriods(periods []domain.TimeInterval) string {
	parts := make([]string, len(periods))
	for i, p := range periods {
		parts[i] = fmt.Sprintf("%s-%s", clockLabel(p.Start), clockLabel(p.End))
	}
	return strings.Join(parts, ", ")
}

// FormatDayDetails форматирует день в развернутый вид, по предложению на
// период: "Monday 2 September, between 9am and midday". Периоды
// разделяются переводом строки
func FormatDayDetails(day domain.DayAvailability) string {
	lines := make([]string, len(day.Periods))
	for i, p := range day.Periods {
		lines[i] = fmt.Sprintf("%s %d %s, between %s and %s",
			day.Date.Weekday(), day.Date.Day(), day.Date.Month(),
			clockLabel(p.Start), clockLabel(p.End))
	}
	return strings.Join(lines, "\n")
}

// clockLabel возвращает метку времени в 12-часовом формате: "9am", "5pm",
// "2:30pm". Ровно полдень - "midday". Минуты опускаются для круглого часа
func clockLabel(t time.Time) string {
	h, m := t.Hour(), t.Minute()

	if h == 12 && m == 0 {
		return "midday"
	}

	suffix := "am"
	display := h
	switch {
	case h == 0:
		display = 12
	case h == 12:
		suffix = "pm"
	case h > 12:
		display = h - 12
		suffix = "pm"
	}

	if m == 0 {
		return fmt.Sprintf("%d%s", display, suffix)
	}
	return fmt.Sprintf("%d:%02d%s", display, m, suffix)
}
