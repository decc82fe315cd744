package get_availability

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rckarchitects/crashboard/internal/domain"
)

// Понедельник 13 октября 2025 - опорный день тестов
var testMonday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func testPolicy() domain.WorkDayPolicy {
	return domain.DefaultWorkDayPolicy()
}

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

func busyEvent(start, end time.Time) domain.CalendarEvent {
	return domain.CalendarEvent{
		Subject:        "meeting",
		Start:          start,
		End:            end,
		ResponseStatus: domain.ResponseAccepted,
	}
}

func TestComputeAvailability_NoEvents(t *testing.T) {
	days, err := ComputeAvailability(nil, testMonday, testMonday.AddDate(0, 0, 14), time.UTC, testPolicy())
	require.NoError(t, err)
	require.Len(t, days, 4, "scan must stop at maxDaysReturned")

	// Первый подходящий день: весь рабочий день свободен минус обед
	first := days[0]
	assert.Equal(t, testMonday, first.Date)
	require.Len(t, first.Periods, 2)
	assert.Equal(t, at(testMonday, 9, 0), first.Periods[0].Start)
	assert.Equal(t, at(testMonday, 13, 0), first.Periods[0].End)
	assert.Equal(t, at(testMonday, 14, 0), first.Periods[1].Start)
	assert.Equal(t, at(testMonday, 17, 0), first.Periods[1].End)
	assert.Equal(t, 420, first.TotalFreeMinutes)

	// Первые N подходящих дней в хронологическом порядке: пн-чт
	for i, d := range days {
		assert.Equal(t, testMonday.AddDate(0, 0, i), d.Date)
	}
}

func TestComputeAvailability_SingleMeetingWithBuffer(t *testing.T) {
	// Встреча 10:00-11:00: с часовым буфером заблокировано 09:00-12:00,
	// плюс обед 13:00-14:00. Свободно 12:00-13:00 и 14:00-17:00
	events := []domain.CalendarEvent{
		busyEvent(at(testMonday, 10, 0), at(testMonday, 11, 0)),
	}

	days, err := ComputeAvailability(events, testMonday, testMonday.AddDate(0, 0, 1), time.UTC, testPolicy())
	require.NoError(t, err)
	require.Len(t, days, 1)

	day := days[0]
	require.Len(t, day.Periods, 2)
	assert.Equal(t, at(testMonday, 12, 0), day.Periods[0].Start)
	assert.Equal(t, at(testMonday, 13, 0), day.Periods[0].End)
	assert.Equal(t, at(testMonday, 14, 0), day.Periods[1].Start)
	assert.Equal(t, at(testMonday, 17, 0), day.Periods[1].End)
	assert.Equal(t, 240, day.TotalFreeMinutes)
}

func TestComputeAvailability_FullDayMeetingExcludesDay(t *testing.T) {
	events := []domain.CalendarEvent{
		busyEvent(at(testMonday, 9, 0), at(testMonday, 17, 0)),
	}

	days, err := ComputeAvailability(events, testMonday, testMonday.AddDate(0, 0, 1), time.UTC, testPolicy())
	require.NoError(t, err)
	assert.Empty(t, days, "day with zero free periods must be excluded")
}

func TestComputeAvailability_MeetingOverlappingLunch(t *testing.T) {
	// Встреча 12:30-13:30: после расширения буфером 11:30-14:30 полностью
	// покрывает обед - обед не должен учитываться дважды
	events := []domain.CalendarEvent{
		busyEvent(at(testMonday, 12, 30), at(testMonday, 13, 30)),
	}

	days, err := ComputeAvailability(events, testMonday, testMonday.AddDate(0, 0, 1), time.UTC, testPolicy())
	require.NoError(t, err)
	require.Len(t, days, 1)

	day := days[0]
	require.Len(t, day.Periods, 2)
	assert.Equal(t, at(testMonday, 9, 0), day.Periods[0].Start)
	assert.Equal(t, at(testMonday, 11, 30), day.Periods[0].End)
	assert.Equal(t, at(testMonday, 14, 30), day.Periods[1].Start)
	assert.Equal(t, at(testMonday, 17, 0), day.Periods[1].End)
	assert.Equal(t, 300, day.TotalFreeMinutes)
}

func TestComputeAvailability_DeclinedEventIgnored(t *testing.T) {
	declined := busyEvent(at(testMonday, 9, 0), at(testMonday, 17, 0))
	declined.ResponseStatus = domain.ResponseDeclined

	days, err := ComputeAvailability(
		[]domain.CalendarEvent{declined},
		testMonday, testMonday.AddDate(0, 0, 1), time.UTC, testPolicy())
	require.NoError(t, err)
	require.Len(t, days, 1, "declined event must not reduce availability")
	assert.Equal(t, 420, days[0].TotalFreeMinutes)
}

func TestComputeAvailability_AllDayEventIgnored(t *testing.T) {
	allDay := busyEvent(testMonday, testMonday.AddDate(0, 0, 1))
	allDay.IsAllDay = true

	days, err := ComputeAvailability(
		[]domain.CalendarEvent{allDay},
		testMonday, testMonday.AddDate(0, 0, 1), time.UTC, testPolicy())
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 420, days[0].TotalFreeMinutes)
}

func TestComputeAvailability_WeekendsAlwaysExcluded(t *testing.T) {
	// Окно начинается в субботу: первым подходящим днем будет понедельник
	saturday := testMonday.AddDate(0, 0, -2)

	days, err := ComputeAvailability(nil, saturday, saturday.AddDate(0, 0, 9), time.UTC, testPolicy())
	require.NoError(t, err)
	require.NotEmpty(t, days)

	assert.Equal(t, testMonday, days[0].Date)
	for _, d := range days {
		wd := d.Date.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
	}
}

func TestComputeAvailability_CapIsScanBound(t *testing.T) {
	// Две рабочие недели, все дни подходят: возвращаются ровно первые
	// maxDaysReturned дней, более поздние не попадают в результат
	policy := testPolicy()
	policy.MaxDaysReturned = 3

	days, err := ComputeAvailability(nil, testMonday, testMonday.AddDate(0, 0, 14), time.UTC, policy)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, testMonday, days[0].Date)
	assert.Equal(t, testMonday.AddDate(0, 0, 1), days[1].Date)
	assert.Equal(t, testMonday.AddDate(0, 0, 2), days[2].Date)
}

func TestComputeAvailability_FirstQualifyingNotBest(t *testing.T) {
	// Понедельник почти занят (не проходит порог), вторник занят частично,
	// среда полностью свободна. Контракт: первые N подходящих, а не лучшие
	tuesday := testMonday.AddDate(0, 0, 1)
	events := []domain.CalendarEvent{
		busyEvent(at(testMonday, 9, 0), at(testMonday, 16, 30)),
		busyEvent(at(tuesday, 10, 0), at(tuesday, 11, 0)),
	}

	policy := testPolicy()
	policy.MaxDaysReturned = 1

	days, err := ComputeAvailability(events, testMonday, testMonday.AddDate(0, 0, 5), time.UTC, policy)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, tuesday, days[0].Date, "must return first qualifying day, not the freest")
}

func TestComputeAvailability_OrderIndependence(t *testing.T) {
	tuesday := testMonday.AddDate(0, 0, 1)
	events := []domain.CalendarEvent{
		busyEvent(at(testMonday, 10, 0), at(testMonday, 10, 30)),
		busyEvent(at(testMonday, 10, 15), at(testMonday, 11, 0)),
		busyEvent(at(tuesday, 15, 0), at(tuesday, 16, 0)),
		busyEvent(at(testMonday, 16, 0), at(testMonday, 16, 45)),
	}

	expected, err := ComputeAvailability(events, testMonday, testMonday.AddDate(0, 0, 7), time.UTC, testPolicy())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := append([]domain.CalendarEvent(nil), events...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got, err := ComputeAvailability(shuffled, testMonday, testMonday.AddDate(0, 0, 7), time.UTC, testPolicy())
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	}
}

func TestComputeAvailability_Idempotence(t *testing.T) {
	events := []domain.CalendarEvent{
		busyEvent(at(testMonday, 10, 0), at(testMonday, 11, 0)),
	}

	first, err := ComputeAvailability(events, testMonday, testMonday.AddDate(0, 0, 7), time.UTC, testPolicy())
	require.NoError(t, err)
	second, err := ComputeAvailability(events, testMonday, testMonday.AddDate(0, 0, 7), time.UTC, testPolicy())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeAvailability_EventSpanningMultipleDays(t *testing.T) {
	// Событие с пятницы предыдущей недели до 10:00 понедельника:
	// в понедельник обрезается до 09:00-10:00, с буфером блокирует до 11:00
	friday := testMonday.AddDate(0, 0, -3)
	events := []domain.CalendarEvent{
		busyEvent(at(friday, 15, 0), at(testMonday, 10, 0)),
	}

	days, err := ComputeAvailability(events, testMonday, testMonday.AddDate(0, 0, 1), time.UTC, testPolicy())
	require.NoError(t, err)
	require.Len(t, days, 1)

	day := days[0]
	require.Len(t, day.Periods, 2)
	assert.Equal(t, at(testMonday, 11, 0), day.Periods[0].Start)
	assert.Equal(t, at(testMonday, 13, 0), day.Periods[0].End)
}

func TestComputeAvailability_BufferMergesDistinctMeetings(t *testing.T) {
	// Встречи 10:00-10:30 и 11:30-12:00: буферные зоны 9:00-11:30 и
	// 10:30-13:00 сливаются - слияние корректно и намеренно
	events := []domain.CalendarEvent{
		busyEvent(at(testMonday, 10, 0), at(testMonday, 10, 30)),
		busyEvent(at(testMonday, 11, 30), at(testMonday, 12, 0)),
	}

	days, err := ComputeAvailability(events, testMonday, testMonday.AddDate(0, 0, 1), time.UTC, testPolicy())
	require.NoError(t, err)
	require.Len(t, days, 1)

	// Заблокировано 9:00-13:00, обед 13:00-14:00 примыкает: свободно
	// остается только 14:00-17:00
	day := days[0]
	require.Len(t, day.Periods, 1)
	assert.Equal(t, at(testMonday, 14, 0), day.Periods[0].Start)
	assert.Equal(t, at(testMonday, 17, 0), day.Periods[0].End)
	assert.Equal(t, 180, day.TotalFreeMinutes)
}

func TestComputeAvailability_PeriodsTileWorkingDay(t *testing.T) {
	// Свойство: свободные периоды упорядочены, не пересекаются и лежат
	// внутри рабочего окна, а сумма минут совпадает с TotalFreeMinutes
	events := []domain.CalendarEvent{
		busyEvent(at(testMonday, 9, 30), at(testMonday, 10, 15)),
		busyEvent(at(testMonday, 14, 45), at(testMonday, 15, 0)),
	}

	policy := testPolicy()
	policy.MinFreeMinutes = 1

	days, err := ComputeAvailability(events, testMonday, testMonday.AddDate(0, 0, 5), time.UTC, policy)
	require.NoError(t, err)

	for _, day := range days {
		total := 0
		workStart := at(day.Date, policy.WorkStartHour, 0)
		workEnd := at(day.Date, policy.WorkEndHour, 0)

		for i, p := range day.Periods {
			assert.True(t, p.IsValid())
			assert.False(t, p.Start.Before(workStart))
			assert.False(t, p.End.After(workEnd))
			if i > 0 {
				assert.True(t, p.Start.After(day.Periods[i-1].End), "periods must not overlap")
			}
			total += p.Minutes()
		}

		assert.Equal(t, total, day.TotalFreeMinutes)
		assert.GreaterOrEqual(t, day.TotalFreeMinutes, policy.MinFreeMinutes)
	}
}

func TestComputeAvailability_InvalidPolicy(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.WorkDayPolicy)
	}{
		{"zero work start", func(p *domain.WorkDayPolicy) { p.WorkStartHour = 0 }},
		{"negative buffer", func(p *domain.WorkDayPolicy) { p.BufferHours = -1 }},
		{"lunch before work start", func(p *domain.WorkDayPolicy) { p.LunchStartHour = 8 }},
		{"lunch end before lunch start", func(p *domain.WorkDayPolicy) { p.LunchEndHour = 12 }},
		{"work end before lunch end", func(p *domain.WorkDayPolicy) { p.WorkEndHour = 13 }},
		{"zero max days", func(p *domain.WorkDayPolicy) { p.MaxDaysReturned = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			policy := testPolicy()
			tc.mutate(&policy)

			_, err := ComputeAvailability(nil, testMonday, testMonday.AddDate(0, 0, 7), time.UTC, policy)
			require.ErrorIs(t, err, ErrInvalidPolicy)
		})
	}
}

func TestComputeAvailability_InvalidRange(t *testing.T) {
	_, err := ComputeAvailability(nil, testMonday, testMonday, time.UTC, testPolicy())
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestComputeAvailability_RangeEndExclusive(t *testing.T) {
	// Пятница за пределами [пн, пт) не должна оцениваться
	days, err := ComputeAvailability(nil, testMonday, testMonday.AddDate(0, 0, 4), time.UTC, testPolicy())
	require.NoError(t, err)
	require.Len(t, days, 4)
	assert.Equal(t, testMonday.AddDate(0, 0, 3), days[len(days)-1].Date)
}

func TestMergeIntervals(t *testing.T) {
	a := domain.TimeInterval{Start: at(testMonday, 9, 0), End: at(testMonday, 10, 0)}
	b := domain.TimeInterval{Start: at(testMonday, 9, 30), End: at(testMonday, 11, 0)}
	c := domain.TimeInterval{Start: at(testMonday, 11, 0), End: at(testMonday, 12, 0)}
	d := domain.TimeInterval{Start: at(testMonday, 15, 0), End: at(testMonday, 16, 0)}

	merged := mergeIntervals([]domain.TimeInterval{d, b, c, a})
	require.Len(t, merged, 2)
	assert.Equal(t, at(testMonday, 9, 0), merged[0].Start)
	assert.Equal(t, at(testMonday, 12, 0), merged[0].End)
	assert.Equal(t, d, merged[1])
}

func TestJoinAdjacent_ToleranceIsSixtySeconds(t *testing.T) {
	base := at(testMonday, 9, 0)

	within := []domain.TimeInterval{
		{Start: base, End: base.Add(30 * time.Minute)},
		{Start: base.Add(30*time.Minute + 60*time.Second), End: base.Add(2 * time.Hour)},
	}
	joined := joinAdjacent(within, domain.FreePeriodJoinTolerance)
	require.Len(t, joined, 1)
	assert.Equal(t, base, joined[0].Start)
	assert.Equal(t, base.Add(2*time.Hour), joined[0].End)

	beyond := []domain.TimeInterval{
		{Start: base, End: base.Add(30 * time.Minute)},
		{Start: base.Add(30*time.Minute + 61*time.Second), End: base.Add(2 * time.Hour)},
	}
	assert.Len(t, joinAdjacent(beyond, domain.FreePeriodJoinTolerance), 2)
}

func TestComplement(t *testing.T) {
	window := domain.TimeInterval{Start: at(testMonday, 9, 0), End: at(testMonday, 17, 0)}

	free := complement(nil, window)
	require.Len(t, free, 1)
	assert.Equal(t, window, free[0])

	blocked := []domain.TimeInterval{
		{Start: at(testMonday, 9, 0), End: at(testMonday, 10, 0)},
		{Start: at(testMonday, 12, 0), End: at(testMonday, 13, 0)},
	}
	free = complement(blocked, window)
	require.Len(t, free, 2)
	assert.Equal(t, at(testMonday, 10, 0), free[0].Start)
	assert.Equal(t, at(testMonday, 12, 0), free[0].End)
	assert.Equal(t, at(testMonday, 13, 0), free[1].Start)
	assert.Equal(t, at(testMonday, 17, 0), free[1].End)
}
