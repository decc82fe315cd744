package get_availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rckarchitects/crashboard/internal/domain"
)

func TestFormatPeriods(t *testing.T) {
	periods := []domain.TimeInterval{
		{Start: at(testMonday, 9, 0), End: at(testMonday, 13, 0)},
		{Start: at(testMonday, 14, 0), End: at(testMonday, 17, 0)},
	}
	assert.Equal(t, "9am-1pm, 2pm-5pm", FormatPeriods(periods))
}

func TestFormatPeriods_MiddayOnEitherSide(t *testing.T) {
	// Ровно 12:00 заменяется словом "midday" с любой стороны диапазона
	ending := []domain.TimeInterval{
		{Start: at(testMonday, 9, 0), End: at(testMonday, 12, 0)},
	}
	assert.Equal(t, "9am-midday", FormatPeriods(ending))

	starting := []domain.TimeInterval{
		{Start: at(testMonday, 12, 0), End: at(testMonday, 17, 0)},
	}
	assert.Equal(t, "midday-5pm", FormatPeriods(starting))
}

func TestFormatPeriods_NonRoundHours(t *testing.T) {
	periods := []domain.TimeInterval{
		{Start: at(testMonday, 11, 30), End: at(testMonday, 14, 30)},
	}
	assert.Equal(t, "11:30am-2:30pm", FormatPeriods(periods))
}

func TestFormatPeriods_Empty(t *testing.T) {
	assert.Equal(t, "", FormatPeriods(nil))
}

func TestFormatDayDetails(t *testing.T) {
	day := domain.DayAvailability{
		Date: testMonday, // Monday 13 October
		Periods: []domain.TimeInterval{
			{Start: at(testMonday, 9, 0), End: at(testMonday, 12, 0)},
			{Start: at(testMonday, 14, 0), End: at(testMonday, 17, 0)},
		},
	}

	expected := "Monday 13 October, between 9am and midday\n" +
		"Monday 13 October, between 2pm and 5pm"
	assert.Equal(t, expected, FormatDayDetails(day))
}

func TestClockLabel(t *testing.T) {
	tests := []struct {
		hour, min int
		want      string
	}{
		{9, 0, "9am"},
		{12, 0, "midday"},
		{12, 30, "12:30pm"},
		{13, 0, "1pm"},
		{0, 0, "12am"},
		{23, 15, "11:15pm"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, clockLabel(at(testMonday, tc.hour, tc.min)))
	}
}
