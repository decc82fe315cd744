package domain

// WorkDayPolicy describes the working-hours and lunch-break rules used when
// computing free meeting windows. All hour fields are in the local day of the
// configured timezone.
type WorkDayPolicy struct {
	WorkStartHour   int
	WorkEndHour     int
	LunchStartHour  int
	LunchEndHour    int
	BufferHours     int // expansion applied to each busy block on both sides
	MinFreeMinutes  int // a day qualifies only with at least this much free time
	MaxDaysReturned int
}

// DefaultWorkDayPolicy returns the standard dashboard policy
func DefaultWorkDayPolicy() WorkDayPolicy {
	return WorkDayPolicy{
		WorkStartHour:   DefaultWorkStartHour,
		WorkEndHour:     DefaultWorkEndHour,
		LunchStartHour:  DefaultLunchStartHour,
		LunchEndHour:    DefaultLunchEndHour,
		BufferHours:     DefaultBufferHours,
		MinFreeMinutes:  DefaultMinFreeMinutes,
		MaxDaysReturned: DefaultMaxDaysReturned,
	}
}

// IsOrdered returns true if the working day and lunch break hours are in a
// consistent order (work start < lunch start < lunch end < work end)
func (p WorkDayPolicy) IsOrdered() bool {
	return p.WorkStartHour < p.LunchStartHour &&
		p.LunchStartHour < p.LunchEndHour &&
		p.LunchEndHour < p.WorkEndHour
}

// HasPositiveFields returns true if every policy field is a positive integer
func (p WorkDayPolicy) HasPositiveFields() bool {
	return p.WorkStartHour > 0 &&
		p.WorkEndHour > 0 &&
		p.LunchStartHour > 0 &&
		p.LunchEndHour > 0 &&
		p.BufferHours > 0 &&
		p.MinFreeMinutes > 0 &&
		p.MaxDaysReturned > 0
}
