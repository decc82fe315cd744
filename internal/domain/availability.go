package domain

import "time"

// DayAvailability represents the free meeting windows found within a single
// working day. It is ephemeral: built during one availability computation and
// discarded after formatting/caching by the caller.
type DayAvailability struct {
	Date             time.Time      // midnight of the day in the scan timezone
	Periods          []TimeInterval // ordered, non-overlapping free periods
	TotalFreeMinutes int
}

// MeetsMinimum returns true if the day's total free time satisfies the policy
func (d *DayAvailability) MeetsMinimum(minFreeMinutes int) bool {
	return d.TotalFreeMinutes >= minFreeMinutes
}
