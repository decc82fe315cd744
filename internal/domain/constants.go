package domain

import "time"

// Default availability policy values
const (
	DefaultWorkStartHour   = 9
	DefaultWorkEndHour     = 17
	DefaultLunchStartHour  = 13
	DefaultLunchEndHour    = 14
	DefaultBufferHours     = 1
	DefaultMinFreeMinutes  = 120 // 2 hours
	DefaultMaxDaysReturned = 4
)

// FreePeriodJoinTolerance is the maximum gap between two consecutive free
// periods that is still treated as timestamp noise rather than a real busy
// gap. Abutting free periods within this tolerance are joined into one.
const FreePeriodJoinTolerance = 60 * time.Second

// Business validation constants
const (
	MinTileSpan = 1
	MaxTileSpan = 4

	MaxScanRangeDays = 60 // longest allowed availability scan window
)

// DateFormat is the wire format for scan window dates
const DateFormat = "2006-01-02" // YYYY-MM-DD
