package calendar

import (
	"context"
	"time"
)

// Day is the classification of a single calendar date. It is computed on
// demand and never stored.
type Day struct {
	Date        time.Time `json:"date"`
	IsWeekend   bool      `json:"is_weekend"`
	IsHoliday   bool      `json:"is_holiday"`
	HolidayName *string   `json:"holiday_name,omitempty"`
	IsWorkday   bool      `json:"is_workday"`
}

// Resolver classifies dates against the weekly-off rule and the holiday
// table. Implementations must be side-effect free.
type Resolver interface {
	Classify(ctx context.Context, date time.Time) (Day, error)
}

// WeeklyOff is the set of non-working weekdays.
type WeeklyOff map[time.Weekday]bool

// Contains reports whether d is a configured weekly-off day.
func (w WeeklyOff) Contains(d time.Weekday) bool {
	return w[d]
}

// NewWeeklyOff builds the set from weekday indices (0 = Sunday).
func NewWeeklyOff(days ...int) WeeklyOff {
	off := make(WeeklyOff, len(days))
	for _, d := range days {
		off[time.Weekday(d%7)] = true
	}
	return off
}
