package attendance

import (
	"math"
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/domain/calendar"
)

const (
	// PresentThresholdHours is the minimum worked-hours for a full Present day.
	PresentThresholdHours = 6.0

	// OvertimeAfterHours is the regular working day length; anything beyond it
	// counts as overtime.
	OvertimeAfterHours = 8.0
)

// WorkHours returns the duration between check-in and check-out in hours,
// rounded to two decimals. Callers must guarantee checkOut is not before
// checkIn on the same day.
func WorkHours(checkIn, checkOut time.Time) float64 {
	secs := checkOut.Sub(checkIn).Seconds()
	return math.Round(secs/3600*100) / 100
}

// Overtime returns the hours worked beyond the regular day, never negative.
func Overtime(workHours float64) float64 {
	return math.Max(0, workHours-OvertimeAfterHours)
}

// StatusFromHours maps worked hours to a terminal status: six or more hours
// is a full Present day, anything less counts as Half Day.
func StatusFromHours(workHours float64) Status {
	if workHours >= PresentThresholdHours {
		return StatusPresent
	}
	return StatusHalfDay
}

// DefaultStatus is the synthesized status for a queried date with no stored
// record. It is presentation-only: reads must never persist it. Past workdays
// default to Absent, today and future workdays to Pending.
func DefaultStatus(date time.Time, day calendar.Day, today time.Time) Status {
	switch {
	case day.IsWeekend:
		return StatusWeekend
	case day.IsHoliday:
		return StatusHoliday
	case dateOnly(date).Before(dateOnly(today)):
		return StatusAbsent
	default:
		return StatusPending
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
