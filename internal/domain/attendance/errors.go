package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/check-out state conflicts
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrNotCheckedIn      = errors.New("please check in first")

	// Day-eligibility rejections
	ErrWeeklyOff           = errors.New("today is a weekly off, check-in is not allowed")
	ErrHolidayToday        = errors.New("today is a holiday, check-in is not allowed")
	ErrCheckInTooEarly     = errors.New("check-in has not opened yet")
	ErrCheckInWindowClosed = errors.New("check-in window has closed for today")
	ErrSweepDateInFuture   = errors.New("cannot finalize a future date")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrInvalidStatus  = errors.New("invalid attendance status")
)

// HolidayError carries the holiday's name alongside ErrHolidayToday so the
// rejection can say which holiday blocked the check-in.
type HolidayError struct {
	Name string
}

func (e *HolidayError) Error() string {
	return "today is a holiday (" + e.Name + "), check-in is not allowed"
}

func (e *HolidayError) Unwrap() error { return ErrHolidayToday }
