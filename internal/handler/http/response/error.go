package response

import (
	"errors"
	"net/http"

	"github.com/ekaramchari/hr-backend-go/internal/domain/attendance"
	"github.com/ekaramchari/hr-backend-go/internal/domain/directory"
	"github.com/ekaramchari/hr-backend-go/internal/domain/holiday"
	"github.com/ekaramchari/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance state machine
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "Please check in first")

	// Eligibility gates
	case errors.Is(err, attendance.ErrWeeklyOff):
		BadRequest(w, "Today is a weekly off", nil)
	case errors.Is(err, attendance.ErrHolidayToday):
		msg := "Today is a holiday"
		var holidayErr *attendance.HolidayError
		if errors.As(err, &holidayErr) {
			msg = "Today is a holiday: " + holidayErr.Name
		}
		BadRequest(w, msg, nil)
	case errors.Is(err, attendance.ErrCheckInTooEarly):
		BadRequest(w, "Check-in has not opened yet", nil)
	case errors.Is(err, attendance.ErrCheckInWindowClosed):
		BadRequest(w, "Check-in window has closed", nil)

	// Finalization
	case errors.Is(err, attendance.ErrSweepDateInFuture):
		BadRequest(w, "Cannot finalize a future date", nil)

	// Lookups
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, "Invalid attendance status", nil)
	case errors.Is(err, directory.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
