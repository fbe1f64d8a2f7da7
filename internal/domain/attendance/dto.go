package attendance

import (
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInResponse struct {
	CheckInTime string `json:"check_in_time"`
	Status      Status `json:"status"`
}

type CheckOutResponse struct {
	CheckOutTime  string  `json:"check_out_time"`
	WorkHours     float64 `json:"work_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	Status        Status  `json:"status"`
}

type AdminCheckOutResponse struct {
	WorkHours float64 `json:"work_hours"`
}

// MarkRequest is the admin override: it upserts the record wholesale with no
// derivation and no state-machine preconditions beyond a valid status.
type MarkRequest struct {
	EmployeeID   string   `json:"employee_id"`
	Date         string   `json:"date"` // YYYY-MM-DD
	Status       Status   `json:"status"`
	CheckInTime  *string  `json:"check_in_time,omitempty"`  // HH:MM:SS
	CheckOutTime *string  `json:"check_out_time,omitempty"` // HH:MM:SS
	WorkHours    *float64 `json:"work_hours,omitempty"`
	Remarks      *string  `json:"remarks,omitempty"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Present, Absent, Half Day, On Leave, Holiday, Weekend, Pending",
		})
	}

	if r.CheckInTime != nil && *r.CheckInTime != "" {
		if _, valid := validator.IsValidTimeOfDay(*r.CheckInTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be in HH:MM:SS format",
			})
		}
	}

	if r.CheckOutTime != nil && *r.CheckOutTime != "" {
		if _, valid := validator.IsValidTimeOfDay(*r.CheckOutTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be in HH:MM:SS format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID              string   `json:"id,omitempty"`
	EmployeeID      string   `json:"employee_id"`
	EmpCode         *string  `json:"emp_code,omitempty"`
	EmployeeName    *string  `json:"employee_name,omitempty"`
	DepartmentName  *string  `json:"dept_name,omitempty"`
	DesignationName *string  `json:"designation_name,omitempty"`
	Date            string   `json:"attendance_date"`
	CheckInTime     *string  `json:"check_in_time,omitempty"`
	CheckOutTime    *string  `json:"check_out_time,omitempty"`
	WorkHours       *float64 `json:"work_hours,omitempty"`
	OvertimeHours   *float64 `json:"overtime_hours,omitempty"`
	Status          Status   `json:"status"`
	Remarks         *string  `json:"remarks,omitempty"`
	HolidayName     *string  `json:"holiday_name,omitempty"`
}

// ListFilter selects the roster view for a single date.
type ListFilter struct {
	Date         string  `json:"date"` // YYYY-MM-DD, defaults to today
	DepartmentID *string `json:"department,omitempty"`
	Status       *Status `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != "" {
		if _, valid := validator.IsValidDate(f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Status != nil && !f.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Present, Absent, Half Day, On Leave, Holiday, Weekend, Pending",
		})
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 100
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type ListResponse struct {
	Attendance  []RecordResponse `json:"attendance"`
	Date        string           `json:"date"`
	IsHoliday   bool             `json:"is_holiday"`
	HolidayName *string          `json:"holiday_name,omitempty"`
	IsWeekend   bool             `json:"is_weekend"`
	Pagination  Pagination       `json:"pagination"`
}

// MyAttendanceFilter selects one calendar month of the caller's own records.
type MyAttendanceFilter struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	now := time.Now()
	if f.Month == 0 {
		f.Month = int(now.Month())
	}
	if f.Year == 0 {
		f.Year = now.Year()
	}

	if f.Month < 1 || f.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if f.Year < 2000 || f.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MonthlySummary aggregates one employee's month.
type MonthlySummary struct {
	Present       int     `json:"present"`
	Absent        int     `json:"absent"`
	HalfDay       int     `json:"half_day"`
	OnLeave       int     `json:"on_leave"`
	TotalHours    float64 `json:"total_hours"`
	TotalOvertime float64 `json:"total_overtime"`
}

type MyAttendanceResponse struct {
	Attendance []RecordResponse `json:"attendance"`
	Summary    MonthlySummary   `json:"summary"`
	Month      int              `json:"month"`
	Year       int              `json:"year"`
}

type TodayResponse struct {
	Date        string          `json:"date"`
	Attendance  *RecordResponse `json:"attendance"`
	IsHoliday   bool            `json:"is_holiday"`
	HolidayName *string         `json:"holiday_name,omitempty"`
	IsWeekend   bool            `json:"is_weekend"`
}

// SweepResult reports what a finalization sweep did for one date.
type SweepResult struct {
	Date                string `json:"date"`
	AbsentMarked        int    `json:"absent_marked"`
	AutoCheckout        int    `json:"auto_checkout"`
	PresentFromCheckout int    `json:"present_marked"`
	HalfDayFromCheckout int    `json:"half_day_marked"`
	Skipped             int    `json:"skipped"`
	SkipReason          string `json:"skip_reason,omitempty"`
}

// FinalizeResult reports the admin end-of-day pass over dangling check-ins.
type FinalizeResult struct {
	Date      string `json:"date"`
	Processed int    `json:"processed"`
}
