package report

import (
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/pkg/validator"
)

// EmployeeReportRow is one employee's attendance totals over a date range.
type EmployeeReportRow struct {
	EmpCode        string  `json:"emp_code"`
	EmployeeName   string  `json:"employee_name"`
	DepartmentName *string `json:"dept_name,omitempty"`
	PresentDays    int     `json:"present_days"`
	AbsentDays     int     `json:"absent_days"`
	HalfDays       int     `json:"half_days"`
	LeaveDays      int     `json:"leave_days"`
	TotalHours     float64 `json:"total_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
}

type ReportFilter struct {
	StartDate    string  `json:"start_date"` // YYYY-MM-DD, defaults to month start
	EndDate      string  `json:"end_date"`   // YYYY-MM-DD, defaults to today
	DepartmentID *string `json:"department,omitempty"`
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	now := time.Now()
	if f.StartDate == "" {
		f.StartDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	}
	if f.EndDate == "" {
		f.EndDate = now.Format("2006-01-02")
	}

	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ReportResponse struct {
	Report []EmployeeReportRow `json:"report"`
	Period Period              `json:"period"`
}

// TrendPoint is one day of the present/absent trend.
type TrendPoint struct {
	Date    string `json:"attendance_date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

// DepartmentCount is today's present/absent split for one department.
type DepartmentCount struct {
	DepartmentName string `json:"dept_name"`
	Present        int    `json:"present"`
	Absent         int    `json:"absent"`
}

type StatsResponse struct {
	WeeklyTrend  []TrendPoint      `json:"weekly_trend"`
	ByDepartment []DepartmentCount `json:"by_department"`
}

// Summary is the admin dashboard headline for today.
type Summary struct {
	TotalEmployees int    `json:"total_employees"`
	PresentToday   int    `json:"present_today"`
	AbsentToday    int    `json:"absent_today"`
	OnLeaveToday   int    `json:"on_leave_today"`
	Date           string `json:"date"`
}
