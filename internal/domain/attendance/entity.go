package attendance

import (
	"time"
)

// Status is the per-day attendance state. The string values are stored as-is
// and surfaced to clients unchanged.
type Status string

const (
	StatusPending Status = "Pending"
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusHalfDay Status = "Half Day"
	StatusOnLeave Status = "On Leave"
	StatusHoliday Status = "Holiday"
	StatusWeekend Status = "Weekend"
)

// ValidStatuses lists every status an admin may set via Mark.
var ValidStatuses = []Status{
	StatusPending, StatusPresent, StatusAbsent, StatusHalfDay,
	StatusOnLeave, StatusHoliday, StatusWeekend,
}

// IsValid reports whether s is one of the known status values.
func (s Status) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Record is one employee's attendance for one calendar date.
// (EmployeeID, Date) is the natural key; at most one row may exist per pair.
type Record struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	CheckIn       *time.Time
	CheckOut      *time.Time
	WorkHours     *float64
	OvertimeHours *float64
	Status        Status
	Remarks       *string
	IPAddress     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Denormalized for listings, populated by JOIN-backed queries only.
	EmployeeName    *string
	EmpCode         *string
	DepartmentName  *string
	DesignationName *string
	HolidayName     *string
}

// UpdateFields is a partial field set for Upsert. Nil fields are left as-is
// on an existing row and take column defaults on insert.
type UpdateFields struct {
	CheckIn       *time.Time
	CheckOut      *time.Time
	WorkHours     *float64
	OvertimeHours *float64
	Status        *Status
	Remarks       *string
	IPAddress     *string
}
