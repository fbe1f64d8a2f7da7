package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. The (employee_id,
// attendance_date) pair is protected by a unique constraint; the claim/complete
// methods rely on single-statement conditional writes so that an interactive
// check-in/out and a concurrently running sweep cannot produce lost updates.
type Repository interface {
	// Find returns the record for (employeeID, date), or nil when none exists.
	Find(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// GetByID returns a record by primary key, or ErrRecordNotFound.
	GetByID(ctx context.Context, id string) (Record, error)

	// ClaimCheckIn atomically inserts the record (or fills an existing row
	// whose check_in_time is still null) with the check-in fields. Returns
	// ErrAlreadyCheckedIn when the row already carries a check-in.
	ClaimCheckIn(ctx context.Context, employeeID string, date time.Time, checkIn time.Time, status Status, ip *string) (Record, error)

	// CompleteCheckOut atomically fills the checkout fields, guarded by
	// check_out_time IS NULL. Returns ErrAlreadyCheckedOut when the guard
	// fails. Nil status leaves the stored status untouched (admin variant).
	CompleteCheckOut(ctx context.Context, id string, checkOut time.Time, workHours float64, overtime *float64, status *Status, remarks *string) error

	// MarkAbsent inserts an Absent row if and only if no record exists for
	// the key. Reports whether a row was created.
	MarkAbsent(ctx context.Context, employeeID string, date time.Time, remarks string) (bool, error)

	// Upsert applies a partial field merge for the key, inserting when
	// missing. Used by the admin mark override only.
	Upsert(ctx context.Context, employeeID string, date time.Time, fields UpdateFields) error

	// ListOpenForDate returns records with a check-in and no check-out.
	ListOpenForDate(ctx context.Context, date time.Time) ([]Record, error)

	// ListRoster returns one row per eligible employee for the date,
	// LEFT-JOINed with attendance; employees without a stored record get
	// defaultStatus. The read never creates rows.
	ListRoster(ctx context.Context, date time.Time, filter ListFilter, defaultStatus Status) ([]Record, int64, error)

	// ListForEmployeeMonth returns the employee's stored records for one
	// calendar month, newest first.
	ListForEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]Record, error)

	// MonthlySummary aggregates the employee's stored records for one month.
	MonthlySummary(ctx context.Context, employeeID string, month, year int) (MonthlySummary, error)
}
