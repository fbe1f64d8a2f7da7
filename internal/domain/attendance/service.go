package attendance

import (
	"context"
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/domain/directory"
)

// Service defines the attendance core operations. Every operation takes an
// explicit actor; there is no ambient session state.
type Service interface {
	// CheckIn records the actor's check-in for today.
	CheckIn(ctx context.Context, actor directory.Actor, ip string) (CheckInResponse, error)

	// CheckOut records the actor's check-out for today and derives the final
	// status from worked hours.
	CheckOut(ctx context.Context, actor directory.Actor) (CheckOutResponse, error)

	// AdminCheckOut fills the checkout time and work hours on any open
	// record. It does not recompute status.
	AdminCheckOut(ctx context.Context, actor directory.Actor, recordID string) (AdminCheckOutResponse, error)

	// Mark is the admin override: wholesale upsert with an explicit status.
	Mark(ctx context.Context, actor directory.Actor, req MarkRequest) error

	// GetRecord returns the stored record for (employeeID, date), or a
	// synthesized default when none exists. Never creates a row.
	GetRecord(ctx context.Context, employeeID string, date time.Time) (RecordResponse, error)

	// Today returns the actor's own record for today plus the day's
	// calendar classification.
	Today(ctx context.Context, actor directory.Actor) (TodayResponse, error)

	// MyAttendance returns one month of the actor's records with a summary.
	MyAttendance(ctx context.Context, actor directory.Actor, filter MyAttendanceFilter) (MyAttendanceResponse, error)

	// List returns the roster view for a date. Pure read: callers needing
	// settled past data run FinalizeDay first.
	List(ctx context.Context, filter ListFilter) (ListResponse, error)

	// FinalizeDay runs the idempotent finalization sweep for a past-or-today
	// date. A nil actor marks a scheduler-triggered run.
	FinalizeDay(ctx context.Context, actor *directory.Actor, date time.Time) (SweepResult, error)

	// FinalizePending completes today's dangling check-ins at
	// min(now, cutoff) with admin remarks.
	FinalizePending(ctx context.Context, actor directory.Actor, date time.Time) (FinalizeResult, error)
}
