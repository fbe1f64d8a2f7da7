package holiday

import (
	"context"
	"errors"
	"time"
)

var ErrHolidayNotFound = errors.New("holiday not found")

// Holiday is a row of the admin-managed holiday calendar. The attendance
// core only reads it.
type Holiday struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"holiday_date"`
	Name     string    `json:"holiday_name"`
	Type     string    `json:"holiday_type"`
	IsActive bool      `json:"is_active"`
}

// Repository is the read-only holiday calendar collaborator.
type Repository interface {
	// GetActiveByDate returns the active holiday on the exact date, or
	// ErrHolidayNotFound.
	GetActiveByDate(ctx context.Context, date time.Time) (Holiday, error)

	// ListForYear returns all active holidays in a calendar year, ordered
	// by date.
	ListForYear(ctx context.Context, year int) ([]Holiday, error)
}
