package directory

import (
	"context"
	"errors"
)

var ErrEmployeeNotFound = errors.New("employee not found")

// Repository is the read-only view of the employee directory consumed by the
// attendance core.
type Repository interface {
	// ListActiveEligible returns every active user in an eligible role --
	// the whole clock-in population, admins included.
	ListActiveEligible(ctx context.Context) ([]Employee, error)

	// GetByID returns a single active employee.
	GetByID(ctx context.Context, id string) (Employee, error)

	// CountActiveEligible returns the size of the clock-in population.
	CountActiveEligible(ctx context.Context) (int, error)
}
