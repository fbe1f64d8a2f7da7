package directory

// Role codes mirror the user directory. Every active user with one of these
// roles is part of the clock-in population.
const (
	RoleEmployee   = "EMPLOYEE"
	RoleOfficer    = "OFFICER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// EligibleRoles is the full clock-in population filter.
var EligibleRoles = []string{RoleEmployee, RoleOfficer, RoleAdmin, RoleSuperAdmin}

// Employee is the slice of the user directory this core reads. The directory
// itself is owned elsewhere; nothing here writes to it.
type Employee struct {
	ID              string
	EmpCode         string
	Name            string
	Role            string
	DepartmentID    *string
	DepartmentName  *string
	DesignationName *string
}

// Actor identifies the caller of a core operation. Handlers build it from
// verified token claims; the core never consults ambient session state.
type Actor struct {
	UserID string
	Role   string
}

// Elevated reports whether the actor holds an admin-tier role. Elevated
// actors bypass the check-in time window but not the weekend/holiday gate.
func (a Actor) Elevated() bool {
	return a.Role == RoleAdmin || a.Role == RoleSuperAdmin
}
