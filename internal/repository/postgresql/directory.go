package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ekaramchari/hr-backend-go/internal/domain/directory"
	"github.com/ekaramchari/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type directoryRepository struct {
	db *database.DB
}

func NewDirectoryRepository(db *database.DB) directory.Repository {
	return &directoryRepository{db: db}
}

// eligibleRolesClause filters users to the clock-in population.
var eligibleRolesClause = "r.role_code IN (" + quoteRoles(directory.EligibleRoles) + ")"

func quoteRoles(roles []string) string {
	quoted := make([]string, len(roles))
	for i, role := range roles {
		quoted[i] = "'" + role + "'"
	}
	return strings.Join(quoted, ", ")
}

// ListActiveEligible implements directory.Repository.
func (r *directoryRepository) ListActiveEligible(ctx context.Context) ([]directory.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.emp_code, u.first_name || ' ' || u.last_name, r.role_code,
			u.department_id, d.dept_name, des.designation_name
		FROM users u
		JOIN roles r ON u.role_id = r.id
		LEFT JOIN departments d ON u.department_id = d.id
		LEFT JOIN designations des ON u.designation_id = des.id
		WHERE ` + eligibleRolesClause + ` AND u.is_active = true
		ORDER BY u.first_name, u.last_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []directory.Employee
	for rows.Next() {
		var e directory.Employee
		err := rows.Scan(&e.ID, &e.EmpCode, &e.Name, &e.Role,
			&e.DepartmentID, &e.DepartmentName, &e.DesignationName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

// GetByID implements directory.Repository.
func (r *directoryRepository) GetByID(ctx context.Context, id string) (directory.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.emp_code, u.first_name || ' ' || u.last_name, r.role_code,
			u.department_id, d.dept_name, des.designation_name
		FROM users u
		JOIN roles r ON u.role_id = r.id
		LEFT JOIN departments d ON u.department_id = d.id
		LEFT JOIN designations des ON u.designation_id = des.id
		WHERE u.id = $1 AND u.is_active = true
	`

	var e directory.Employee
	err := q.QueryRow(ctx, query, id).Scan(&e.ID, &e.EmpCode, &e.Name, &e.Role,
		&e.DepartmentID, &e.DepartmentName, &e.DesignationName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return directory.Employee{}, directory.ErrEmployeeNotFound
		}
		return directory.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

// CountActiveEligible implements directory.Repository.
func (r *directoryRepository) CountActiveEligible(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM users u
		JOIN roles r ON u.role_id = r.id
		WHERE ` + eligibleRolesClause + ` AND u.is_active = true
	`

	var count int
	if err := q.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}

	return count, nil
}
