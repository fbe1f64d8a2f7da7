package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/domain/report"
	"github.com/ekaramchari/hr-backend-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepository{db: db}
}

// EmployeeReport implements report.Repository.
func (r *reportRepository) EmployeeReport(ctx context.Context, start, end time.Time, departmentID *string) ([]report.EmployeeReportRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			u.emp_code,
			u.first_name || ' ' || u.last_name AS employee_name,
			d.dept_name,
			COUNT(*) FILTER (WHERE a.status = 'Present'),
			COUNT(*) FILTER (WHERE a.status = 'Absent'),
			COUNT(*) FILTER (WHERE a.status = 'Half Day'),
			COUNT(*) FILTER (WHERE a.status = 'On Leave'),
			COALESCE(SUM(a.work_hours), 0),
			COALESCE(SUM(a.overtime_hours), 0)
		FROM attendance a
		JOIN users u ON a.employee_id = u.id
		LEFT JOIN departments d ON u.department_id = d.id
		WHERE a.attendance_date BETWEEN $1 AND $2
	`
	args := []interface{}{start, end}

	if departmentID != nil && *departmentID != "" {
		query += " AND u.department_id = $3"
		args = append(args, *departmentID)
	}

	query += `
		GROUP BY u.id, u.emp_code, u.first_name, u.last_name, d.dept_name
		ORDER BY u.first_name, u.last_name
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee report: %w", err)
	}
	defer rows.Close()

	var reportRows []report.EmployeeReportRow
	for rows.Next() {
		var row report.EmployeeReportRow
		err := rows.Scan(
			&row.EmpCode, &row.EmployeeName, &row.DepartmentName,
			&row.PresentDays, &row.AbsentDays, &row.HalfDays, &row.LeaveDays,
			&row.TotalHours, &row.OvertimeHours,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reportRows = append(reportRows, row)
	}

	return reportRows, rows.Err()
}

// WeeklyTrend implements report.Repository.
func (r *reportRepository) WeeklyTrend(ctx context.Context, since time.Time) ([]report.TrendPoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			attendance_date,
			COUNT(*) FILTER (WHERE status = 'Present'),
			COUNT(*) FILTER (WHERE status = 'Absent')
		FROM attendance
		WHERE attendance_date >= $1
		GROUP BY attendance_date
		ORDER BY attendance_date
	`

	rows, err := q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly trend: %w", err)
	}
	defer rows.Close()

	var trend []report.TrendPoint
	for rows.Next() {
		var p report.TrendPoint
		var date time.Time
		if err := rows.Scan(&date, &p.Present, &p.Absent); err != nil {
			return nil, fmt.Errorf("failed to scan trend point: %w", err)
		}
		p.Date = date.Format("2006-01-02")
		trend = append(trend, p)
	}

	return trend, rows.Err()
}

// DepartmentWise implements report.Repository.
func (r *reportRepository) DepartmentWise(ctx context.Context, date time.Time) ([]report.DepartmentCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(d.dept_name, 'N/A'),
			COUNT(*) FILTER (WHERE a.status = 'Present'),
			COUNT(*) FILTER (WHERE a.status = 'Absent')
		FROM attendance a
		JOIN users u ON a.employee_id = u.id
		LEFT JOIN departments d ON u.department_id = d.id
		WHERE a.attendance_date = $1
		GROUP BY d.dept_name
		ORDER BY d.dept_name
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query department counts: %w", err)
	}
	defer rows.Close()

	var counts []report.DepartmentCount
	for rows.Next() {
		var c report.DepartmentCount
		if err := rows.Scan(&c.DepartmentName, &c.Present, &c.Absent); err != nil {
			return nil, fmt.Errorf("failed to scan department count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// DailyCounts implements report.Repository. Half days count toward presence.
func (r *reportRepository) DailyCounts(ctx context.Context, date time.Time) (int, int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status IN ('Present', 'Half Day')),
			COUNT(*) FILTER (WHERE status = 'On Leave')
		FROM attendance
		WHERE attendance_date = $1
	`

	var present, onLeave int
	if err := q.QueryRow(ctx, query, date).Scan(&present, &onLeave); err != nil {
		return 0, 0, fmt.Errorf("failed to query daily counts: %w", err)
	}

	return present, onLeave, nil
}
