package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/domain/attendance"
	"github.com/ekaramchari/hr-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, attendance_date, check_in_time, check_out_time,
	work_hours, overtime_hours, status, remarks, ip_address,
	created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&rec.WorkHours, &rec.OvertimeHours, &rec.Status, &rec.Remarks, &rec.IPAddress,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Find implements attendance.Repository.
func (r *attendanceRepository) Find(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE employee_id = $1 AND attendance_date = $2
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance: %w", err)
	}

	return &rec, nil
}

// GetByID implements attendance.Repository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE id = $1
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return rec, nil
}

// ClaimCheckIn implements attendance.Repository. The WHERE guard on the
// conflict branch makes the claim a compare-and-set: a row that already has
// a check-in is left untouched and no row comes back.
func (r *attendanceRepository) ClaimCheckIn(ctx context.Context, employeeID string, date time.Time, checkIn time.Time, status attendance.Status, ip *string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (id, employee_id, attendance_date, check_in_time, status, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, attendance_date) DO UPDATE
		SET check_in_time = EXCLUDED.check_in_time,
			status = EXCLUDED.status,
			ip_address = EXCLUDED.ip_address,
			updated_at = now()
		WHERE attendance.check_in_time IS NULL
		RETURNING ` + attendanceColumns

	rec, err := scanAttendance(q.QueryRow(ctx, query, uuid.NewString(), employeeID, date, checkIn, status, ip))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to claim check-in: %w", err)
	}

	return rec, nil
}

// CompleteCheckOut implements attendance.Repository. Guarded by
// check_out_time IS NULL so a concurrent sweep and an interactive checkout
// cannot both win.
func (r *attendanceRepository) CompleteCheckOut(ctx context.Context, id string, checkOut time.Time, workHours float64, overtime *float64, status *attendance.Status, remarks *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance
		SET check_out_time = $2,
			work_hours = $3,
			overtime_hours = COALESCE($4, overtime_hours),
			status = COALESCE($5, status),
			remarks = COALESCE($6, remarks),
			updated_at = now()
		WHERE id = $1 AND check_out_time IS NULL
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, checkOut, workHours, overtime, status, remarks).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAlreadyCheckedOut
		}
		return fmt.Errorf("failed to complete check-out: %w", err)
	}

	return nil
}

// MarkAbsent implements attendance.Repository. The unique constraint on
// (employee_id, attendance_date) plus DO NOTHING makes the sweep idempotent.
func (r *attendanceRepository) MarkAbsent(ctx context.Context, employeeID string, date time.Time, remarks string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (id, employee_id, attendance_date, status, remarks)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, attendance_date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, uuid.NewString(), employeeID, date, attendance.StatusAbsent, remarks)
	if err != nil {
		return false, fmt.Errorf("failed to mark absent: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Upsert implements attendance.Repository. Nil fields keep the stored value
// on conflict (partial merge).
func (r *attendanceRepository) Upsert(ctx context.Context, employeeID string, date time.Time, fields attendance.UpdateFields) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (id, employee_id, attendance_date, check_in_time, check_out_time,
			work_hours, overtime_hours, status, remarks, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, 'Pending'), $9, $10)
		ON CONFLICT (employee_id, attendance_date) DO UPDATE
		SET check_in_time = COALESCE(EXCLUDED.check_in_time, attendance.check_in_time),
			check_out_time = COALESCE(EXCLUDED.check_out_time, attendance.check_out_time),
			work_hours = COALESCE(EXCLUDED.work_hours, attendance.work_hours),
			overtime_hours = COALESCE(EXCLUDED.overtime_hours, attendance.overtime_hours),
			status = COALESCE($8, attendance.status),
			remarks = COALESCE(EXCLUDED.remarks, attendance.remarks),
			ip_address = COALESCE(EXCLUDED.ip_address, attendance.ip_address),
			updated_at = now()
	`

	_, err := q.Exec(ctx, query, uuid.NewString(), employeeID, date,
		fields.CheckIn, fields.CheckOut, fields.WorkHours, fields.OvertimeHours,
		fields.Status, fields.Remarks, fields.IPAddress)
	if err != nil {
		return fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return nil
}

// ListOpenForDate implements attendance.Repository.
func (r *attendanceRepository) ListOpenForDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE attendance_date = $1
		  AND check_in_time IS NOT NULL
		  AND check_out_time IS NULL
		ORDER BY check_in_time
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ListRoster implements attendance.Repository. One row per eligible
// employee; employees with no stored record for the date come back with
// defaultStatus and no record ID. A pure read: nothing is written.
func (r *attendanceRepository) ListRoster(ctx context.Context, date time.Time, filter attendance.ListFilter, defaultStatus attendance.Status) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := eligibleRolesClause + ` AND u.is_active = true`
	args := []interface{}{date, defaultStatus}
	argIdx := 3

	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		baseWhere += fmt.Sprintf(" AND u.department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND COALESCE(a.status, $2) = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	fromClause := `
		FROM users u
		JOIN roles r ON u.role_id = r.id
		LEFT JOIN departments d ON u.department_id = d.id
		LEFT JOIN designations des ON u.designation_id = des.id
		LEFT JOIN attendance a ON u.id = a.employee_id AND a.attendance_date = $1
	`

	countQuery := "SELECT COUNT(*)" + fromClause + "WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count roster: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT
			u.id AS employee_id,
			u.emp_code,
			u.first_name || ' ' || u.last_name AS employee_name,
			COALESCE(d.dept_name, 'N/A') AS dept_name,
			COALESCE(des.designation_name, 'N/A') AS designation_name,
			a.id,
			a.check_in_time,
			a.check_out_time,
			a.work_hours,
			a.overtime_hours,
			COALESCE(a.status, $2) AS status,
			a.remarks
		%s
		WHERE %s
		ORDER BY u.first_name, u.last_name
		LIMIT $%d OFFSET $%d
	`, fromClause, baseWhere, argIdx, argIdx+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		var recordID *string
		err := rows.Scan(
			&rec.EmployeeID, &rec.EmpCode, &rec.EmployeeName,
			&rec.DepartmentName, &rec.DesignationName,
			&recordID, &rec.CheckIn, &rec.CheckOut,
			&rec.WorkHours, &rec.OvertimeHours, &rec.Status, &rec.Remarks,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan roster row: %w", err)
		}
		if recordID != nil {
			rec.ID = *recordID
		}
		rec.Date = date
		records = append(records, rec)
	}

	return records, total, rows.Err()
}

// ListForEmployeeMonth implements attendance.Repository.
func (r *attendanceRepository) ListForEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.attendance_date, a.check_in_time, a.check_out_time,
			a.work_hours, a.overtime_hours, a.status, a.remarks, a.ip_address,
			a.created_at, a.updated_at,
			h.holiday_name
		FROM attendance a
		LEFT JOIN holidays h ON a.attendance_date = h.holiday_date AND h.is_active = true
		WHERE a.employee_id = $1
		  AND EXTRACT(MONTH FROM a.attendance_date) = $2
		  AND EXTRACT(YEAR FROM a.attendance_date) = $3
		ORDER BY a.attendance_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
			&rec.WorkHours, &rec.OvertimeHours, &rec.Status, &rec.Remarks, &rec.IPAddress,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.HolidayName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// MonthlySummary implements attendance.Repository.
func (r *attendanceRepository) MonthlySummary(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'Present'),
			COUNT(*) FILTER (WHERE status = 'Absent'),
			COUNT(*) FILTER (WHERE status = 'Half Day'),
			COUNT(*) FILTER (WHERE status = 'On Leave'),
			COALESCE(SUM(work_hours), 0),
			COALESCE(SUM(overtime_hours), 0)
		FROM attendance
		WHERE employee_id = $1
		  AND EXTRACT(MONTH FROM attendance_date) = $2
		  AND EXTRACT(YEAR FROM attendance_date) = $3
	`

	var s attendance.MonthlySummary
	err := q.QueryRow(ctx, query, employeeID, month, year).Scan(
		&s.Present, &s.Absent, &s.HalfDay, &s.OnLeave,
		&s.TotalHours, &s.TotalOvertime,
	)
	if err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("failed to get monthly summary: %w", err)
	}

	return s, nil
}
