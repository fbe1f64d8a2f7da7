package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/config"
	"github.com/ekaramchari/hr-backend-go/internal/domain/attendance"
	"github.com/ekaramchari/hr-backend-go/internal/domain/audit"
	"github.com/ekaramchari/hr-backend-go/internal/domain/calendar"
	"github.com/ekaramchari/hr-backend-go/internal/domain/directory"
)

// TxRunner executes fn inside a database transaction. Production wiring
// closes over postgresql.WithTransaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type attendanceService struct {
	repo          attendance.Repository
	directoryRepo directory.Repository
	calendar      calendar.Resolver
	audit         audit.Recorder
	tx            TxRunner
	policy        config.AttendanceConfig
	logger        *slog.Logger

	// now is swappable in tests; production wiring passes time.Now.
	now func() time.Time
}

func NewAttendanceService(
	repo attendance.Repository,
	directoryRepo directory.Repository,
	calendarResolver calendar.Resolver,
	auditRecorder audit.Recorder,
	tx TxRunner,
	policy config.AttendanceConfig,
	logger *slog.Logger,
	now func() time.Time,
) attendance.Service {
	return &attendanceService{
		repo:          repo,
		directoryRepo: directoryRepo,
		calendar:      calendarResolver,
		audit:         auditRecorder,
		tx:            tx,
		policy:        policy,
		logger:        logger,
		now:           now,
	}
}

// CheckIn implements attendance.Service. The weekend/holiday gate applies to
// everyone; the time-of-day window only to non-elevated actors. The row claim
// is a single conditional write, so two concurrent check-ins cannot both win.
func (s *attendanceService) CheckIn(ctx context.Context, actor directory.Actor, ip string) (attendance.CheckInResponse, error) {
	now := s.now().In(s.policy.Timezone)
	today := dateOnly(now)

	day, err := s.calendar.Classify(ctx, today)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to classify today: %w", err)
	}
	if day.IsWeekend {
		return attendance.CheckInResponse{}, attendance.ErrWeeklyOff
	}
	if day.IsHoliday {
		if day.HolidayName != nil {
			return attendance.CheckInResponse{}, &attendance.HolidayError{Name: *day.HolidayName}
		}
		return attendance.CheckInResponse{}, attendance.ErrHolidayToday
	}

	if !actor.Elevated() {
		clock := now.Sub(today)
		if clock < s.policy.CheckInWindowStart {
			return attendance.CheckInResponse{}, attendance.ErrCheckInTooEarly
		}
		if clock > s.policy.CheckInWindowEnd {
			return attendance.CheckInResponse{}, attendance.ErrCheckInWindowClosed
		}
	}

	var ipPtr *string
	if ip != "" {
		ipPtr = &ip
	}

	rec, err := s.repo.ClaimCheckIn(ctx, actor.UserID, today, now, attendance.StatusPresent, ipPtr)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	s.record(ctx, &actor, audit.ActionCheckIn,
		fmt.Sprintf("Checked in at %s", now.Format("15:04:05")))

	return attendance.CheckInResponse{
		CheckInTime: now.Format("15:04:05"),
		Status:      rec.Status,
	}, nil
}

// CheckOut implements attendance.Service. The final status is derived from
// worked hours; the provisional Present set at check-in is overwritten.
func (s *attendanceService) CheckOut(ctx context.Context, actor directory.Actor) (attendance.CheckOutResponse, error) {
	now := s.now().In(s.policy.Timezone)
	today := dateOnly(now)

	rec, err := s.repo.Find(ctx, actor.UserID, today)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}
	if rec == nil || rec.CheckIn == nil {
		return attendance.CheckOutResponse{}, attendance.ErrNotCheckedIn
	}
	if rec.CheckOut != nil {
		return attendance.CheckOutResponse{}, attendance.ErrAlreadyCheckedOut
	}

	workHours := attendance.WorkHours(*rec.CheckIn, now)
	overtime := attendance.Overtime(workHours)
	status := attendance.StatusFromHours(workHours)

	if err := s.repo.CompleteCheckOut(ctx, rec.ID, now, workHours, &overtime, &status, nil); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	s.record(ctx, &actor, audit.ActionCheckOut,
		fmt.Sprintf("Checked out at %s (%.2f hours)", now.Format("15:04:05"), workHours))

	return attendance.CheckOutResponse{
		CheckOutTime:  now.Format("15:04:05"),
		WorkHours:     workHours,
		OvertimeHours: overtime,
		Status:        status,
	}, nil
}

// AdminCheckOut implements attendance.Service. Only the checkout time and
// work hours are filled; the stored status and overtime stay as they are.
func (s *attendanceService) AdminCheckOut(ctx context.Context, actor directory.Actor, recordID string) (attendance.AdminCheckOutResponse, error) {
	rec, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return attendance.AdminCheckOutResponse{}, err
	}
	if rec.CheckIn == nil {
		return attendance.AdminCheckOutResponse{}, attendance.ErrNotCheckedIn
	}
	if rec.CheckOut != nil {
		return attendance.AdminCheckOutResponse{}, attendance.ErrAlreadyCheckedOut
	}

	now := s.now().In(s.policy.Timezone)
	workHours := attendance.WorkHours(*rec.CheckIn, now)

	if err := s.repo.CompleteCheckOut(ctx, rec.ID, now, workHours, nil, nil, nil); err != nil {
		return attendance.AdminCheckOutResponse{}, err
	}

	s.record(ctx, &actor, audit.ActionAdminCheckOut,
		fmt.Sprintf("Checked out employee %s for %s", rec.EmployeeID, rec.Date.Format("2006-01-02")))

	return attendance.AdminCheckOutResponse{WorkHours: workHours}, nil
}

// Mark implements attendance.Service. The override writes whatever the admin
// says, merging over any existing row; no derivation runs. The write and its
// audit entry commit together.
func (s *attendanceService) Mark(ctx context.Context, actor directory.Actor, req attendance.MarkRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.policy.Timezone)
	if err != nil {
		return fmt.Errorf("failed to parse date: %w", err)
	}

	fields := attendance.UpdateFields{
		Status:    &req.Status,
		WorkHours: req.WorkHours,
		Remarks:   req.Remarks,
	}
	if t, ok := combineDateTime(date, req.CheckInTime); ok {
		fields.CheckIn = &t
	}
	if t, ok := combineDateTime(date, req.CheckOutTime); ok {
		fields.CheckOut = &t
	}

	return s.tx(ctx, func(ctx context.Context) error {
		if err := s.repo.Upsert(ctx, req.EmployeeID, date, fields); err != nil {
			return err
		}
		return s.audit.Record(ctx, &actor, audit.ActionMark, audit.ModuleAttendance,
			fmt.Sprintf("Marked %s for employee %s on %s", req.Status, req.EmployeeID, req.Date))
	})
}

// GetRecord implements attendance.Service. When no row exists the response
// carries a synthesized status; nothing is written.
func (s *attendanceService) GetRecord(ctx context.Context, employeeID string, date time.Time) (attendance.RecordResponse, error) {
	date = dateOnly(date.In(s.policy.Timezone))

	rec, err := s.repo.Find(ctx, employeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if rec != nil {
		return s.toResponse(*rec), nil
	}

	day, err := s.calendar.Classify(ctx, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to classify date: %w", err)
	}

	today := dateOnly(s.now().In(s.policy.Timezone))
	return attendance.RecordResponse{
		EmployeeID:  employeeID,
		Date:        date.Format("2006-01-02"),
		Status:      attendance.DefaultStatus(date, day, today),
		HolidayName: day.HolidayName,
	}, nil
}

// Today implements attendance.Service.
func (s *attendanceService) Today(ctx context.Context, actor directory.Actor) (attendance.TodayResponse, error) {
	today := dateOnly(s.now().In(s.policy.Timezone))

	day, err := s.calendar.Classify(ctx, today)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to classify today: %w", err)
	}

	rec, err := s.repo.Find(ctx, actor.UserID, today)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	resp := attendance.TodayResponse{
		Date:        today.Format("2006-01-02"),
		IsHoliday:   day.IsHoliday,
		HolidayName: day.HolidayName,
		IsWeekend:   day.IsWeekend,
	}
	if rec != nil {
		r := s.toResponse(*rec)
		resp.Attendance = &r
	}

	return resp, nil
}

// MyAttendance implements attendance.Service.
func (s *attendanceService) MyAttendance(ctx context.Context, actor directory.Actor, filter attendance.MyAttendanceFilter) (attendance.MyAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.MyAttendanceResponse{}, err
	}

	records, err := s.repo.ListForEmployeeMonth(ctx, actor.UserID, filter.Month, filter.Year)
	if err != nil {
		return attendance.MyAttendanceResponse{}, err
	}

	summary, err := s.repo.MonthlySummary(ctx, actor.UserID, filter.Month, filter.Year)
	if err != nil {
		return attendance.MyAttendanceResponse{}, err
	}

	resp := attendance.MyAttendanceResponse{
		Attendance: make([]attendance.RecordResponse, 0, len(records)),
		Summary:    summary,
		Month:      filter.Month,
		Year:       filter.Year,
	}
	for _, rec := range records {
		resp.Attendance = append(resp.Attendance, s.toResponse(rec))
	}

	return resp, nil
}

// List implements attendance.Service. A pure read over the roster: employees
// without a stored row come back with a synthesized status for the date.
func (s *attendanceService) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	now := s.now().In(s.policy.Timezone)
	date := dateOnly(now)
	if filter.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", filter.Date, s.policy.Timezone)
		if err != nil {
			return attendance.ListResponse{}, err
		}
		date = parsed
	}

	day, err := s.calendar.Classify(ctx, date)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to classify date: %w", err)
	}
	defaultStatus := attendance.DefaultStatus(date, day, dateOnly(now))

	records, total, err := s.repo.ListRoster(ctx, date, filter, defaultStatus)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	resp := attendance.ListResponse{
		Attendance:  make([]attendance.RecordResponse, 0, len(records)),
		Date:        date.Format("2006-01-02"),
		IsHoliday:   day.IsHoliday,
		HolidayName: day.HolidayName,
		IsWeekend:   day.IsWeekend,
		Pagination: attendance.Pagination{
			Total:      total,
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		},
	}
	for _, rec := range records {
		resp.Attendance = append(resp.Attendance, s.toResponse(rec))
	}

	return resp, nil
}

// record writes an audit event and swallows failures after logging them.
func (s *attendanceService) record(ctx context.Context, actor *directory.Actor, action, description string) {
	if err := s.audit.Record(ctx, actor, action, audit.ModuleAttendance, description); err != nil {
		s.logger.Warn("failed to record activity", "action", action, "error", err)
	}
}

func (s *attendanceService) toResponse(rec attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:              rec.ID,
		EmployeeID:      rec.EmployeeID,
		EmpCode:         rec.EmpCode,
		EmployeeName:    rec.EmployeeName,
		DepartmentName:  rec.DepartmentName,
		DesignationName: rec.DesignationName,
		Date:            rec.Date.Format("2006-01-02"),
		WorkHours:       rec.WorkHours,
		OvertimeHours:   rec.OvertimeHours,
		Status:          rec.Status,
		Remarks:         rec.Remarks,
		HolidayName:     rec.HolidayName,
	}
	if rec.CheckIn != nil {
		t := rec.CheckIn.In(s.policy.Timezone).Format("15:04:05")
		resp.CheckInTime = &t
	}
	if rec.CheckOut != nil {
		t := rec.CheckOut.In(s.policy.Timezone).Format("15:04:05")
		resp.CheckOutTime = &t
	}
	return resp
}

// combineDateTime merges a HH:MM:SS clock string onto a date. Empty or nil
// clock strings report false.
func combineDateTime(date time.Time, clock *string) (time.Time, bool) {
	if clock == nil || *clock == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("15:04:05", *clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, date.Location()), true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
