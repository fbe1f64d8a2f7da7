package attendance

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/config"
	"github.com/ekaramchari/hr-backend-go/internal/domain/attendance"
	"github.com/ekaramchari/hr-backend-go/internal/domain/audit"
	"github.com/ekaramchari/hr-backend-go/internal/domain/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	repo     *fakeAttendanceRepo
	dir      *fakeDirectoryRepo
	resolver *fakeResolver
	audit    *fakeAuditRecorder
	svc      attendance.Service
	clock    *time.Time
}

func testPolicy() config.AttendanceConfig {
	return config.AttendanceConfig{
		Timezone:           time.UTC,
		WeeklyOffDays:      []int{0},
		CheckInWindowStart: 8 * time.Hour,
		CheckInWindowEnd:   17 * time.Hour,
		SweepCutoff:        17 * time.Hour,
		SweepInterval:      time.Hour,
	}
}

func newTestEnv(now time.Time) *testEnv {
	env := &testEnv{
		repo:     newFakeAttendanceRepo(),
		dir:      &fakeDirectoryRepo{},
		resolver: newFakeResolver(),
		audit:    &fakeAuditRecorder{},
		clock:    &now,
	}
	passthroughTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}
	env.svc = NewAttendanceService(
		env.repo, env.dir, env.resolver, env.audit, passthroughTx,
		testPolicy(), slog.Default(),
		func() time.Time { return *env.clock },
	)
	return env
}

func (e *testEnv) advanceTo(t time.Time) {
	*e.clock = t
}

// 2025-03-04 is a Tuesday.
func workday(hour, min int) time.Time {
	return time.Date(2025, 3, 4, hour, min, 0, 0, time.UTC)
}

var (
	employee = directory.Actor{UserID: "emp-1", Role: directory.RoleEmployee}
	admin    = directory.Actor{UserID: "adm-1", Role: directory.RoleAdmin}
)

func TestAttendanceService_CheckIn_Success(t *testing.T) {
	env := newTestEnv(workday(9, 0))

	resp, err := env.svc.CheckIn(context.Background(), employee, "10.0.0.5")

	require.NoError(t, err)
	assert.Equal(t, "09:00:00", resp.CheckInTime)
	assert.Equal(t, attendance.StatusPresent, resp.Status)

	rec := env.repo.get(employee.UserID, workday(0, 0))
	require.NotNil(t, rec)
	require.NotNil(t, rec.CheckIn)
	assert.Equal(t, workday(9, 0), *rec.CheckIn)
	require.NotNil(t, rec.IPAddress)
	assert.Equal(t, "10.0.0.5", *rec.IPAddress)

	assert.Equal(t, []string{audit.ActionCheckIn}, env.audit.actions())
}

func TestAttendanceService_CheckIn_Twice(t *testing.T) {
	env := newTestEnv(workday(9, 0))
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, employee, "")
	require.NoError(t, err)

	env.advanceTo(workday(9, 30))
	_, err = env.svc.CheckIn(ctx, employee, "")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Equal(t, 1, env.repo.count())
}

func TestAttendanceService_CheckIn_OutsideWindow(t *testing.T) {
	env := newTestEnv(workday(7, 59))
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, employee, "")
	assert.ErrorIs(t, err, attendance.ErrCheckInTooEarly)

	env.advanceTo(workday(17, 1))
	_, err = env.svc.CheckIn(ctx, employee, "")
	assert.ErrorIs(t, err, attendance.ErrCheckInWindowClosed)
	assert.Equal(t, 0, env.repo.count())
}

func TestAttendanceService_CheckIn_AdminBypassesWindow(t *testing.T) {
	env := newTestEnv(workday(6, 30))

	resp, err := env.svc.CheckIn(context.Background(), admin, "")

	require.NoError(t, err)
	assert.Equal(t, "06:30:00", resp.CheckInTime)
}

func TestAttendanceService_CheckIn_WeeklyOff(t *testing.T) {
	env := newTestEnv(workday(9, 0))
	env.resolver.setWeekend(workday(0, 0))

	_, err := env.svc.CheckIn(context.Background(), employee, "")
	assert.ErrorIs(t, err, attendance.ErrWeeklyOff)

	// Elevated roles bypass the window but not the calendar gate.
	_, err = env.svc.CheckIn(context.Background(), admin, "")
	assert.ErrorIs(t, err, attendance.ErrWeeklyOff)
}

func TestAttendanceService_CheckIn_Holiday(t *testing.T) {
	env := newTestEnv(workday(9, 0))
	env.resolver.setHoliday(workday(0, 0), "Holi")

	_, err := env.svc.CheckIn(context.Background(), employee, "")
	assert.ErrorIs(t, err, attendance.ErrHolidayToday)

	var holidayErr *attendance.HolidayError
	require.ErrorAs(t, err, &holidayErr)
	assert.Equal(t, "Holi", holidayErr.Name)
}

func TestAttendanceService_CheckOut_FullDay(t *testing.T) {
	env := newTestEnv(workday(9, 0))
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, employee, "")
	require.NoError(t, err)

	env.advanceTo(workday(18, 30))
	resp, err := env.svc.CheckOut(ctx, employee)

	require.NoError(t, err)
	assert.Equal(t, "18:30:00", resp.CheckOutTime)
	assert.Equal(t, 9.5, resp.WorkHours)
	assert.Equal(t, 1.5, resp.OvertimeHours)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
}

func TestAttendanceService_CheckOut_HalfDay(t *testing.T) {
	env := newTestEnv(workday(9, 0))
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, employee, "")
	require.NoError(t, err)

	env.advanceTo(workday(13, 0))
	resp, err := env.svc.CheckOut(ctx, employee)

	require.NoError(t, err)
	assert.Equal(t, 4.0, resp.WorkHours)
	assert.Equal(t, 0.0, resp.OvertimeHours)
	assert.Equal(t, attendance.StatusHalfDay, resp.Status)
}

func TestAttendanceService_CheckOut_WithoutCheckIn(t *testing.T) {
	env := newTestEnv(workday(10, 0))

	_, err := env.svc.CheckOut(context.Background(), employee)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestAttendanceService_CheckOut_Twice(t *testing.T) {
	env := newTestEnv(workday(9, 0))
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, employee, "")
	require.NoError(t, err)

	env.advanceTo(workday(17, 0))
	_, err = env.svc.CheckOut(ctx, employee)
	require.NoError(t, err)

	_, err = env.svc.CheckOut(ctx, employee)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendanceService_AdminCheckOut_KeepsStatus(t *testing.T) {
	env := newTestEnv(workday(9, 0))
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, employee, "")
	require.NoError(t, err)

	rec := env.repo.get(employee.UserID, workday(0, 0))
	require.NotNil(t, rec)

	// Three hours in: a regular checkout would derive Half Day, the admin
	// variant leaves the provisional Present untouched.
	env.advanceTo(workday(12, 0))
	resp, err := env.svc.AdminCheckOut(ctx, admin, rec.ID)

	require.NoError(t, err)
	assert.Equal(t, 3.0, resp.WorkHours)

	after := env.repo.get(employee.UserID, workday(0, 0))
	assert.Equal(t, attendance.StatusPresent, after.Status)
	assert.Nil(t, after.OvertimeHours)
	require.NotNil(t, after.CheckOut)
}

func TestAttendanceService_AdminCheckOut_UnknownRecord(t *testing.T) {
	env := newTestEnv(workday(12, 0))

	_, err := env.svc.AdminCheckOut(context.Background(), admin, "no-such-id")
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestAttendanceService_Mark_Upsert(t *testing.T) {
	env := newTestEnv(workday(10, 0))
	remarks := "Sick leave approved"

	err := env.svc.Mark(context.Background(), admin, attendance.MarkRequest{
		EmployeeID: employee.UserID,
		Date:       "2025-03-03",
		Status:     attendance.StatusOnLeave,
		Remarks:    &remarks,
	})

	require.NoError(t, err)
	rec := env.repo.get(employee.UserID, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusOnLeave, rec.Status)
	require.NotNil(t, rec.Remarks)
	assert.Equal(t, remarks, *rec.Remarks)
	assert.Equal(t, []string{audit.ActionMark}, env.audit.actions())
}

func TestAttendanceService_Mark_InvalidStatus(t *testing.T) {
	env := newTestEnv(workday(10, 0))

	err := env.svc.Mark(context.Background(), admin, attendance.MarkRequest{
		EmployeeID: employee.UserID,
		Date:       "2025-03-03",
		Status:     "Vacationing",
	})

	assert.Error(t, err)
	assert.Equal(t, 0, env.repo.count())
}

func TestAttendanceService_GetRecord_SynthesizesDefaults(t *testing.T) {
	env := newTestEnv(workday(10, 0))
	ctx := context.Background()

	pastWorkday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	resp, err := env.svc.GetRecord(ctx, employee.UserID, pastWorkday)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, resp.Status)

	resp, err = env.svc.GetRecord(ctx, employee.UserID, workday(0, 0))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPending, resp.Status)

	sunday := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	env.resolver.setWeekend(sunday)
	resp, err = env.svc.GetRecord(ctx, employee.UserID, sunday)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusWeekend, resp.Status)

	// Synthesized reads never create rows.
	assert.Equal(t, 0, env.repo.count())
}

func TestAttendanceService_Today(t *testing.T) {
	env := newTestEnv(workday(9, 0))
	ctx := context.Background()

	resp, err := env.svc.Today(ctx, employee)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04", resp.Date)
	assert.Nil(t, resp.Attendance)

	_, err = env.svc.CheckIn(ctx, employee, "")
	require.NoError(t, err)

	resp, err = env.svc.Today(ctx, employee)
	require.NoError(t, err)
	require.NotNil(t, resp.Attendance)
	assert.Equal(t, attendance.StatusPresent, resp.Attendance.Status)
}

func TestAttendanceService_MyAttendance(t *testing.T) {
	env := newTestEnv(workday(10, 0))
	ctx := context.Background()

	wh := 8.0
	present := attendance.StatusPresent
	onLeave := attendance.StatusOnLeave
	require.NoError(t, env.repo.Upsert(ctx, employee.UserID,
		time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		attendance.UpdateFields{Status: &present, WorkHours: &wh}))
	require.NoError(t, env.repo.Upsert(ctx, employee.UserID,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		attendance.UpdateFields{Status: &onLeave}))

	resp, err := env.svc.MyAttendance(ctx, employee, attendance.MyAttendanceFilter{Month: 3, Year: 2025})

	require.NoError(t, err)
	assert.Len(t, resp.Attendance, 2)
	assert.Equal(t, 1, resp.Summary.Present)
	assert.Equal(t, 1, resp.Summary.OnLeave)
	assert.Equal(t, 8.0, resp.Summary.TotalHours)
}

func TestAttendanceService_List_PureRead(t *testing.T) {
	env := newTestEnv(workday(10, 0))
	env.repo.roster = []string{"emp-1", "emp-2"}
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, employee, "")
	require.NoError(t, err)
	countBefore := env.repo.count()

	resp, err := env.svc.List(ctx, attendance.ListFilter{Date: "2025-03-03"})

	require.NoError(t, err)
	assert.Len(t, resp.Attendance, 2)
	for _, row := range resp.Attendance {
		assert.Equal(t, attendance.StatusAbsent, row.Status)
	}
	// Listing a past date with no rows writes nothing.
	assert.Equal(t, countBefore, env.repo.count())
}

func TestAttendanceService_List_TodayDefaultsPending(t *testing.T) {
	env := newTestEnv(workday(10, 0))
	env.repo.roster = []string{"emp-1", "emp-2"}
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, employee, "")
	require.NoError(t, err)

	resp, err := env.svc.List(ctx, attendance.ListFilter{})

	require.NoError(t, err)
	require.Len(t, resp.Attendance, 2)
	statuses := map[string]attendance.Status{}
	for _, row := range resp.Attendance {
		statuses[row.EmployeeID] = row.Status
	}
	assert.Equal(t, attendance.StatusPresent, statuses["emp-1"])
	assert.Equal(t, attendance.StatusPending, statuses["emp-2"])
}
