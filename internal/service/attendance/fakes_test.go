package attendance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/domain/attendance"
	"github.com/ekaramchari/hr-backend-go/internal/domain/calendar"
	"github.com/ekaramchari/hr-backend-go/internal/domain/directory"
)

// fakeAttendanceRepo is an in-memory attendance.Repository with the same
// conditional-write semantics as the SQL implementation.
type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]*attendance.Record
	nextID  int

	// roster is the set of employee IDs ListRoster synthesizes rows for.
	roster []string

	findErr error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Record)}
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Find(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	rec, ok := f.records[recordKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.ID == id {
			return *rec, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) ClaimCheckIn(ctx context.Context, employeeID string, date time.Time, checkIn time.Time, status attendance.Status, ip *string) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := recordKey(employeeID, date)
	rec, ok := f.records[key]
	if ok && rec.CheckIn != nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}
	if !ok {
		f.nextID++
		rec = &attendance.Record{
			ID:         fmt.Sprintf("rec-%d", f.nextID),
			EmployeeID: employeeID,
			Date:       date,
		}
		f.records[key] = rec
	}
	ci := checkIn
	rec.CheckIn = &ci
	rec.Status = status
	rec.IPAddress = ip
	return *rec, nil
}

func (f *fakeAttendanceRepo) CompleteCheckOut(ctx context.Context, id string, checkOut time.Time, workHours float64, overtime *float64, status *attendance.Status, remarks *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.ID != id {
			continue
		}
		if rec.CheckOut != nil {
			return attendance.ErrAlreadyCheckedOut
		}
		co := checkOut
		wh := workHours
		rec.CheckOut = &co
		rec.WorkHours = &wh
		if overtime != nil {
			ot := *overtime
			rec.OvertimeHours = &ot
		}
		if status != nil {
			rec.Status = *status
		}
		if remarks != nil {
			r := *remarks
			rec.Remarks = &r
		}
		return nil
	}
	return attendance.ErrAlreadyCheckedOut
}

func (f *fakeAttendanceRepo) MarkAbsent(ctx context.Context, employeeID string, date time.Time, remarks string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := recordKey(employeeID, date)
	if _, ok := f.records[key]; ok {
		return false, nil
	}
	f.nextID++
	r := remarks
	f.records[key] = &attendance.Record{
		ID:         fmt.Sprintf("rec-%d", f.nextID),
		EmployeeID: employeeID,
		Date:       date,
		Status:     attendance.StatusAbsent,
		Remarks:    &r,
	}
	return true, nil
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, employeeID string, date time.Time, fields attendance.UpdateFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := recordKey(employeeID, date)
	rec, ok := f.records[key]
	if !ok {
		f.nextID++
		rec = &attendance.Record{
			ID:         fmt.Sprintf("rec-%d", f.nextID),
			EmployeeID: employeeID,
			Date:       date,
			Status:     attendance.StatusPending,
		}
		f.records[key] = rec
	}
	if fields.CheckIn != nil {
		rec.CheckIn = fields.CheckIn
	}
	if fields.CheckOut != nil {
		rec.CheckOut = fields.CheckOut
	}
	if fields.WorkHours != nil {
		rec.WorkHours = fields.WorkHours
	}
	if fields.OvertimeHours != nil {
		rec.OvertimeHours = fields.OvertimeHours
	}
	if fields.Status != nil {
		rec.Status = *fields.Status
	}
	if fields.Remarks != nil {
		rec.Remarks = fields.Remarks
	}
	if fields.IPAddress != nil {
		rec.IPAddress = fields.IPAddress
	}
	return nil
}

func (f *fakeAttendanceRepo) ListOpenForDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.Date.Equal(date) && rec.CheckIn != nil && rec.CheckOut == nil {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListRoster(ctx context.Context, date time.Time, filter attendance.ListFilter, defaultStatus attendance.Status) ([]attendance.Record, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Record
	for _, empID := range f.roster {
		if rec, ok := f.records[recordKey(empID, date)]; ok {
			out = append(out, *rec)
			continue
		}
		out = append(out, attendance.Record{
			EmployeeID: empID,
			Date:       date,
			Status:     defaultStatus,
		})
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ListForEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && int(rec.Date.Month()) == month && rec.Date.Year() == year {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) MonthlySummary(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var s attendance.MonthlySummary
	for _, rec := range f.records {
		if rec.EmployeeID != employeeID || int(rec.Date.Month()) != month || rec.Date.Year() != year {
			continue
		}
		switch rec.Status {
		case attendance.StatusPresent:
			s.Present++
		case attendance.StatusAbsent:
			s.Absent++
		case attendance.StatusHalfDay:
			s.HalfDay++
		case attendance.StatusOnLeave:
			s.OnLeave++
		}
		if rec.WorkHours != nil {
			s.TotalHours += *rec.WorkHours
		}
		if rec.OvertimeHours != nil {
			s.TotalOvertime += *rec.OvertimeHours
		}
	}
	return s, nil
}

// count returns how many rows the store holds.
func (f *fakeAttendanceRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

// get returns the stored row for the key, or nil.
func (f *fakeAttendanceRepo) get(employeeID string, date time.Time) *attendance.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[recordKey(employeeID, date)]
	if !ok {
		return nil
	}
	cp := *rec
	return &cp
}

type fakeDirectoryRepo struct {
	employees []directory.Employee
}

func (f *fakeDirectoryRepo) ListActiveEligible(ctx context.Context) ([]directory.Employee, error) {
	return f.employees, nil
}

func (f *fakeDirectoryRepo) GetByID(ctx context.Context, id string) (directory.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return directory.Employee{}, directory.ErrEmployeeNotFound
}

func (f *fakeDirectoryRepo) CountActiveEligible(ctx context.Context) (int, error) {
	return len(f.employees), nil
}

// fakeResolver classifies any date not explicitly configured as a workday.
type fakeResolver struct {
	days map[string]calendar.Day
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{days: make(map[string]calendar.Day)}
}

func (f *fakeResolver) Classify(ctx context.Context, date time.Time) (calendar.Day, error) {
	if day, ok := f.days[date.Format("2006-01-02")]; ok {
		day.Date = date
		return day, nil
	}
	return calendar.Day{Date: date, IsWorkday: true}, nil
}

func (f *fakeResolver) setWeekend(date time.Time) {
	f.days[date.Format("2006-01-02")] = calendar.Day{IsWeekend: true}
}

func (f *fakeResolver) setHoliday(date time.Time, name string) {
	f.days[date.Format("2006-01-02")] = calendar.Day{IsHoliday: true, HolidayName: &name}
}

type auditEntry struct {
	actor       *directory.Actor
	action      string
	description string
}

type fakeAuditRecorder struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (f *fakeAuditRecorder) Record(ctx context.Context, actor *directory.Actor, action, module, description string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, auditEntry{actor: actor, action: action, description: description})
	return nil
}

func (f *fakeAuditRecorder) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.action)
	}
	return out
}
