package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/config"
	"github.com/ekaramchari/hr-backend-go/internal/domain/attendance"
	"github.com/ekaramchari/hr-backend-go/internal/domain/directory"
	"github.com/ekaramchari/hr-backend-go/internal/domain/holiday"
	"github.com/ekaramchari/hr-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

// stubAttendanceService records which operations ran, in order.
type stubAttendanceService struct {
	calls []string

	listResponse attendance.ListResponse
}

func (s *stubAttendanceService) CheckIn(ctx context.Context, actor directory.Actor, ip string) (attendance.CheckInResponse, error) {
	s.calls = append(s.calls, "CheckIn")
	return attendance.CheckInResponse{CheckInTime: "09:00:00", Status: attendance.StatusPresent}, nil
}

func (s *stubAttendanceService) CheckOut(ctx context.Context, actor directory.Actor) (attendance.CheckOutResponse, error) {
	s.calls = append(s.calls, "CheckOut")
	return attendance.CheckOutResponse{}, nil
}

func (s *stubAttendanceService) AdminCheckOut(ctx context.Context, actor directory.Actor, recordID string) (attendance.AdminCheckOutResponse, error) {
	s.calls = append(s.calls, "AdminCheckOut")
	return attendance.AdminCheckOutResponse{}, nil
}

func (s *stubAttendanceService) Mark(ctx context.Context, actor directory.Actor, req attendance.MarkRequest) error {
	s.calls = append(s.calls, "Mark")
	return nil
}

func (s *stubAttendanceService) GetRecord(ctx context.Context, employeeID string, date time.Time) (attendance.RecordResponse, error) {
	s.calls = append(s.calls, "GetRecord")
	return attendance.RecordResponse{}, nil
}

func (s *stubAttendanceService) Today(ctx context.Context, actor directory.Actor) (attendance.TodayResponse, error) {
	s.calls = append(s.calls, "Today")
	return attendance.TodayResponse{}, nil
}

func (s *stubAttendanceService) MyAttendance(ctx context.Context, actor directory.Actor, filter attendance.MyAttendanceFilter) (attendance.MyAttendanceResponse, error) {
	s.calls = append(s.calls, "MyAttendance")
	return attendance.MyAttendanceResponse{}, nil
}

func (s *stubAttendanceService) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListResponse, error) {
	s.calls = append(s.calls, "List")
	return s.listResponse, nil
}

func (s *stubAttendanceService) FinalizeDay(ctx context.Context, actor *directory.Actor, date time.Time) (attendance.SweepResult, error) {
	s.calls = append(s.calls, "FinalizeDay")
	return attendance.SweepResult{Date: date.Format("2006-01-02")}, nil
}

func (s *stubAttendanceService) FinalizePending(ctx context.Context, actor directory.Actor, date time.Time) (attendance.FinalizeResult, error) {
	s.calls = append(s.calls, "FinalizePending")
	return attendance.FinalizeResult{}, nil
}

type stubHolidayRepo struct{}

func (stubHolidayRepo) GetActiveByDate(ctx context.Context, date time.Time) (holiday.Holiday, error) {
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (stubHolidayRepo) ListForYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	return nil, nil
}

func newHandlerTestRouter(t *testing.T, svc attendance.Service) (http.Handler, jwt.Service) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.Attendance.Timezone = time.UTC

	jwtService := jwt.NewJWTService(handlerTestSecret)
	attendanceHandler := NewAttendanceHandler(svc, time.UTC)
	holidayHandler := NewHolidayHandler(stubHolidayRepo{}, time.UTC)

	// Report routes are registered but never exercised here.
	reportHandler := NewReportHandler(nil)

	router := NewRouter(cfg, jwtService, attendanceHandler, holidayHandler, reportHandler)
	return router, jwtService
}

func accessToken(t *testing.T, jwtService jwt.Service, userID, role string) string {
	t.Helper()

	_, token, err := jwtService.JWTAuth().Encode(map[string]interface{}{
		"user_id": userID,
		"role":    role,
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	return token
}

func doRequest(router http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAttendanceHandler_CheckIn_RequiresToken(t *testing.T) {
	svc := &stubAttendanceService{}
	router, _ := newHandlerTestRouter(t, svc)

	rec := doRequest(router, http.MethodPost, "/api/v1/attendance/check-in", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, svc.calls)
}

func TestAttendanceHandler_CheckIn_Success(t *testing.T) {
	svc := &stubAttendanceService{}
	router, jwtService := newHandlerTestRouter(t, svc)
	token := accessToken(t, jwtService, "emp-1", directory.RoleEmployee)

	rec := doRequest(router, http.MethodPost, "/api/v1/attendance/check-in", token)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"CheckIn"}, svc.calls)
	assert.Contains(t, rec.Body.String(), "09:00:00")
}

func TestAttendanceHandler_AdminRoutes_ForbiddenForEmployee(t *testing.T) {
	svc := &stubAttendanceService{}
	router, jwtService := newHandlerTestRouter(t, svc)
	token := accessToken(t, jwtService, "emp-1", directory.RoleEmployee)

	rec := doRequest(router, http.MethodPost, "/api/v1/attendance/finalize", token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, svc.calls)
}

func TestAttendanceHandler_FinalizeDay_AdminAllowed(t *testing.T) {
	svc := &stubAttendanceService{}
	router, jwtService := newHandlerTestRouter(t, svc)
	token := accessToken(t, jwtService, "adm-1", directory.RoleAdmin)

	rec := doRequest(router, http.MethodPost, "/api/v1/attendance/finalize?date=2025-03-03", token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"FinalizeDay"}, svc.calls)
}

func TestAttendanceHandler_List_PastDateFinalizesFirst(t *testing.T) {
	svc := &stubAttendanceService{}
	router, jwtService := newHandlerTestRouter(t, svc)
	token := accessToken(t, jwtService, "adm-1", directory.RoleAdmin)

	rec := doRequest(router, http.MethodGet, "/api/v1/attendance/?date=2000-01-03", token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"FinalizeDay", "List"}, svc.calls)
}

func TestAttendanceHandler_List_TodayDoesNotFinalize(t *testing.T) {
	svc := &stubAttendanceService{}
	router, jwtService := newHandlerTestRouter(t, svc)
	token := accessToken(t, jwtService, "adm-1", directory.RoleAdmin)

	today := time.Now().UTC().Format("2006-01-02")
	rec := doRequest(router, http.MethodGet, "/api/v1/attendance/?date="+today, token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"List"}, svc.calls)
}

func TestAttendanceHandler_RejectsRefreshToken(t *testing.T) {
	svc := &stubAttendanceService{}
	router, jwtService := newHandlerTestRouter(t, svc)

	_, token, err := jwtService.JWTAuth().Encode(map[string]interface{}{
		"user_id": "emp-1",
		"role":    directory.RoleEmployee,
		"type":    "refresh",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	rec := doRequest(router, http.MethodPost, "/api/v1/attendance/check-in", token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, svc.calls)
}
