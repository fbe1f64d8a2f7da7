package http

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/domain/attendance"
	"github.com/ekaramchari/hr-backend-go/internal/handler/http/middleware"
	"github.com/ekaramchari/hr-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	AdminCheckOut(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	MyAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	FinalizeDay(w http.ResponseWriter, r *http.Request)
	FinalizePending(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
	location          *time.Location
}

func NewAttendanceHandler(attendanceService attendance.Service, location *time.Location) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		location:          location,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), actor, clientIP(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", result)
}

// AdminCheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) AdminCheckOut(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	recordID := chi.URLParam(r, "id")
	result, err := h.attendanceService.AdminCheckOut(r.Context(), actor, recordID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee checked out", result)
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.attendanceService.Mark(r.Context(), actor, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked", nil)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	date := time.Now().In(h.location)
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, h.location)
		if err != nil {
			response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
			return
		}
		date = parsed
	}

	result, err := h.attendanceService.GetRecord(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.attendanceService.Today(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyAttendance(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var filter attendance.MyAttendanceFilter
	filter.Month, _ = strconv.Atoi(r.URL.Query().Get("month"))
	filter.Year, _ = strconv.Atoi(r.URL.Query().Get("year"))

	result, err := h.attendanceService.MyAttendance(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler. Requests for a past date trigger the
// finalization sweep first, so the listing shows settled statuses instead of
// synthesized ones. The sweep is idempotent; a failure degrades to the
// unsettled view.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.ListFilter{
		Date: r.URL.Query().Get("date"),
	}
	if v := r.URL.Query().Get("department"); v != "" {
		filter.DepartmentID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		s := attendance.Status(v)
		filter.Status = &s
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	if filter.Date != "" {
		if date, err := time.ParseInLocation("2006-01-02", filter.Date, h.location); err == nil {
			now := time.Now().In(h.location)
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.location)
			if date.Before(today) {
				actor, err := middleware.ActorFromContext(r.Context())
				if err != nil {
					response.Unauthorized(w, err.Error())
					return
				}
				if _, err := h.attendanceService.FinalizeDay(r.Context(), &actor, date); err != nil {
					slog.Warn("pre-list finalization failed", "date", filter.Date, "error", err)
				}
			}
		}
	}

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// FinalizeDay implements AttendanceHandler.
func (h *attendanceHandlerImpl) FinalizeDay(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.FinalizeDay(r.Context(), &actor, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day finalized", result)
}

// FinalizePending implements AttendanceHandler.
func (h *attendanceHandlerImpl) FinalizePending(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.FinalizePending(r.Context(), actor, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pending check-ins finalized", result)
}

// dateParam reads the optional date query parameter, defaulting to today.
func (h *attendanceHandlerImpl) dateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	v := r.URL.Query().Get("date")
	if v == "" {
		return time.Now().In(h.location), true
	}
	date, err := time.ParseInLocation("2006-01-02", v, h.location)
	if err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return time.Time{}, false
	}
	return date, true
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx > 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
