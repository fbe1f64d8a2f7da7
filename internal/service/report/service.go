package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/config"
	"github.com/ekaramchari/hr-backend-go/internal/domain/directory"
	"github.com/ekaramchari/hr-backend-go/internal/domain/report"
)

type reportService struct {
	repo          report.Repository
	directoryRepo directory.Repository
	policy        config.AttendanceConfig
	logger        *slog.Logger

	now func() time.Time
}

func NewReportService(
	repo report.Repository,
	directoryRepo directory.Repository,
	policy config.AttendanceConfig,
	logger *slog.Logger,
	now func() time.Time,
) report.Service {
	return &reportService{
		repo:          repo,
		directoryRepo: directoryRepo,
		policy:        policy,
		logger:        logger,
		now:           now,
	}
}

// Report implements report.Service.
func (s *reportService) Report(ctx context.Context, filter report.ReportFilter) (report.ReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.ReportResponse{}, err
	}

	start, _ := time.ParseInLocation("2006-01-02", filter.StartDate, s.policy.Timezone)
	end, _ := time.ParseInLocation("2006-01-02", filter.EndDate, s.policy.Timezone)

	rows, err := s.repo.EmployeeReport(ctx, start, end, filter.DepartmentID)
	if err != nil {
		return report.ReportResponse{}, err
	}

	return report.ReportResponse{
		Report: rows,
		Period: report.Period{StartDate: filter.StartDate, EndDate: filter.EndDate},
	}, nil
}

// Stats implements report.Service. The trend covers the last seven days.
func (s *reportService) Stats(ctx context.Context) (report.StatsResponse, error) {
	now := s.now().In(s.policy.Timezone)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.policy.Timezone)

	trend, err := s.repo.WeeklyTrend(ctx, today.AddDate(0, 0, -7))
	if err != nil {
		return report.StatsResponse{}, err
	}

	byDept, err := s.repo.DepartmentWise(ctx, today)
	if err != nil {
		return report.StatsResponse{}, err
	}

	return report.StatsResponse{WeeklyTrend: trend, ByDepartment: byDept}, nil
}

// Summary implements report.Service. Absent is the headcount remainder, so
// unmarked employees count as absent until the day is finalized.
func (s *reportService) Summary(ctx context.Context) (report.Summary, error) {
	now := s.now().In(s.policy.Timezone)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.policy.Timezone)

	total, err := s.directoryRepo.CountActiveEligible(ctx)
	if err != nil {
		return report.Summary{}, err
	}

	present, onLeave, err := s.repo.DailyCounts(ctx, today)
	if err != nil {
		return report.Summary{}, err
	}

	absent := total - present - onLeave
	if absent < 0 {
		absent = 0
	}

	return report.Summary{
		TotalEmployees: total,
		PresentToday:   present,
		AbsentToday:    absent,
		OnLeaveToday:   onLeave,
		Date:           today.Format("2006-01-02"),
	}, nil
}

// ExportReport implements report.Service.
func (s *reportService) ExportReport(ctx context.Context, filter report.ReportFilter) ([]byte, string, error) {
	resp, err := s.Report(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	data, err := renderXLSX(resp)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render report: %w", err)
	}

	filename := fmt.Sprintf("attendance_report_%s_%s.xlsx", resp.Period.StartDate, resp.Period.EndDate)
	return data, filename, nil
}
