package report

import (
	"context"
	"time"
)

// Repository provides the read-only aggregates behind the reporting views.
// All queries are pure projections over the attendance store.
type Repository interface {
	// EmployeeReport groups stored records per employee over [start, end].
	EmployeeReport(ctx context.Context, start, end time.Time, departmentID *string) ([]EmployeeReportRow, error)

	// WeeklyTrend returns per-date present/absent counts since the date.
	WeeklyTrend(ctx context.Context, since time.Time) ([]TrendPoint, error)

	// DepartmentWise returns per-department present/absent counts for the date.
	DepartmentWise(ctx context.Context, date time.Time) ([]DepartmentCount, error)

	// DailyCounts returns how many employees are present (Present or Half
	// Day) and on leave for the date.
	DailyCounts(ctx context.Context, date time.Time) (present int, onLeave int, err error)
}

// Service exposes the reporting views.
type Service interface {
	Report(ctx context.Context, filter ReportFilter) (ReportResponse, error)
	Stats(ctx context.Context) (StatsResponse, error)
	Summary(ctx context.Context) (Summary, error)

	// ExportReport renders the range report as an XLSX workbook and returns
	// the file contents with a suggested filename.
	ExportReport(ctx context.Context, filter ReportFilter) ([]byte, string, error)
}
