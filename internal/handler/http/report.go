package http

import (
	"net/http"

	"github.com/ekaramchari/hr-backend-go/internal/domain/report"
	"github.com/ekaramchari/hr-backend-go/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler interface {
	Report(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func reportFilterFromQuery(r *http.Request) report.ReportFilter {
	filter := report.ReportFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if v := r.URL.Query().Get("department"); v != "" {
		filter.DepartmentID = &v
	}
	return filter
}

// Report implements ReportHandler.
func (h *reportHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Report(r.Context(), reportFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Stats implements ReportHandler.
func (h *reportHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements ReportHandler.
func (h *reportHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Summary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements ReportHandler.
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.reportService.ExportReport(r.Context(), reportFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, filename, xlsxContentType, data)
}
