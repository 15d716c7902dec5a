package http

import (
	"fmt"
	"net/http"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/report"
	"github.com/geoattendance/geoattendance-backend-go/internal/handler/http/response"
	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/export"
)

type ReportHandler interface {
	Payroll(w http.ResponseWriter, r *http.Request)
	AttendanceSummary(w http.ResponseWriter, r *http.Request)
	SiteAnalysis(w http.ResponseWriter, r *http.Request)
	WorkerPerformance(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func requestFromQuery(r *http.Request) report.ReportRequest {
	return report.ReportRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
}

// writeExport renders the flattened table in the requested download format.
// The json format is handled by the callers before reaching here.
func writeExport(w http.ResponseWriter, format, baseName string, table export.Table) {
	filename := fmt.Sprintf("%s_%s", baseName, table.Period)

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, filename))
		if err := export.WriteCSV(w, table); err != nil {
			response.HandleError(w, err)
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, filename))
		if err := export.WriteExcel(w, table); err != nil {
			response.HandleError(w, err)
		}
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, filename))
		if err := export.WritePDF(w, table); err != nil {
			response.HandleError(w, err)
		}
	default:
		response.HandleError(w, report.ErrUnsupportedFormat)
	}
}

// Payroll implements ReportHandler
func (h *reportHandlerImpl) Payroll(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GeneratePayrollReport(r.Context(), requestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || format == "json" {
		response.Success(w, result)
		return
	}

	writeExport(w, format, "payroll", export.PayrollTable(result))
}

// AttendanceSummary implements ReportHandler
func (h *reportHandlerImpl) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GenerateAttendanceSummary(r.Context(), requestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || format == "json" {
		response.Success(w, result)
		return
	}

	writeExport(w, format, "attendance_summary", export.SummaryTable(result))
}

// SiteAnalysis implements ReportHandler
func (h *reportHandlerImpl) SiteAnalysis(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GenerateSiteAnalysisReport(r.Context(), requestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || format == "json" {
		response.Success(w, result)
		return
	}

	writeExport(w, format, "site_analysis", export.SiteAnalysisTable(result))
}

// WorkerPerformance implements ReportHandler
func (h *reportHandlerImpl) WorkerPerformance(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GenerateWorkerPerformanceReport(r.Context(), requestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || format == "json" {
		response.Success(w, result)
		return
	}

	writeExport(w, format, "worker_performance", export.WorkerPerformanceTable(result))
}
