package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/report"
)

type stubReportService struct {
	payroll report.PayrollReport
	err     error
}

func (s *stubReportService) GeneratePayrollReport(ctx context.Context, req report.ReportRequest) (report.PayrollReport, error) {
	if s.err != nil {
		return report.PayrollReport{}, s.err
	}
	if err := req.Validate(); err != nil {
		return report.PayrollReport{}, err
	}
	return s.payroll, nil
}

func (s *stubReportService) GenerateAttendanceSummary(ctx context.Context, req report.ReportRequest) (report.AttendanceSummary, error) {
	return report.AttendanceSummary{}, s.err
}

func (s *stubReportService) GenerateSiteAnalysisReport(ctx context.Context, req report.ReportRequest) (report.SiteAnalysisReport, error) {
	return report.SiteAnalysisReport{}, s.err
}

func (s *stubReportService) GenerateWorkerPerformanceReport(ctx context.Context, req report.ReportRequest) (report.WorkerPerformanceReport, error) {
	return report.WorkerPerformanceReport{}, s.err
}

func payrollFixture() report.PayrollReport {
	return report.PayrollReport{
		PeriodStart:   "2026-03-01",
		PeriodEnd:     "2026-03-31",
		GeneratedAt:   "2026-04-01T08:00:00Z",
		TotalHours:    8,
		TotalEarnings: 80,
		TotalWorkers:  1,
		Rows: []report.PayrollRow{
			{Email: "ana@example.com", Name: "Ana Silva", PayRate: 10, DaysWorked: 1, TotalHours: 8, AvgHoursPerDay: 8, TotalEarnings: 80},
		},
	}
}

func TestReportHandlerPayroll(t *testing.T) {
	handler := NewReportHandler(&stubReportService{payroll: payrollFixture()})

	t.Run("json by default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/reports/payroll?start_date=2026-03-01&end_date=2026-03-31", nil)
		rec := httptest.NewRecorder()

		handler.Payroll(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

		var body struct {
			Success bool                 `json:"success"`
			Data    report.PayrollReport `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.InDelta(t, 80, body.Data.TotalEarnings, 1e-9)
	})

	t.Run("csv download", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/reports/payroll?start_date=2026-03-01&end_date=2026-03-31&format=csv", nil)
		rec := httptest.NewRecorder()

		handler.Payroll(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
		assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")

		lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
		require.GreaterOrEqual(t, len(lines), 3)
		assert.Contains(t, lines[1], "Ana Silva")
		assert.Contains(t, lines[len(lines)-1], "Total")
	})

	t.Run("xlsx download", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/reports/payroll?start_date=2026-03-01&end_date=2026-03-31&format=xlsx", nil)
		rec := httptest.NewRecorder()

		handler.Payroll(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
		assert.Equal(t, []byte{'P', 'K'}, rec.Body.Bytes()[:2])
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/reports/payroll?start_date=2026-03-01&end_date=2026-03-31&format=docx", nil)
		rec := httptest.NewRecorder()

		handler.Payroll(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing dates fail validation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/reports/payroll", nil)
		rec := httptest.NewRecorder()

		handler.Payroll(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
