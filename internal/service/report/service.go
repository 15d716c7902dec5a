package report

import (
	"context"
	"fmt"
	"time"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/attendance"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/report"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/site"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/worker"
)

type reportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	workerRepo     worker.WorkerRepository
	siteRepo       site.SiteRepository
	cutoffHour     int
}

// NewReportService wires the repositories behind the report generators.
// cutoffHour is the local clock-in hour still counted as punctual.
func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	workerRepo worker.WorkerRepository,
	siteRepo site.SiteRepository,
	cutoffHour int,
) report.ReportService {
	return &reportServiceImpl{
		attendanceRepo: attendanceRepo,
		workerRepo:     workerRepo,
		siteRepo:       siteRepo,
		cutoffHour:     cutoffHour,
	}
}

// fetchRecords materializes the record set for the request window.
func (s *reportServiceImpl) fetchRecords(ctx context.Context, req report.ReportRequest) ([]attendance.Record, error) {
	start, end := req.Period()
	records, err := s.attendanceRepo.List(ctx, attendance.Filter{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	return records, nil
}

// workerLookup indexes every worker by email. Records belonging to workers
// removed since then fall back to the unknown-worker row.
func (s *reportServiceImpl) workerLookup(ctx context.Context) (map[string]worker.Worker, error) {
	workers, err := s.workerRepo.List(ctx, worker.Filter{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	lookup := make(map[string]worker.Worker, len(workers))
	for _, wk := range workers {
		lookup[wk.Email] = wk
	}
	return lookup, nil
}

func (s *reportServiceImpl) siteLookup(ctx context.Context) (map[string]site.Site, error) {
	sites, err := s.siteRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	lookup := make(map[string]site.Site, len(sites))
	for _, st := range sites {
		lookup[st.ID] = st
	}
	return lookup, nil
}

// GeneratePayrollReport implements report.ReportService.
func (s *reportServiceImpl) GeneratePayrollReport(ctx context.Context, req report.ReportRequest) (report.PayrollReport, error) {
	if err := req.Validate(); err != nil {
		return report.PayrollReport{}, err
	}

	records, err := s.fetchRecords(ctx, req)
	if err != nil {
		return report.PayrollReport{}, err
	}

	workers, err := s.workerLookup(ctx)
	if err != nil {
		return report.PayrollReport{}, err
	}

	rows := ComputePayroll(records, workers)

	result := report.PayrollReport{
		PeriodStart:  req.StartDate,
		PeriodEnd:    req.EndDate,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		TotalWorkers: len(rows),
		Rows:         rows,
	}
	for _, row := range rows {
		result.TotalHours += row.TotalHours
		result.TotalEarnings += row.TotalEarnings
	}

	return result, nil
}

// GenerateAttendanceSummary implements report.ReportService.
func (s *reportServiceImpl) GenerateAttendanceSummary(ctx context.Context, req report.ReportRequest) (report.AttendanceSummary, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceSummary{}, err
	}

	records, err := s.fetchRecords(ctx, req)
	if err != nil {
		return report.AttendanceSummary{}, err
	}

	summary := ComputeAttendanceSummary(records)
	summary.PeriodStart = req.StartDate
	summary.PeriodEnd = req.EndDate
	summary.GeneratedAt = time.Now().UTC().Format(time.RFC3339)

	return summary, nil
}

// GenerateSiteAnalysisReport implements report.ReportService.
func (s *reportServiceImpl) GenerateSiteAnalysisReport(ctx context.Context, req report.ReportRequest) (report.SiteAnalysisReport, error) {
	if err := req.Validate(); err != nil {
		return report.SiteAnalysisReport{}, err
	}

	records, err := s.fetchRecords(ctx, req)
	if err != nil {
		return report.SiteAnalysisReport{}, err
	}

	sites, err := s.siteLookup(ctx)
	if err != nil {
		return report.SiteAnalysisReport{}, err
	}

	return report.SiteAnalysisReport{
		PeriodStart: req.StartDate,
		PeriodEnd:   req.EndDate,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Rows:        ComputeSiteAnalysis(records, sites),
	}, nil
}

// GenerateWorkerPerformanceReport implements report.ReportService.
func (s *reportServiceImpl) GenerateWorkerPerformanceReport(ctx context.Context, req report.ReportRequest) (report.WorkerPerformanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.WorkerPerformanceReport{}, err
	}

	records, err := s.fetchRecords(ctx, req)
	if err != nil {
		return report.WorkerPerformanceReport{}, err
	}

	workers, err := s.workerLookup(ctx)
	if err != nil {
		return report.WorkerPerformanceReport{}, err
	}

	return report.WorkerPerformanceReport{
		PeriodStart: req.StartDate,
		PeriodEnd:   req.EndDate,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Rows:        ComputeWorkerPerformance(records, workers, s.cutoffHour),
	}, nil
}
