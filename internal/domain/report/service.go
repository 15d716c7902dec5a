package report

import "context"

// ReportService builds the four dashboard reports. Each call re-derives the
// aggregate from the then-current record set; nothing is cached between calls.
type ReportService interface {
	GeneratePayrollReport(ctx context.Context, req ReportRequest) (PayrollReport, error)
	GenerateAttendanceSummary(ctx context.Context, req ReportRequest) (AttendanceSummary, error)
	GenerateSiteAnalysisReport(ctx context.Context, req ReportRequest) (SiteAnalysisReport, error)
	GenerateWorkerPerformanceReport(ctx context.Context, req ReportRequest) (WorkerPerformanceReport, error)
}
