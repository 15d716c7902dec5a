package report

import (
	"time"

	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/validator"
)

// ReportRequest is the shared date-window request for all four reports.
type ReportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *ReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	}

	if r.EndDate == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	}

	if r.StartDate != "" && r.EndDate != "" {
		startDate, okStart := validator.IsValidDate(r.StartDate)
		if !okStart {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}

		endDate, okEnd := validator.IsValidDate(r.EndDate)
		if !okEnd {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}

		if okStart && okEnd && startDate.After(endDate) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be after start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period converts the request bounds to timestamps spanning whole days.
func (r *ReportRequest) Period() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", r.StartDate)
	end, _ := time.Parse("2006-01-02", r.EndDate)
	end = end.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

// ========================================
// PAYROLL REPORT
// ========================================

type PayrollReport struct {
	PeriodStart   string  `json:"period_start"`
	PeriodEnd     string  `json:"period_end"`
	GeneratedAt   string  `json:"generated_at"`
	TotalHours    float64 `json:"total_hours"`
	TotalEarnings float64 `json:"total_earnings"`
	TotalWorkers  int     `json:"total_workers"`

	Rows []PayrollRow `json:"rows"`
}

type PayrollRow struct {
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	PayRate        float64 `json:"pay_rate"`
	DaysWorked     int     `json:"days_worked"`
	TotalHours     float64 `json:"total_hours"`
	TotalEarnings  float64 `json:"total_earnings"`
	AvgHoursPerDay float64 `json:"avg_hours_per_day"`
}

// ========================================
// ATTENDANCE SUMMARY
// ========================================

type AttendanceSummary struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`

	TotalRecords  int     `json:"total_records"`
	TotalHours    float64 `json:"total_hours"`
	TotalEarnings float64 `json:"total_earnings"`
	UniqueWorkers int     `json:"unique_workers"`

	DailyStats map[string]DailyStat `json:"daily_stats"`
	SiteStats  map[string]SiteStat  `json:"site_stats"`
}

type DailyStat struct {
	WorkerCount int     `json:"worker_count"`
	Hours       float64 `json:"hours"`
	Earnings    float64 `json:"earnings"`
	RecordCount int     `json:"record_count"`
}

type SiteStat struct {
	WorkerCount int     `json:"worker_count"`
	Hours       float64 `json:"hours"`
	Earnings    float64 `json:"earnings"`
	RecordCount int     `json:"record_count"`
	PeakDay     PeakDay `json:"peak_day"`
}

// PeakDay is the date with the most distinct workers at a site.
type PeakDay struct {
	Date    string `json:"date"`
	Workers int    `json:"workers"`
}

// ========================================
// SITE ANALYSIS
// ========================================

type SiteAnalysisReport struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`

	Rows []SiteAnalysisRow `json:"rows"`
}

type SiteAnalysisRow struct {
	SiteID         string  `json:"site_id"`
	SiteName       string  `json:"site_name"`
	Address        string  `json:"address"`
	WorkerCount    int     `json:"worker_count"`
	TotalHours     float64 `json:"total_hours"`
	TotalEarnings  float64 `json:"total_earnings"`
	RecordCount    int     `json:"record_count"`
	DistinctDays   int     `json:"distinct_days"`
	AvgHoursPerDay float64 `json:"avg_hours_per_day"`
	Utilization    float64 `json:"utilization"`
	PeakDay        PeakDay `json:"peak_day"`
}

// ========================================
// WORKER PERFORMANCE
// ========================================

type WorkerPerformanceReport struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`

	Rows []WorkerPerformanceRow `json:"rows"`
}

type WorkerPerformanceRow struct {
	Email           string  `json:"email"`
	Name            string  `json:"name"`
	SiteName        string  `json:"site_name"`
	DaysWorked      int     `json:"days_worked"`
	TotalHours      float64 `json:"total_hours"`
	TotalEarnings   float64 `json:"total_earnings"`
	AvgHoursPerDay  float64 `json:"avg_hours_per_day"`
	PunctualityRate float64 `json:"punctuality_rate"`
	Productivity    float64 `json:"productivity"`
	LastWorked      string  `json:"last_worked"`
}
