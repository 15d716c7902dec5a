package export

import (
	"fmt"
	"sort"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/report"
)

// Table is the format-independent shape every report is flattened into
// before rendering. The CSV, Excel and PDF writers all consume it, so the
// three downloads of one report always show the same cells.
type Table struct {
	Title     string
	Period    string
	Generated string
	Header    []string
	Rows      [][]string
	Totals    []string
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func hours(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func period(start, end string) string {
	return fmt.Sprintf("%s to %s", start, end)
}

// PayrollTable flattens a payroll report. The totals row is recomputed from
// the displayed rows so the rendered sheet always adds up.
func PayrollTable(r report.PayrollReport) Table {
	t := Table{
		Title:     "Payroll Report",
		Period:    period(r.PeriodStart, r.PeriodEnd),
		Generated: r.GeneratedAt,
		Header:    []string{"Name", "Email", "Pay Rate", "Days Worked", "Total Hours", "Avg Hours/Day", "Total Earnings"},
	}

	var totalHours, totalEarnings float64
	for _, row := range r.Rows {
		t.Rows = append(t.Rows, []string{
			row.Name,
			row.Email,
			money(row.PayRate),
			fmt.Sprintf("%d", row.DaysWorked),
			hours(row.TotalHours),
			hours(row.AvgHoursPerDay),
			money(row.TotalEarnings),
		})
		totalHours += row.TotalHours
		totalEarnings += row.TotalEarnings
	}

	t.Totals = []string{"Total", "", "", "", hours(totalHours), "", money(totalEarnings)}
	return t
}

// SummaryTable flattens the attendance summary into a per-day table with the
// window totals underneath. Days are sorted ascending.
func SummaryTable(r report.AttendanceSummary) Table {
	t := Table{
		Title:     "Attendance Summary",
		Period:    period(r.PeriodStart, r.PeriodEnd),
		Generated: r.GeneratedAt,
		Header:    []string{"Date", "Workers", "Records", "Hours", "Earnings"},
	}

	dates := make([]string, 0, len(r.DailyStats))
	for date := range r.DailyStats {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		stat := r.DailyStats[date]
		t.Rows = append(t.Rows, []string{
			date,
			fmt.Sprintf("%d", stat.WorkerCount),
			fmt.Sprintf("%d", stat.RecordCount),
			hours(stat.Hours),
			money(stat.Earnings),
		})
	}

	t.Totals = []string{"Total", fmt.Sprintf("%d", r.UniqueWorkers), fmt.Sprintf("%d", r.TotalRecords), hours(r.TotalHours), money(r.TotalEarnings)}
	return t
}

// SiteAnalysisTable flattens a site analysis report.
func SiteAnalysisTable(r report.SiteAnalysisReport) Table {
	t := Table{
		Title:     "Site Analysis Report",
		Period:    period(r.PeriodStart, r.PeriodEnd),
		Generated: r.GeneratedAt,
		Header:    []string{"Site", "Address", "Workers", "Days", "Total Hours", "Avg Hours/Day", "Utilization", "Peak Day", "Total Earnings"},
	}

	var totalHours, totalEarnings float64
	for _, row := range r.Rows {
		peak := ""
		if row.PeakDay.Date != "" {
			peak = fmt.Sprintf("%s (%d)", row.PeakDay.Date, row.PeakDay.Workers)
		}
		t.Rows = append(t.Rows, []string{
			row.SiteName,
			row.Address,
			fmt.Sprintf("%d", row.WorkerCount),
			fmt.Sprintf("%d", row.DistinctDays),
			hours(row.TotalHours),
			hours(row.AvgHoursPerDay),
			percent(row.Utilization),
			peak,
			money(row.TotalEarnings),
		})
		totalHours += row.TotalHours
		totalEarnings += row.TotalEarnings
	}

	t.Totals = []string{"Total", "", "", "", hours(totalHours), "", "", "", money(totalEarnings)}
	return t
}

// WorkerPerformanceTable flattens a worker performance report.
func WorkerPerformanceTable(r report.WorkerPerformanceReport) Table {
	t := Table{
		Title:     "Worker Performance Report",
		Period:    period(r.PeriodStart, r.PeriodEnd),
		Generated: r.GeneratedAt,
		Header:    []string{"Name", "Email", "Site", "Days", "Total Hours", "Avg Hours/Day", "Punctuality", "Productivity", "Last Worked", "Total Earnings"},
	}

	var totalHours, totalEarnings float64
	for _, row := range r.Rows {
		t.Rows = append(t.Rows, []string{
			row.Name,
			row.Email,
			row.SiteName,
			fmt.Sprintf("%d", row.DaysWorked),
			hours(row.TotalHours),
			hours(row.AvgHoursPerDay),
			percent(row.PunctualityRate),
			percent(row.Productivity),
			row.LastWorked,
			money(row.TotalEarnings),
		})
		totalHours += row.TotalHours
		totalEarnings += row.TotalEarnings
	}

	t.Totals = []string{"Total", "", "", "", hours(totalHours), "", "", "", "", money(totalEarnings)}
	return t
}
