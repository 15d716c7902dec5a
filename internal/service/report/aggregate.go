package report

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/attendance"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/report"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/site"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/worker"
)

// The aggregation functions below are pure: they take the materialized
// record set plus lookup tables and return fresh values. Records without a
// clock-in are excluded from every aggregate; the exclusion is logged so
// data-quality problems in the capture pipeline stay visible.

const (
	unknownWorkerName = "Unknown Worker"
	unassignedSiteID  = "unassigned"
	unassignedSite    = "Unassigned"

	// Nominal workday used for productivity and site utilization.
	nominalWorkdayHours = 8
)

func validRecords(records []attendance.Record) []attendance.Record {
	valid := make([]attendance.Record, 0, len(records))
	for _, rec := range records {
		if !rec.HasClockIn() {
			slog.Warn("Skipping attendance record without clock-in", "record_id", rec.ID, "worker_email", rec.WorkerEmail)
			continue
		}
		valid = append(valid, rec)
	}
	return valid
}

// ComputePayroll groups records by worker and totals hours, earnings and
// distinct days worked. Workers missing from the lookup keep their records
// under a zero-rate "Unknown Worker" row. Rows are sorted by name,
// case-insensitive.
func ComputePayroll(records []attendance.Record, workers map[string]worker.Worker) []report.PayrollRow {
	type accumulator struct {
		row  report.PayrollRow
		days map[string]struct{}
	}

	byWorker := make(map[string]*accumulator)

	for _, rec := range validRecords(records) {
		acc, ok := byWorker[rec.WorkerEmail]
		if !ok {
			name := unknownWorkerName
			payRate := 0.0
			if wk, found := workers[rec.WorkerEmail]; found {
				name = wk.Name
				payRate = wk.PayRate
			}
			acc = &accumulator{
				row: report.PayrollRow{
					Email:   rec.WorkerEmail,
					Name:    name,
					PayRate: payRate,
				},
				days: make(map[string]struct{}),
			}
			byWorker[rec.WorkerEmail] = acc
		}

		acc.row.TotalHours += rec.WorkedHours()
		acc.row.TotalEarnings += rec.Earnings()
		acc.days[rec.DateKey()] = struct{}{}
	}

	rows := make([]report.PayrollRow, 0, len(byWorker))
	for _, acc := range byWorker {
		acc.row.DaysWorked = len(acc.days)
		if acc.row.DaysWorked > 0 {
			acc.row.AvgHoursPerDay = acc.row.TotalHours / float64(acc.row.DaysWorked)
		}
		rows = append(rows, acc.row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
	})

	return rows
}

// ComputeAttendanceSummary produces window totals plus per-day and per-site
// breakdowns in a single pass. UniqueWorkers counts distinct workers across
// the whole window, independent of the breakdowns.
func ComputeAttendanceSummary(records []attendance.Record) report.AttendanceSummary {
	summary := report.AttendanceSummary{
		DailyStats: make(map[string]report.DailyStat),
		SiteStats:  make(map[string]report.SiteStat),
	}

	allWorkers := make(map[string]struct{})
	dailyWorkers := make(map[string]map[string]struct{})
	siteWorkers := make(map[string]map[string]struct{})
	siteDayWorkers := make(map[string]map[string]map[string]struct{})

	for _, rec := range validRecords(records) {
		hours := rec.WorkedHours()
		earnings := rec.Earnings()

		summary.TotalRecords++
		summary.TotalHours += hours
		summary.TotalEarnings += earnings
		allWorkers[rec.WorkerEmail] = struct{}{}

		date := rec.DateKey()
		daily := summary.DailyStats[date]
		daily.Hours += hours
		daily.Earnings += earnings
		daily.RecordCount++
		summary.DailyStats[date] = daily
		if dailyWorkers[date] == nil {
			dailyWorkers[date] = make(map[string]struct{})
		}
		dailyWorkers[date][rec.WorkerEmail] = struct{}{}

		siteID := unassignedSiteID
		if rec.SiteID != nil && *rec.SiteID != "" {
			siteID = *rec.SiteID
		}
		stat := summary.SiteStats[siteID]
		stat.Hours += hours
		stat.Earnings += earnings
		stat.RecordCount++
		summary.SiteStats[siteID] = stat
		if siteWorkers[siteID] == nil {
			siteWorkers[siteID] = make(map[string]struct{})
			siteDayWorkers[siteID] = make(map[string]map[string]struct{})
		}
		siteWorkers[siteID][rec.WorkerEmail] = struct{}{}
		if siteDayWorkers[siteID][date] == nil {
			siteDayWorkers[siteID][date] = make(map[string]struct{})
		}
		siteDayWorkers[siteID][date][rec.WorkerEmail] = struct{}{}
	}

	summary.UniqueWorkers = len(allWorkers)

	for date, stat := range summary.DailyStats {
		stat.WorkerCount = len(dailyWorkers[date])
		summary.DailyStats[date] = stat
	}
	for siteID, stat := range summary.SiteStats {
		stat.WorkerCount = len(siteWorkers[siteID])
		stat.PeakDay = peakDay(siteDayWorkers[siteID])
		summary.SiteStats[siteID] = stat
	}

	return summary
}

// peakDay picks the date with the most distinct workers. Ties break on the
// earlier date so repeated runs stay deterministic.
func peakDay(dayWorkers map[string]map[string]struct{}) report.PeakDay {
	var peak report.PeakDay
	for date, workers := range dayWorkers {
		count := len(workers)
		if count > peak.Workers || (count == peak.Workers && (peak.Date == "" || date < peak.Date)) {
			peak = report.PeakDay{Date: date, Workers: count}
		}
	}
	return peak
}

// ComputeSiteAnalysis produces one row per distinct site in the window.
// Utilization compares logged hours against a full-capacity budget of
// workers x distinct days x the nominal workday; values over 100 signal
// overtime and are not capped. Rows are sorted by total hours, descending.
func ComputeSiteAnalysis(records []attendance.Record, sites map[string]site.Site) []report.SiteAnalysisRow {
	type accumulator struct {
		row        report.SiteAnalysisRow
		workers    map[string]struct{}
		dayWorkers map[string]map[string]struct{}
	}

	bySite := make(map[string]*accumulator)

	for _, rec := range validRecords(records) {
		siteID := unassignedSiteID
		if rec.SiteID != nil && *rec.SiteID != "" {
			siteID = *rec.SiteID
		}

		acc, ok := bySite[siteID]
		if !ok {
			row := report.SiteAnalysisRow{SiteID: siteID, SiteName: unassignedSite}
			if s, found := sites[siteID]; found {
				row.SiteName = s.Name
				row.Address = s.Address
			}
			acc = &accumulator{
				row:        row,
				workers:    make(map[string]struct{}),
				dayWorkers: make(map[string]map[string]struct{}),
			}
			bySite[siteID] = acc
		}

		acc.row.TotalHours += rec.WorkedHours()
		acc.row.TotalEarnings += rec.Earnings()
		acc.row.RecordCount++
		acc.workers[rec.WorkerEmail] = struct{}{}

		date := rec.DateKey()
		if acc.dayWorkers[date] == nil {
			acc.dayWorkers[date] = make(map[string]struct{})
		}
		acc.dayWorkers[date][rec.WorkerEmail] = struct{}{}
	}

	rows := make([]report.SiteAnalysisRow, 0, len(bySite))
	for _, acc := range bySite {
		acc.row.WorkerCount = len(acc.workers)
		acc.row.DistinctDays = len(acc.dayWorkers)
		if acc.row.DistinctDays > 0 {
			acc.row.AvgHoursPerDay = acc.row.TotalHours / float64(acc.row.DistinctDays)
		}
		capacity := float64(acc.row.WorkerCount) * float64(acc.row.DistinctDays) * nominalWorkdayHours
		if capacity > 0 {
			acc.row.Utilization = acc.row.TotalHours / capacity * 100
		}
		acc.row.PeakDay = peakDay(acc.dayWorkers)
		rows = append(rows, acc.row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalHours > rows[j].TotalHours
	})

	return rows
}

// ComputeWorkerPerformance derives punctuality and productivity per worker.
// Punctuality is the share of sessions clocked in at or before the cutoff
// hour; productivity measures logged hours against the nominal workday.
// Rows are sorted by total hours, descending.
func ComputeWorkerPerformance(records []attendance.Record, workers map[string]worker.Worker, cutoffHour int) []report.WorkerPerformanceRow {
	type accumulator struct {
		row        report.WorkerPerformanceRow
		days       map[string]struct{}
		punctual   int
		total      int
		lastWorked string
	}

	byWorker := make(map[string]*accumulator)

	for _, rec := range validRecords(records) {
		acc, ok := byWorker[rec.WorkerEmail]
		if !ok {
			row := report.WorkerPerformanceRow{
				Email:    rec.WorkerEmail,
				Name:     unknownWorkerName,
				SiteName: unassignedSite,
			}
			if wk, found := workers[rec.WorkerEmail]; found {
				row.Name = wk.Name
				if wk.SiteName != nil {
					row.SiteName = *wk.SiteName
				}
			}
			acc = &accumulator{row: row, days: make(map[string]struct{})}
			byWorker[rec.WorkerEmail] = acc
		}

		acc.row.TotalHours += rec.WorkedHours()
		acc.row.TotalEarnings += rec.Earnings()
		acc.days[rec.DateKey()] = struct{}{}
		acc.total++
		if rec.ClockIn.Hour() <= cutoffHour {
			acc.punctual++
		}
		if date := rec.DateKey(); date > acc.lastWorked {
			acc.lastWorked = date
		}
	}

	rows := make([]report.WorkerPerformanceRow, 0, len(byWorker))
	for _, acc := range byWorker {
		acc.row.DaysWorked = len(acc.days)
		if acc.row.DaysWorked > 0 {
			acc.row.AvgHoursPerDay = acc.row.TotalHours / float64(acc.row.DaysWorked)
			acc.row.Productivity = acc.row.TotalHours / (float64(acc.row.DaysWorked) * nominalWorkdayHours) * 100
		}
		if acc.total > 0 {
			acc.row.PunctualityRate = float64(acc.punctual) / float64(acc.total) * 100
		}
		acc.row.LastWorked = acc.lastWorked
		rows = append(rows, acc.row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalHours > rows[j].TotalHours
	})

	return rows
}
