package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/attendance"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/site"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/worker"
)

func strPtr(s string) *string { return &s }

func testRecord(email, siteID string, clockIn time.Time, hours, payRate float64) attendance.Record {
	rec := attendance.Record{
		ID:          "rec-" + email + clockIn.Format("20060102T1504"),
		WorkerEmail: email,
		ClockIn:     clockIn,
		Hours:       hours,
		PayAmount:   hours * payRate,
		PayRate:     payRate,
	}
	if siteID != "" {
		rec.SiteID = &siteID
	}
	if hours > 0 {
		out := clockIn.Add(time.Duration(hours * float64(time.Hour)))
		rec.ClockOut = &out
	}
	return rec
}

func TestComputePayroll(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 8, 30, 0, 0, time.UTC)

	workers := map[string]worker.Worker{
		"ana@example.com": {Email: "ana@example.com", Name: "Ana Silva", PayRate: 10},
		"bob@example.com": {Email: "bob@example.com", Name: "bob jones", PayRate: 15},
	}

	t.Run("single worker single day", func(t *testing.T) {
		records := []attendance.Record{
			testRecord("ana@example.com", "site-1", day1, 8, 10),
		}

		rows := ComputePayroll(records, workers)
		require.Len(t, rows, 1)

		assert.Equal(t, "Ana Silva", rows[0].Name)
		assert.Equal(t, 1, rows[0].DaysWorked)
		assert.InDelta(t, 8, rows[0].TotalHours, 1e-9)
		assert.InDelta(t, 80, rows[0].TotalEarnings, 1e-9)
		assert.InDelta(t, 8, rows[0].AvgHoursPerDay, 1e-9)
	})

	t.Run("two sessions same day count as one day", func(t *testing.T) {
		records := []attendance.Record{
			testRecord("ana@example.com", "site-1", day1, 4, 10),
			testRecord("ana@example.com", "site-1", day1.Add(6*time.Hour), 3, 10),
		}

		rows := ComputePayroll(records, workers)
		require.Len(t, rows, 1)

		assert.Equal(t, 1, rows[0].DaysWorked)
		assert.InDelta(t, 7, rows[0].TotalHours, 1e-9)
		assert.InDelta(t, 7, rows[0].AvgHoursPerDay, 1e-9)
	})

	t.Run("sorted by name case-insensitive", func(t *testing.T) {
		records := []attendance.Record{
			testRecord("bob@example.com", "site-1", day1, 8, 15),
			testRecord("ana@example.com", "site-1", day1, 8, 10),
		}

		rows := ComputePayroll(records, workers)
		require.Len(t, rows, 2)

		assert.Equal(t, "Ana Silva", rows[0].Name)
		assert.Equal(t, "bob jones", rows[1].Name)
	})

	t.Run("unknown worker gets placeholder and zero rate", func(t *testing.T) {
		records := []attendance.Record{
			{ID: "r1", WorkerEmail: "ghost@example.com", ClockIn: day1, Hours: 5},
		}

		rows := ComputePayroll(records, workers)
		require.Len(t, rows, 1)

		assert.Equal(t, "Unknown Worker", rows[0].Name)
		assert.Zero(t, rows[0].PayRate)
		assert.InDelta(t, 5, rows[0].TotalHours, 1e-9)
		assert.Zero(t, rows[0].TotalEarnings)
	})

	t.Run("record without clock-in is excluded", func(t *testing.T) {
		records := []attendance.Record{
			testRecord("ana@example.com", "site-1", day1, 8, 10),
			{ID: "broken", WorkerEmail: "ana@example.com", Hours: 4},
		}

		rows := ComputePayroll(records, workers)
		require.Len(t, rows, 1)
		assert.InDelta(t, 8, rows[0].TotalHours, 1e-9)
	})

	t.Run("hours derived from clock pair when not stored", func(t *testing.T) {
		out := day2.Add(6 * time.Hour)
		records := []attendance.Record{
			{ID: "r2", WorkerEmail: "bob@example.com", ClockIn: day2, ClockOut: &out, PayRate: 15},
		}

		rows := ComputePayroll(records, workers)
		require.Len(t, rows, 1)
		assert.InDelta(t, 6, rows[0].TotalHours, 1e-9)
		assert.InDelta(t, 90, rows[0].TotalEarnings, 1e-9)
	})

	t.Run("empty input yields empty rows", func(t *testing.T) {
		rows := ComputePayroll(nil, workers)
		assert.Empty(t, rows)
	})
}

func TestComputeAttendanceSummary(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)

	records := []attendance.Record{
		testRecord("ana@example.com", "site-1", day1, 8, 10),
		testRecord("bob@example.com", "site-1", day1, 6, 15),
		testRecord("ana@example.com", "site-2", day2, 4, 10),
		testRecord("cara@example.com", "", day2, 2, 12),
	}

	summary := ComputeAttendanceSummary(records)

	assert.Equal(t, 4, summary.TotalRecords)
	assert.InDelta(t, 20, summary.TotalHours, 1e-9)
	assert.InDelta(t, 8*10+6*15+4*10+2*12, summary.TotalEarnings, 1e-9)
	assert.Equal(t, 3, summary.UniqueWorkers)

	require.Len(t, summary.DailyStats, 2)
	assert.Equal(t, 2, summary.DailyStats["2026-03-02"].WorkerCount)
	assert.InDelta(t, 14, summary.DailyStats["2026-03-02"].Hours, 1e-9)
	assert.Equal(t, 2, summary.DailyStats["2026-03-03"].WorkerCount)

	require.Len(t, summary.SiteStats, 3)
	assert.Equal(t, 2, summary.SiteStats["site-1"].WorkerCount)
	assert.InDelta(t, 14, summary.SiteStats["site-1"].Hours, 1e-9)
	assert.Equal(t, "2026-03-02", summary.SiteStats["site-1"].PeakDay.Date)
	assert.Equal(t, 2, summary.SiteStats["site-1"].PeakDay.Workers)

	unassigned, ok := summary.SiteStats["unassigned"]
	require.True(t, ok)
	assert.Equal(t, 1, unassigned.RecordCount)
}

func TestComputeAttendanceSummaryEmpty(t *testing.T) {
	summary := ComputeAttendanceSummary(nil)

	assert.Zero(t, summary.TotalRecords)
	assert.Zero(t, summary.TotalHours)
	assert.Zero(t, summary.UniqueWorkers)
	assert.Empty(t, summary.DailyStats)
	assert.Empty(t, summary.SiteStats)
}

func TestComputeSiteAnalysis(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)

	sites := map[string]site.Site{
		"site-1": {ID: "site-1", Name: "North Yard", Address: "1 Dock Rd"},
		"site-2": {ID: "site-2", Name: "South Yard", Address: "9 Pier Ln"},
	}

	t.Run("full utilization at capacity", func(t *testing.T) {
		records := []attendance.Record{
			testRecord("ana@example.com", "site-1", day1, 8, 10),
			testRecord("bob@example.com", "site-1", day1, 8, 15),
		}

		rows := ComputeSiteAnalysis(records, sites)
		require.Len(t, rows, 1)

		assert.Equal(t, "North Yard", rows[0].SiteName)
		assert.Equal(t, "1 Dock Rd", rows[0].Address)
		assert.Equal(t, 2, rows[0].WorkerCount)
		assert.Equal(t, 1, rows[0].DistinctDays)
		assert.InDelta(t, 16, rows[0].TotalHours, 1e-9)
		assert.InDelta(t, 100, rows[0].Utilization, 1e-9)
	})

	t.Run("overtime pushes utilization past 100", func(t *testing.T) {
		records := []attendance.Record{
			testRecord("ana@example.com", "site-1", day1, 10, 10),
		}

		rows := ComputeSiteAnalysis(records, sites)
		require.Len(t, rows, 1)
		assert.InDelta(t, 125, rows[0].Utilization, 1e-9)
	})

	t.Run("zero hours keep utilization at zero", func(t *testing.T) {
		records := []attendance.Record{
			{ID: "open", WorkerEmail: "ana@example.com", SiteID: strPtr("site-1"), ClockIn: day1},
		}

		rows := ComputeSiteAnalysis(records, sites)
		require.Len(t, rows, 1)
		assert.Zero(t, rows[0].Utilization)
		assert.Zero(t, rows[0].AvgHoursPerDay)
	})

	t.Run("sorted by total hours descending with unassigned fallback", func(t *testing.T) {
		records := []attendance.Record{
			testRecord("ana@example.com", "site-2", day1, 3, 10),
			testRecord("bob@example.com", "site-1", day1, 8, 15),
			testRecord("cara@example.com", "", day2, 5, 12),
		}

		rows := ComputeSiteAnalysis(records, sites)
		require.Len(t, rows, 3)

		assert.Equal(t, "North Yard", rows[0].SiteName)
		assert.Equal(t, "Unassigned", rows[1].SiteName)
		assert.Equal(t, "unassigned", rows[1].SiteID)
		assert.Equal(t, "South Yard", rows[2].SiteName)
	})

	t.Run("peak day tracks distinct workers", func(t *testing.T) {
		records := []attendance.Record{
			testRecord("ana@example.com", "site-1", day1, 8, 10),
			testRecord("bob@example.com", "site-1", day2, 8, 15),
			testRecord("cara@example.com", "site-1", day2, 8, 12),
		}

		rows := ComputeSiteAnalysis(records, sites)
		require.Len(t, rows, 1)
		assert.Equal(t, "2026-03-03", rows[0].PeakDay.Date)
		assert.Equal(t, 2, rows[0].PeakDay.Workers)
	})
}

func TestComputeWorkerPerformance(t *testing.T) {
	workers := map[string]worker.Worker{
		"ana@example.com": {Email: "ana@example.com", Name: "Ana Silva", PayRate: 10, SiteName: strPtr("North Yard")},
	}

	t.Run("punctuality counts clock-ins at or before cutoff", func(t *testing.T) {
		records := []attendance.Record{
			testRecord("ana@example.com", "site-1", time.Date(2026, 3, 2, 8, 45, 0, 0, time.UTC), 8, 10),
			testRecord("ana@example.com", "site-1", time.Date(2026, 3, 3, 9, 59, 0, 0, time.UTC), 8, 10),
			testRecord("ana@example.com", "site-1", time.Date(2026, 3, 4, 10, 1, 0, 0, time.UTC), 8, 10),
		}

		rows := ComputeWorkerPerformance(records, workers, 9)
		require.Len(t, rows, 1)

		assert.Equal(t, "Ana Silva", rows[0].Name)
		assert.Equal(t, "North Yard", rows[0].SiteName)
		assert.Equal(t, 3, rows[0].DaysWorked)
		assert.InDelta(t, 66.6667, rows[0].PunctualityRate, 0.001)
		assert.InDelta(t, 100, rows[0].Productivity, 1e-9)
		assert.Equal(t, "2026-03-04", rows[0].LastWorked)
	})

	t.Run("sorted by total hours descending", func(t *testing.T) {
		records := []attendance.Record{
			testRecord("ana@example.com", "site-1", time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), 4, 10),
			testRecord("zed@example.com", "site-1", time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), 9, 20),
		}

		rows := ComputeWorkerPerformance(records, workers, 9)
		require.Len(t, rows, 2)

		assert.Equal(t, "zed@example.com", rows[0].Email)
		assert.Equal(t, "Unknown Worker", rows[0].Name)
		assert.Equal(t, "Unassigned", rows[0].SiteName)
		assert.Equal(t, "ana@example.com", rows[1].Email)
	})

	t.Run("empty input yields empty rows without NaN", func(t *testing.T) {
		rows := ComputeWorkerPerformance(nil, workers, 9)
		assert.Empty(t, rows)
	})
}

// Hours flowing into payroll, site analysis and the summary must agree with
// each other for the same record set.
func TestAggregateHourConservation(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)

	records := []attendance.Record{
		testRecord("ana@example.com", "site-1", day1, 8, 10),
		testRecord("bob@example.com", "site-2", day1, 6.5, 15),
		testRecord("ana@example.com", "", day2, 4.25, 10),
	}

	summary := ComputeAttendanceSummary(records)

	var payrollHours float64
	for _, row := range ComputePayroll(records, nil) {
		payrollHours += row.TotalHours
	}

	var siteHours float64
	for _, row := range ComputeSiteAnalysis(records, nil) {
		siteHours += row.TotalHours
	}

	var perfHours float64
	for _, row := range ComputeWorkerPerformance(records, nil, 9) {
		perfHours += row.TotalHours
	}

	assert.InDelta(t, summary.TotalHours, payrollHours, 1e-9)
	assert.InDelta(t, summary.TotalHours, siteHours, 1e-9)
	assert.InDelta(t, summary.TotalHours, perfHours, 1e-9)
}
