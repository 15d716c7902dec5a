package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/attendance"
)

func strPtr(s string) *string { return &s }

func TestComputeStats(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)

	t.Run("aggregates across workers sites and days", func(t *testing.T) {
		records := []attendance.Record{
			{ID: "r1", WorkerEmail: "ana@example.com", SiteID: strPtr("site-1"), ClockIn: day1, Hours: 8, PayAmount: 80},
			{ID: "r2", WorkerEmail: "bob@example.com", SiteID: strPtr("site-2"), ClockIn: day1, Hours: 6, PayAmount: 90},
			{ID: "r3", WorkerEmail: "ana@example.com", SiteID: strPtr("site-1"), ClockIn: day2, Hours: 4, PayAmount: 40},
		}

		stats := ComputeStats(records)

		assert.Equal(t, 3, stats.TotalRecords)
		assert.InDelta(t, 18, stats.TotalHours, 1e-9)
		assert.InDelta(t, 210, stats.TotalEarnings, 1e-9)
		assert.Equal(t, 2, stats.UniqueWorkers)
		assert.Equal(t, 2, stats.UniqueSites)
		assert.InDelta(t, 9, stats.AvgHoursPerDay, 1e-9)
	})

	t.Run("records without clock-in are excluded", func(t *testing.T) {
		records := []attendance.Record{
			{ID: "r1", WorkerEmail: "ana@example.com", ClockIn: day1, Hours: 8, PayAmount: 80},
			{ID: "broken", WorkerEmail: "bob@example.com", Hours: 4},
		}

		stats := ComputeStats(records)
		assert.Equal(t, 1, stats.TotalRecords)
		assert.InDelta(t, 8, stats.TotalHours, 1e-9)
	})

	t.Run("empty input yields zeroes without NaN", func(t *testing.T) {
		stats := ComputeStats(nil)
		assert.Zero(t, stats.TotalRecords)
		assert.Zero(t, stats.AvgHoursPerDay)
	})

	t.Run("earnings derived from rate when amount missing", func(t *testing.T) {
		out := day1.Add(5 * time.Hour)
		records := []attendance.Record{
			{ID: "r1", WorkerEmail: "ana@example.com", ClockIn: day1, ClockOut: &out, PayRate: 12},
		}

		stats := ComputeStats(records)
		assert.InDelta(t, 5, stats.TotalHours, 1e-9)
		assert.InDelta(t, 60, stats.TotalEarnings, 1e-9)
	})
}
