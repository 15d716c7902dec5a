package live

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/attendance"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/live"
)

// openSessionWindow bounds how far back open sessions are considered live.
// A clock-out the device never sent should not keep a worker on the board
// for days.
const openSessionWindow = 24 * time.Hour

type liveServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewLiveService(attendanceRepo attendance.AttendanceRepository) live.LiveService {
	return &liveServiceImpl{attendanceRepo: attendanceRepo}
}

// GetSnapshot implements live.LiveService.
func (s *liveServiceImpl) GetSnapshot(ctx context.Context) (live.Snapshot, error) {
	now := time.Now()

	records, err := s.attendanceRepo.ListOpenSessions(ctx, now.Add(-openSessionWindow))
	if err != nil {
		return live.Snapshot{}, fmt.Errorf("failed to fetch open sessions: %w", err)
	}

	return ActiveNow(records, now), nil
}

// ActiveNow converts open sessions into a snapshot, computing elapsed time
// and running pay against the supplied clock. Sessions without a clock-in
// are skipped.
func ActiveNow(records []attendance.Record, now time.Time) live.Snapshot {
	snapshot := live.Snapshot{
		TakenAt:       now,
		ActiveWorkers: make([]live.ActiveWorker, 0, len(records)),
	}

	for _, rec := range records {
		if !rec.HasClockIn() {
			slog.Warn("Skipping open session without clock-in", "record_id", rec.ID, "worker_email", rec.WorkerEmail)
			continue
		}
		if !rec.IsOpen() {
			continue
		}

		elapsed := now.Sub(rec.ClockIn).Hours()
		if elapsed < 0 {
			elapsed = 0
		}

		aw := live.ActiveWorker{
			RecordID:           rec.ID,
			WorkerEmail:        rec.WorkerEmail,
			WorkerName:         rec.WorkerEmail,
			SiteName:           "Unassigned",
			PayRate:            rec.PayRate,
			ClockIn:            rec.ClockIn,
			ElapsedHours:       elapsed,
			CurrentEarnings:    elapsed * rec.PayRate,
			IsLocationVerified: rec.IsLocationVerified,
		}
		if rec.WorkerName != nil {
			aw.WorkerName = *rec.WorkerName
		}
		if rec.SiteID != nil {
			aw.SiteID = *rec.SiteID
		}
		if rec.SiteName != nil {
			aw.SiteName = *rec.SiteName
		}

		snapshot.ActiveWorkers = append(snapshot.ActiveWorkers, aw)
	}

	return snapshot
}
