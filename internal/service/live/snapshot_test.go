package live

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/attendance"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/live"
	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/sse"
)

func strPtr(s string) *string { return &s }

func TestActiveNow(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("elapsed time and running pay", func(t *testing.T) {
		records := []attendance.Record{
			{
				ID:          "rec-1",
				WorkerEmail: "ana@example.com",
				WorkerName:  strPtr("Ana Silva"),
				SiteID:      strPtr("site-1"),
				SiteName:    strPtr("North Yard"),
				ClockIn:     now.Add(-90 * time.Minute),
				PayRate:     20,
			},
		}

		snapshot := ActiveNow(records, now)
		require.Len(t, snapshot.ActiveWorkers, 1)

		aw := snapshot.ActiveWorkers[0]
		assert.Equal(t, now, snapshot.TakenAt)
		assert.Equal(t, "Ana Silva", aw.WorkerName)
		assert.Equal(t, "North Yard", aw.SiteName)
		assert.InDelta(t, 1.5, aw.ElapsedHours, 1e-9)
		assert.InDelta(t, 30, aw.CurrentEarnings, 1e-9)
	})

	t.Run("missing joins fall back to email and unassigned", func(t *testing.T) {
		records := []attendance.Record{
			{ID: "rec-2", WorkerEmail: "bob@example.com", ClockIn: now.Add(-time.Hour), PayRate: 10},
		}

		snapshot := ActiveNow(records, now)
		require.Len(t, snapshot.ActiveWorkers, 1)
		assert.Equal(t, "bob@example.com", snapshot.ActiveWorkers[0].WorkerName)
		assert.Equal(t, "Unassigned", snapshot.ActiveWorkers[0].SiteName)
	})

	t.Run("clock-in after now clamps to zero", func(t *testing.T) {
		records := []attendance.Record{
			{ID: "rec-3", WorkerEmail: "ana@example.com", ClockIn: now.Add(time.Minute), PayRate: 20},
		}

		snapshot := ActiveNow(records, now)
		require.Len(t, snapshot.ActiveWorkers, 1)
		assert.Zero(t, snapshot.ActiveWorkers[0].ElapsedHours)
		assert.Zero(t, snapshot.ActiveWorkers[0].CurrentEarnings)
	})

	t.Run("sessions without clock-in or already closed are skipped", func(t *testing.T) {
		out := now.Add(-time.Hour)
		records := []attendance.Record{
			{ID: "rec-4", WorkerEmail: "ana@example.com"},
			{ID: "rec-5", WorkerEmail: "bob@example.com", ClockIn: now.Add(-2 * time.Hour), ClockOut: &out},
		}

		snapshot := ActiveNow(records, now)
		assert.Empty(t, snapshot.ActiveWorkers)
	})

	t.Run("empty input yields empty snapshot", func(t *testing.T) {
		snapshot := ActiveNow(nil, now)
		assert.Empty(t, snapshot.ActiveWorkers)
		assert.Equal(t, now, snapshot.TakenAt)
	})
}

type stubLiveService struct {
	mu    sync.Mutex
	calls int
	block chan struct{}
}

func (s *stubLiveService) GetSnapshot(ctx context.Context) (live.Snapshot, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.block != nil {
		<-s.block
	}
	return live.Snapshot{TakenAt: time.Now()}, nil
}

func (s *stubLiveService) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestMonitorPublishesSnapshot(t *testing.T) {
	hub := sse.NewHub()
	ch, cleanup := hub.Subscribe(Topic)
	defer cleanup()

	monitor := NewMonitor(&stubLiveService{}, hub, time.Minute)
	monitor.Refresh(context.Background())

	select {
	case event := <-ch:
		assert.Equal(t, SnapshotEvent, event.Event)
		_, ok := event.Data.(live.Snapshot)
		assert.True(t, ok)
	default:
		t.Fatal("expected a published snapshot event")
	}
}

func TestMonitorSkipsOverlappingRefresh(t *testing.T) {
	svc := &stubLiveService{block: make(chan struct{})}
	monitor := NewMonitor(svc, sse.NewHub(), time.Minute)

	done := make(chan struct{})
	go func() {
		monitor.Refresh(context.Background())
		close(done)
	}()

	// Wait until the first refresh is inside GetSnapshot.
	require.Eventually(t, func() bool { return svc.callCount() == 1 }, time.Second, time.Millisecond)

	// Overlapping call must bail out without polling again.
	monitor.Refresh(context.Background())
	assert.Equal(t, 1, svc.callCount())

	close(svc.block)
	<-done

	monitor.Refresh(context.Background())
	assert.Equal(t, 2, svc.callCount())
}
