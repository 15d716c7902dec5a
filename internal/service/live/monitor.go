package live

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/live"
	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/sse"
)

// Topic is the SSE topic live snapshots are published on.
const Topic = "live"

// SnapshotEvent is the SSE event name carried by each refresh.
const SnapshotEvent = "snapshot"

// Monitor periodically refreshes the live snapshot and publishes it to the
// SSE hub. Refreshes are single-flight: if a poll is still running when the
// next tick fires, that tick is skipped instead of queueing a second poll.
type Monitor struct {
	service  live.LiveService
	hub      *sse.Hub
	interval time.Duration

	inFlight atomic.Bool
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewMonitor(service live.LiveService, hub *sse.Hub, interval time.Duration) *Monitor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Monitor{
		service:  service,
		hub:      hub,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins the refresh loop. The first refresh runs immediately.
func (m *Monitor) Start() {
	m.wg.Add(1)
	go m.run()
	slog.Info("Live monitor started", "interval", m.interval)
}

// Stop cancels the loop and waits for an in-flight refresh to finish.
func (m *Monitor) Stop() {
	slog.Info("Stopping live monitor...")
	m.cancel()
	m.wg.Wait()
	slog.Info("Live monitor stopped")
}

func (m *Monitor) run() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh(m.ctx)

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.Refresh(m.ctx)
		}
	}
}

// Refresh runs one poll-and-publish cycle. Calls that overlap a running
// refresh return immediately.
func (m *Monitor) Refresh(ctx context.Context) {
	if !m.inFlight.CompareAndSwap(false, true) {
		slog.Debug("Live refresh still in flight, skipping tick")
		return
	}
	defer m.inFlight.Store(false)

	start := time.Now()
	snapshot, err := m.service.GetSnapshot(ctx)
	if err != nil {
		slog.Error("Live refresh failed", "error", err, "duration", time.Since(start))
		return
	}

	m.hub.Publish(Topic, sse.Event{
		Topic: Topic,
		Event: SnapshotEvent,
		Data:  snapshot,
	})

	slog.Debug("Live refresh completed",
		"active_workers", len(snapshot.ActiveWorkers),
		"subscribers", m.hub.SubscriberCount(Topic),
		"duration", time.Since(start),
	)
}
