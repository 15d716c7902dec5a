package live

import "context"

// LiveService produces on-demand snapshots of currently clocked-in workers.
// The periodic refresh that feeds the SSE stream is driven by the Monitor,
// not by the service itself.
type LiveService interface {
	GetSnapshot(ctx context.Context) (Snapshot, error)
}
