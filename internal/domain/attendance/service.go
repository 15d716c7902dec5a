package attendance

import (
	"context"
)

type AttendanceService interface {
	GetRecord(ctx context.Context, id string) (Record, error)
	ListRecords(ctx context.Context, filter Filter) ([]Record, error)
	ListToday(ctx context.Context) ([]Record, error)
	CreateManual(ctx context.Context, req CreateManualRequest) (Record, error)
	UpdateRecord(ctx context.Context, id string, req UpdateRecordRequest) error
	ClockOut(ctx context.Context, id string) (Record, error)
	GetStats(ctx context.Context, filter Filter) (Stats, error)
}
