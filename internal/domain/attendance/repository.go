package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
	ListOpenSessions(ctx context.Context, since time.Time) ([]Record, error)
	Create(ctx context.Context, record Record) (Record, error)
	Update(ctx context.Context, record Record) error
	CloseSession(ctx context.Context, id string, clockOut time.Time, hours, payAmount float64) error
}
