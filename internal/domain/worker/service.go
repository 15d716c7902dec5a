package worker

import (
	"context"
	"io"
)

type WorkerService interface {
	GetWorker(ctx context.Context, email string) (Worker, error)
	ListWorkers(ctx context.Context, filter Filter) ([]Worker, error)
	CreateWorker(ctx context.Context, req CreateWorkerRequest) (Worker, error)
	UpdateWorker(ctx context.Context, email string, req UpdateWorkerRequest) error
	DeactivateWorker(ctx context.Context, email string) error
	DeleteWorker(ctx context.Context, email string) error

	// Roster CSV round trip for the import/export buttons on the worker screen.
	ExportCSV(ctx context.Context, w io.Writer) error
	ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error)
}
