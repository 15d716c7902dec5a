package worker

import "context"

type WorkerRepository interface {
	GetByEmail(ctx context.Context, email string) (Worker, error)
	List(ctx context.Context, filter Filter) ([]Worker, error)
	Create(ctx context.Context, newWorker Worker) (Worker, error)
	Update(ctx context.Context, email string, req UpdateWorkerRequest) error
	Delete(ctx context.Context, email string) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
