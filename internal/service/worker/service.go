package worker

import (
	"context"
	"fmt"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/site"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/worker"
)

type workerServiceImpl struct {
	workerRepo worker.WorkerRepository
	siteRepo   site.SiteRepository
}

func NewWorkerService(workerRepo worker.WorkerRepository, siteRepo site.SiteRepository) worker.WorkerService {
	return &workerServiceImpl{
		workerRepo: workerRepo,
		siteRepo:   siteRepo,
	}
}

// GetWorker implements worker.WorkerService.
func (s *workerServiceImpl) GetWorker(ctx context.Context, email string) (worker.Worker, error) {
	return s.workerRepo.GetByEmail(ctx, email)
}

// ListWorkers implements worker.WorkerService.
func (s *workerServiceImpl) ListWorkers(ctx context.Context, filter worker.Filter) ([]worker.Worker, error) {
	return s.workerRepo.List(ctx, filter)
}

// CreateWorker implements worker.WorkerService. The assigned site must exist
// before the worker is persisted.
func (s *workerServiceImpl) CreateWorker(ctx context.Context, req worker.CreateWorkerRequest) (worker.Worker, error) {
	if err := req.Validate(); err != nil {
		return worker.Worker{}, err
	}

	exists, err := s.workerRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return worker.Worker{}, fmt.Errorf("failed to check email availability: %w", err)
	}
	if exists {
		return worker.Worker{}, worker.ErrEmailExists
	}

	if req.SiteID != nil {
		if _, err := s.siteRepo.GetByID(ctx, *req.SiteID); err != nil {
			return worker.Worker{}, err
		}
	}

	return s.workerRepo.Create(ctx, worker.Worker{
		Email:       req.Email,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		SiteID:      req.SiteID,
		PayRate:     req.PayRate,
		IsActive:    true,
	})
}

// UpdateWorker implements worker.WorkerService.
func (s *workerServiceImpl) UpdateWorker(ctx context.Context, email string, req worker.UpdateWorkerRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if req.SiteID != nil && *req.SiteID != "" {
		if _, err := s.siteRepo.GetByID(ctx, *req.SiteID); err != nil {
			return err
		}
	}

	return s.workerRepo.Update(ctx, email, req)
}

// DeactivateWorker implements worker.WorkerService. The worker keeps their
// history but no longer appears on active rosters.
func (s *workerServiceImpl) DeactivateWorker(ctx context.Context, email string) error {
	inactive := false
	return s.workerRepo.Update(ctx, email, worker.UpdateWorkerRequest{IsActive: &inactive})
}

// DeleteWorker implements worker.WorkerService.
func (s *workerServiceImpl) DeleteWorker(ctx context.Context, email string) error {
	return s.workerRepo.Delete(ctx, email)
}
