package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/worker"
	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workerRepositoryImpl struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepositoryImpl{db: db}
}

const workerColumns = `
	w.email, w.name, w.phone_number, w.site_id, s.name, w.pay_rate,
	w.is_active, w.created_at, w.updated_at, w.deleted_at
`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var wk worker.Worker
	err := row.Scan(
		&wk.Email, &wk.Name, &wk.PhoneNumber, &wk.SiteID, &wk.SiteName,
		&wk.PayRate, &wk.IsActive, &wk.CreatedAt, &wk.UpdatedAt, &wk.DeletedAt,
	)
	return wk, err
}

// GetByEmail implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByEmail(ctx context.Context, email string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM workers w
		LEFT JOIN sites s ON w.site_id = s.id
		WHERE w.email = $1 AND w.deleted_at IS NULL
	`, workerColumns)

	wk, err := scanWorker(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker %s: %w", email, err)
	}

	return wk, nil
}

// List implements worker.WorkerRepository.
func (r *workerRepositoryImpl) List(ctx context.Context, filter worker.Filter) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM workers w
		LEFT JOIN sites s ON w.site_id = s.id
		WHERE w.deleted_at IS NULL
	`, workerColumns)

	args := []interface{}{}
	if filter.SiteID != nil {
		args = append(args, *filter.SiteID)
		query += fmt.Sprintf(" AND w.site_id = $%d", len(args))
	}
	if filter.ActiveOnly {
		query += " AND w.is_active = TRUE"
	}
	query += " ORDER BY w.name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	workers := []worker.Worker{}
	for rows.Next() {
		wk, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, wk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return workers, nil
}

// Create implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Create(ctx context.Context, newWorker worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workers (email, name, phone_number, site_id, pay_rate, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newWorker.Email, newWorker.Name, newWorker.PhoneNumber,
		newWorker.SiteID, newWorker.PayRate, newWorker.IsActive,
	).Scan(&newWorker.CreatedAt, &newWorker.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return worker.Worker{}, worker.ErrEmailExists
		}
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return newWorker, nil
}

// Update implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Update(ctx context.Context, email string, req worker.UpdateWorkerRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{"updated_at = NOW()"}
	args := []interface{}{email}

	if req.Name != nil {
		args = append(args, *req.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if req.PhoneNumber != nil {
		args = append(args, *req.PhoneNumber)
		sets = append(sets, fmt.Sprintf("phone_number = $%d", len(args)))
	}
	if req.SiteID != nil {
		args = append(args, *req.SiteID)
		sets = append(sets, fmt.Sprintf("site_id = $%d", len(args)))
	}
	if req.PayRate != nil {
		args = append(args, *req.PayRate)
		sets = append(sets, fmt.Sprintf("pay_rate = $%d", len(args)))
	}
	if req.IsActive != nil {
		args = append(args, *req.IsActive)
		sets = append(sets, fmt.Sprintf("is_active = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		UPDATE workers SET %s
		WHERE email = $1 AND deleted_at IS NULL
		RETURNING email
	`, strings.Join(sets, ", "))

	var updated string
	if err := q.QueryRow(ctx, query, args...).Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.ErrWorkerNotFound
		}
		return fmt.Errorf("failed to update worker %s: %w", email, err)
	}

	return nil
}

// Delete implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Delete(ctx context.Context, email string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers SET deleted_at = $2, updated_at = $2
		WHERE email = $1 AND deleted_at IS NULL
		RETURNING email
	`

	var deleted string
	if err := q.QueryRow(ctx, query, email, time.Now()).Scan(&deleted); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.ErrWorkerNotFound
		}
		return fmt.Errorf("failed to delete worker %s: %w", email, err)
	}

	return nil
}

// ExistsByEmail implements worker.WorkerRepository.
func (r *workerRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM workers WHERE email = $1 AND deleted_at IS NULL)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check worker existence: %w", err)
	}

	return exists, nil
}
