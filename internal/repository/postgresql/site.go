package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/site"
	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type siteRepositoryImpl struct {
	db *database.DB
}

func NewSiteRepository(db *database.DB) site.SiteRepository {
	return &siteRepositoryImpl{db: db}
}

const siteColumns = `
	id, name, address, latitude, longitude, radius_meters,
	is_active, created_at, updated_at, deleted_at
`

func scanSite(row pgx.Row) (site.Site, error) {
	var s site.Site
	err := row.Scan(
		&s.ID, &s.Name, &s.Address, &s.Latitude, &s.Longitude, &s.RadiusMeters,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	return s, err
}

// GetByID implements site.SiteRepository.
func (r *siteRepositoryImpl) GetByID(ctx context.Context, id string) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM sites
		WHERE id = $1 AND deleted_at IS NULL
	`, siteColumns)

	s, err := scanSite(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.Site{}, site.ErrSiteNotFound
		}
		return site.Site{}, fmt.Errorf("failed to get site %s: %w", id, err)
	}

	return s, nil
}

// List implements site.SiteRepository.
func (r *siteRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM sites
		WHERE deleted_at IS NULL
	`, siteColumns)
	if activeOnly {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY name ASC"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	sites := []site.Site{}
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return sites, nil
}

// Create implements site.SiteRepository.
func (r *siteRepositoryImpl) Create(ctx context.Context, newSite site.Site) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sites (id, name, address, latitude, longitude, radius_meters, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newSite.ID, newSite.Name, newSite.Address,
		newSite.Latitude, newSite.Longitude, newSite.RadiusMeters, newSite.IsActive,
	).Scan(&newSite.CreatedAt, &newSite.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return site.Site{}, site.ErrNameExists
		}
		return site.Site{}, fmt.Errorf("failed to create site: %w", err)
	}

	return newSite, nil
}

// Update implements site.SiteRepository.
func (r *siteRepositoryImpl) Update(ctx context.Context, id string, req site.UpdateSiteRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	if req.Name != nil {
		args = append(args, *req.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if req.Address != nil {
		args = append(args, *req.Address)
		sets = append(sets, fmt.Sprintf("address = $%d", len(args)))
	}
	if req.Latitude != nil {
		args = append(args, *req.Latitude)
		sets = append(sets, fmt.Sprintf("latitude = $%d", len(args)))
	}
	if req.Longitude != nil {
		args = append(args, *req.Longitude)
		sets = append(sets, fmt.Sprintf("longitude = $%d", len(args)))
	}
	if req.RadiusMeters != nil {
		args = append(args, *req.RadiusMeters)
		sets = append(sets, fmt.Sprintf("radius_meters = $%d", len(args)))
	}
	if req.IsActive != nil {
		args = append(args, *req.IsActive)
		sets = append(sets, fmt.Sprintf("is_active = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		UPDATE sites SET %s
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`, strings.Join(sets, ", "))

	var updated string
	if err := q.QueryRow(ctx, query, args...).Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.ErrSiteNotFound
		}
		return fmt.Errorf("failed to update site %s: %w", id, err)
	}

	return nil
}

// Delete implements site.SiteRepository.
func (r *siteRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sites SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`

	var deleted string
	if err := q.QueryRow(ctx, query, id, time.Now()).Scan(&deleted); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.ErrSiteNotFound
		}
		return fmt.Errorf("failed to delete site %s: %w", id, err)
	}

	return nil
}
