package site

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/site"
)

type siteServiceImpl struct {
	siteRepo site.SiteRepository
}

func NewSiteService(siteRepo site.SiteRepository) site.SiteService {
	return &siteServiceImpl{siteRepo: siteRepo}
}

// GetSite implements site.SiteService.
func (s *siteServiceImpl) GetSite(ctx context.Context, id string) (site.Site, error) {
	return s.siteRepo.GetByID(ctx, id)
}

// ListSites implements site.SiteService.
func (s *siteServiceImpl) ListSites(ctx context.Context, activeOnly bool) ([]site.Site, error) {
	return s.siteRepo.List(ctx, activeOnly)
}

// CreateSite implements site.SiteService. Names must be unique among
// non-deleted sites, compared case-insensitively.
func (s *siteServiceImpl) CreateSite(ctx context.Context, req site.CreateSiteRequest) (site.Site, error) {
	if err := req.Validate(); err != nil {
		return site.Site{}, err
	}

	existing, err := s.siteRepo.List(ctx, false)
	if err != nil {
		return site.Site{}, err
	}
	for _, st := range existing {
		if strings.EqualFold(st.Name, req.Name) {
			return site.Site{}, site.ErrNameExists
		}
	}

	return s.siteRepo.Create(ctx, site.Site{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		IsActive:     true,
	})
}

// UpdateSite implements site.SiteService.
func (s *siteServiceImpl) UpdateSite(ctx context.Context, id string, req site.UpdateSiteRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.siteRepo.Update(ctx, id, req)
}

// DeleteSite implements site.SiteService.
func (s *siteServiceImpl) DeleteSite(ctx context.Context, id string) error {
	return s.siteRepo.Delete(ctx, id)
}
