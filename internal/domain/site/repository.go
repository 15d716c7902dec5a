package site

import "context"

type SiteRepository interface {
	GetByID(ctx context.Context, id string) (Site, error)
	List(ctx context.Context, activeOnly bool) ([]Site, error)
	Create(ctx context.Context, newSite Site) (Site, error)
	Update(ctx context.Context, id string, req UpdateSiteRequest) error
	Delete(ctx context.Context, id string) error
}
