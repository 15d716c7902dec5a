package site

import (
	"context"
	"io"
)

type SiteService interface {
	GetSite(ctx context.Context, id string) (Site, error)
	ListSites(ctx context.Context, activeOnly bool) ([]Site, error)
	CreateSite(ctx context.Context, req CreateSiteRequest) (Site, error)
	UpdateSite(ctx context.Context, id string, req UpdateSiteRequest) error
	DeleteSite(ctx context.Context, id string) error

	ExportCSV(ctx context.Context, w io.Writer) error
	ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error)
}
