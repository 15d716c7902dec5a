package site

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/site"
)

type stubSiteRepo struct {
	sites map[string]site.Site
}

func newStubSiteRepo(sites ...site.Site) *stubSiteRepo {
	repo := &stubSiteRepo{sites: make(map[string]site.Site)}
	for _, st := range sites {
		repo.sites[st.ID] = st
	}
	return repo
}

func (r *stubSiteRepo) GetByID(ctx context.Context, id string) (site.Site, error) {
	st, ok := r.sites[id]
	if !ok {
		return site.Site{}, site.ErrSiteNotFound
	}
	return st, nil
}

func (r *stubSiteRepo) List(ctx context.Context, activeOnly bool) ([]site.Site, error) {
	out := []site.Site{}
	for _, st := range r.sites {
		out = append(out, st)
	}
	return out, nil
}

func (r *stubSiteRepo) Create(ctx context.Context, newSite site.Site) (site.Site, error) {
	r.sites[newSite.ID] = newSite
	return newSite, nil
}

func (r *stubSiteRepo) Update(ctx context.Context, id string, req site.UpdateSiteRequest) error {
	if _, ok := r.sites[id]; !ok {
		return site.ErrSiteNotFound
	}
	return nil
}

func (r *stubSiteRepo) Delete(ctx context.Context, id string) error {
	delete(r.sites, id)
	return nil
}

func TestSiteExportCSV(t *testing.T) {
	repo := newStubSiteRepo(site.Site{
		ID:           "site-1",
		Name:         "North Yard",
		Address:      "1 Dock Rd",
		Latitude:     38.7223,
		Longitude:    -9.1393,
		RadiusMeters: 150,
		IsActive:     true,
	})
	svc := NewSiteService(repo)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Name,Address,Latitude,Longitude,Radius Meters,Status", lines[0])
	assert.Equal(t, "North Yard,1 Dock Rd,38.722300,-9.139300,150,active", lines[1])
}

func TestSiteImportCSV(t *testing.T) {
	t.Run("valid rows are created with generated ids", func(t *testing.T) {
		repo := newStubSiteRepo()
		svc := NewSiteService(repo)

		input := strings.Join([]string{
			"Name,Address,Latitude,Longitude,Radius Meters,Status",
			"North Yard,1 Dock Rd,38.7223,-9.1393,150,active",
		}, "\n")

		result, err := svc.ImportCSV(context.Background(), strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, 1, result.Imported)
		require.Len(t, repo.sites, 1)
		for _, st := range repo.sites {
			assert.NotEmpty(t, st.ID)
			assert.Equal(t, "North Yard", st.Name)
		}
	})

	t.Run("duplicate names and bad coordinates are skipped", func(t *testing.T) {
		repo := newStubSiteRepo(site.Site{ID: "site-1", Name: "North Yard"})
		svc := NewSiteService(repo)

		input := strings.Join([]string{
			"Name,Address,Latitude,Longitude,Radius Meters,Status",
			"north yard,1 Dock Rd,38.7223,-9.1393,150,active",
			"Far Yard,2 Dock Rd,123.0,-9.1393,150,active",
		}, "\n")

		result, err := svc.ImportCSV(context.Background(), strings.NewReader(input))
		require.NoError(t, err)

		assert.Zero(t, result.Imported)
		assert.Equal(t, 2, result.Skipped)
		assert.Len(t, result.Errors, 2)
	})
}
