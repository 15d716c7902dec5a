package worker

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/site"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/worker"
)

func strPtr(s string) *string { return &s }

type stubWorkerRepo struct {
	workers map[string]worker.Worker
	created []worker.Worker
	updated map[string]worker.UpdateWorkerRequest
}

func newStubWorkerRepo(workers ...worker.Worker) *stubWorkerRepo {
	repo := &stubWorkerRepo{
		workers: make(map[string]worker.Worker),
		updated: make(map[string]worker.UpdateWorkerRequest),
	}
	for _, wk := range workers {
		repo.workers[wk.Email] = wk
	}
	return repo
}

func (r *stubWorkerRepo) GetByEmail(ctx context.Context, email string) (worker.Worker, error) {
	wk, ok := r.workers[email]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return wk, nil
}

func (r *stubWorkerRepo) List(ctx context.Context, filter worker.Filter) ([]worker.Worker, error) {
	out := []worker.Worker{}
	for _, wk := range r.workers {
		out = append(out, wk)
	}
	return out, nil
}

func (r *stubWorkerRepo) Create(ctx context.Context, newWorker worker.Worker) (worker.Worker, error) {
	if _, exists := r.workers[newWorker.Email]; exists {
		return worker.Worker{}, worker.ErrEmailExists
	}
	r.workers[newWorker.Email] = newWorker
	r.created = append(r.created, newWorker)
	return newWorker, nil
}

func (r *stubWorkerRepo) Update(ctx context.Context, email string, req worker.UpdateWorkerRequest) error {
	if _, ok := r.workers[email]; !ok {
		return worker.ErrWorkerNotFound
	}
	r.updated[email] = req
	return nil
}

func (r *stubWorkerRepo) Delete(ctx context.Context, email string) error {
	if _, ok := r.workers[email]; !ok {
		return worker.ErrWorkerNotFound
	}
	delete(r.workers, email)
	return nil
}

func (r *stubWorkerRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.workers[email]
	return ok, nil
}

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

func TestExportCSV(t *testing.T) {
	repo := newStubWorkerRepo(worker.Worker{
		Email:       "ana@example.com",
		Name:        "Ana Silva",
		PhoneNumber: strPtr("+351911222333"),
		SiteName:    strPtr("North Yard"),
		PayRate:     12.5,
		IsActive:    true,
	})
	svc := NewWorkerService(repo, newStubSiteRepo())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Name,Email,Phone,Site,Pay Rate,Status", lines[0])
	assert.Equal(t, "Ana Silva,ana@example.com,+351911222333,North Yard,12.50,active", lines[1])
}

func TestImportCSV(t *testing.T) {
	northYard := site.Site{ID: "site-1", Name: "North Yard"}

	t.Run("valid rows are created", func(t *testing.T) {
		repo := newStubWorkerRepo()
		svc := NewWorkerService(repo, newStubSiteRepo(northYard))

		input := strings.Join([]string{
			"Name,Email,Phone,Site,Pay Rate,Status",
			"Ana Silva,ana@example.com,+351911222333,North Yard,12.50,active",
			"Bob Jones,bob@example.com,,,15,inactive",
		}, "\n")

		result, err := svc.ImportCSV(context.Background(), strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, 2, result.Imported)
		assert.Zero(t, result.Skipped)
		require.Len(t, repo.created, 2)
		assert.Equal(t, "site-1", *repo.created[0].SiteID)
		assert.InDelta(t, 12.5, repo.created[0].PayRate, 1e-9)

		// Inactive status applied after creation.
		req, ok := repo.updated["bob@example.com"]
		require.True(t, ok)
		require.NotNil(t, req.IsActive)
		assert.False(t, *req.IsActive)
	})

	t.Run("bad rows are skipped and reported", func(t *testing.T) {
		repo := newStubWorkerRepo(worker.Worker{Email: "taken@example.com", Name: "Taken"})
		svc := NewWorkerService(repo, newStubSiteRepo(northYard))

		input := strings.Join([]string{
			"Name,Email,Phone,Site,Pay Rate,Status",
			"No Email,,,,10,active",
			"Bad Site,cara@example.com,,Ghost Yard,10,active",
			"Dup,taken@example.com,,,10,active",
			"Ok Worker,dan@example.com,,,10,active",
		}, "\n")

		result, err := svc.ImportCSV(context.Background(), strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, 1, result.Imported)
		assert.Equal(t, 3, result.Skipped)
		assert.Len(t, result.Errors, 3)
	})

	t.Run("missing header aborts", func(t *testing.T) {
		svc := NewWorkerService(newStubWorkerRepo(), newStubSiteRepo())

		_, err := svc.ImportCSV(context.Background(), strings.NewReader(""))
		assert.Error(t, err)
	})
}
