package http

import (
	"encoding/json"
	"net/http"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/worker"
	"github.com/geoattendance/geoattendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WorkerHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
	ImportCSV(w http.ResponseWriter, r *http.Request)
}

type workerHandlerImpl struct {
	workerService worker.WorkerService
}

func NewWorkerHandler(workerService worker.WorkerService) WorkerHandler {
	return &workerHandlerImpl{workerService: workerService}
}

// List implements WorkerHandler
func (h *workerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := worker.Filter{
		ActiveOnly: r.URL.Query().Get("active_only") == "true",
	}
	if siteID := r.URL.Query().Get("site_id"); siteID != "" {
		filter.SiteID = &siteID
	}

	workers, err := h.workerService.ListWorkers(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, workers)
}

// Get implements WorkerHandler
func (h *workerHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		response.BadRequest(w, "Worker email is required", nil)
		return
	}

	result, err := h.workerService.GetWorker(r.Context(), email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements WorkerHandler
func (h *workerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req worker.CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.workerService.CreateWorker(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Worker created successfully", result)
}

// Update implements WorkerHandler
func (h *workerHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		response.BadRequest(w, "Worker email is required", nil)
		return
	}

	var req worker.UpdateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.workerService.UpdateWorker(r.Context(), email, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker updated successfully", nil)
}

// Deactivate implements WorkerHandler
func (h *workerHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		response.BadRequest(w, "Worker email is required", nil)
		return
	}

	if err := h.workerService.DeactivateWorker(r.Context(), email); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker deactivated", nil)
}

// Delete implements WorkerHandler
func (h *workerHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		response.BadRequest(w, "Worker email is required", nil)
		return
	}

	if err := h.workerService.DeleteWorker(r.Context(), email); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker deleted", nil)
}

// ExportCSV implements WorkerHandler
func (h *workerHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="workers.csv"`)

	if err := h.workerService.ExportCSV(r.Context(), w); err != nil {
		response.HandleError(w, err)
		return
	}
}

// ImportCSV implements WorkerHandler. Accepts a multipart upload under the
// "file" field or a raw CSV body.
func (h *workerHandlerImpl) ImportCSV(w http.ResponseWriter, r *http.Request) {
	body := r.Body

	contentType := r.Header.Get("Content-Type")
	if len(contentType) >= 19 && contentType[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			response.BadRequest(w, "Field 'file' is required", nil)
			return
		}
		defer file.Close()
		body = file
	}

	result, err := h.workerService.ImportCSV(r.Context(), body)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.SuccessWithMessage(w, "Import completed", result)
}
