package http

import (
	"encoding/json"
	"net/http"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/site"
	"github.com/geoattendance/geoattendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SiteHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
	ImportCSV(w http.ResponseWriter, r *http.Request)
}

type siteHandlerImpl struct {
	siteService site.SiteService
}

func NewSiteHandler(siteService site.SiteService) SiteHandler {
	return &siteHandlerImpl{siteService: siteService}
}

// List implements SiteHandler
func (h *siteHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	sites, err := h.siteService.ListSites(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sites)
}

// Get implements SiteHandler
func (h *siteHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Site ID is required", nil)
		return
	}

	result, err := h.siteService.GetSite(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements SiteHandler
func (h *siteHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req site.CreateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.siteService.CreateSite(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Site created successfully", result)
}

// Update implements SiteHandler
func (h *siteHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Site ID is required", nil)
		return
	}

	var req site.UpdateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.siteService.UpdateSite(r.Context(), id, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Site updated successfully", nil)
}

// Delete implements SiteHandler
func (h *siteHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Site ID is required", nil)
		return
	}

	if err := h.siteService.DeleteSite(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Site deleted", nil)
}

// ExportCSV implements SiteHandler
func (h *siteHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="sites.csv"`)

	if err := h.siteService.ExportCSV(r.Context(), w); err != nil {
		response.HandleError(w, err)
		return
	}
}

// ImportCSV implements SiteHandler
func (h *siteHandlerImpl) ImportCSV(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.siteService.ImportCSV(r.Context(), body)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.SuccessWithMessage(w, "Import completed", result)
}
