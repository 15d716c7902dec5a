package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/attendance"
	"github.com/geoattendance/geoattendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListToday(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	CreateManual(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// filterFromQuery builds a record filter from list query parameters. Date
// bounds are whole calendar days.
func filterFromQuery(r *http.Request) (attendance.Filter, error) {
	filter := attendance.Filter{}
	q := r.URL.Query()

	if startDate := q.Get("start_date"); startDate != "" {
		start, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &start
	}
	if endDate := q.Get("end_date"); endDate != "" {
		end, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return filter, err
		}
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}
	if email := q.Get("worker_email"); email != "" {
		filter.WorkerEmail = &email
	}
	if siteID := q.Get("site_id"); siteID != "" {
		filter.SiteID = &siteID
	}

	return filter, nil
}

// List implements AttendanceHandler
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		response.BadRequest(w, "Dates must be in YYYY-MM-DD format", nil)
		return
	}

	records, err := h.attendanceService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListToday implements AttendanceHandler
func (h *attendanceHandlerImpl) ListToday(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.ListToday(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Get implements AttendanceHandler
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	result, err := h.attendanceService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateManual implements AttendanceHandler
func (h *attendanceHandlerImpl) CreateManual(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateManualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CreateManual(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance record created", result)
}

// Update implements AttendanceHandler
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	var req attendance.UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.attendanceService.UpdateRecord(r.Context(), id, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record updated", nil)
}

// ClockOut implements AttendanceHandler
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Session closed", result)
}

// Stats implements AttendanceHandler
func (h *attendanceHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		response.BadRequest(w, "Dates must be in YYYY-MM-DD format", nil)
		return
	}

	stats, err := h.attendanceService.GetStats(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}
