package response

import (
	"errors"
	"net/http"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/attendance"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/report"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/site"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/worker"
	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Site domain errors
	case errors.Is(err, site.ErrSiteNotFound):
		NotFound(w, "Site not found")
	case errors.Is(err, site.ErrNameExists):
		Conflict(w, "Site name already in use")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrSessionNotOpen):
		Conflict(w, "Session is not open")
	case errors.Is(err, attendance.ErrSessionStillOpen):
		Conflict(w, "Session is still open")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, "End date must be after start date", nil)
	case errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported export format", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
