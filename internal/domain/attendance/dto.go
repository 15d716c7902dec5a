package attendance

import (
	"time"

	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/validator"
)

// Filter selects records for a report or screen load. Missing date bounds
// fetch everything.
type Filter struct {
	StartDate   *time.Time
	EndDate     *time.Time
	WorkerEmail *string
	SiteID      *string
}

type CreateManualRequest struct {
	WorkerEmail string  `json:"worker_email"`
	SiteID      *string `json:"site_id"`
	ClockIn     string  `json:"clock_in"`
	ClockOut    *string `json:"clock_out"`
	Notes       *string `json:"notes"`
}

func (r *CreateManualRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_email",
			Message: "worker_email is required",
		})
	}

	clockIn, okIn := validator.IsValidDateTime(r.ClockIn)
	if !okIn {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "clock_in must be an ISO8601 timestamp",
		})
	}

	if r.ClockOut != nil {
		clockOut, okOut := validator.IsValidDateTime(*r.ClockOut)
		if !okOut {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be an ISO8601 timestamp",
			})
		} else if okIn && !clockOut.After(clockIn) {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be after clock_in",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRecordRequest struct {
	SiteID             *string `json:"site_id"`
	ClockIn            *string `json:"clock_in"`
	ClockOut           *string `json:"clock_out"`
	IsLocationVerified *bool   `json:"is_location_verified"`
}

func (r *UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ClockIn != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in",
				Message: "clock_in must be an ISO8601 timestamp",
			})
		}
	}

	if r.ClockOut != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be an ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Stats is the quick aggregate shown above the attendance list.
type Stats struct {
	TotalRecords   int     `json:"total_records"`
	TotalHours     float64 `json:"total_hours"`
	TotalEarnings  float64 `json:"total_earnings"`
	UniqueWorkers  int     `json:"unique_workers"`
	UniqueSites    int     `json:"unique_sites"`
	AvgHoursPerDay float64 `json:"avg_hours_per_day"`
}
