package worker

import (
	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/validator"
)

type Filter struct {
	SiteID     *string
	ActiveOnly bool
}

type CreateWorkerRequest struct {
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	SiteID      *string `json:"site_id"`
	PayRate     float64 `json:"pay_rate"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is not a valid address",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.PayRate < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_rate",
			Message: "pay_rate must be non-negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateWorkerRequest struct {
	Name        *string  `json:"name"`
	PhoneNumber *string  `json:"phone_number"`
	SiteID      *string  `json:"site_id"`
	PayRate     *float64 `json:"pay_rate"`
	IsActive    *bool    `json:"is_active"`
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.PayRate != nil && *r.PayRate < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_rate",
			Message: "pay_rate must be non-negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ImportResult summarizes a roster CSV import.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
