package worker

import (
	"time"
)

// Worker is a field employee tracked by the mobile clock-in app. The email
// doubles as the worker's identifier across attendance records.
type Worker struct {
	Email       string
	Name        string
	PhoneNumber *string
	SiteID      *string
	SiteName    *string
	PayRate     float64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
