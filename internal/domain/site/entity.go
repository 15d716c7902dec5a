package site

import (
	"time"
)

// Site is a geofenced work location. The geofence itself (latitude,
// longitude, radius) is enforced by the mobile client at clock-in; the
// backend only stores it.
type Site struct {
	ID           string
	Name         string
	Address      string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
