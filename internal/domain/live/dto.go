package live

import (
	"time"
)

// ActiveWorker is one currently clocked-in worker with elapsed time and
// running pay computed at snapshot time.
type ActiveWorker struct {
	RecordID           string    `json:"record_id"`
	WorkerEmail        string    `json:"worker_email"`
	WorkerName         string    `json:"worker_name"`
	SiteID             string    `json:"site_id,omitempty"`
	SiteName           string    `json:"site_name"`
	PayRate            float64   `json:"pay_rate"`
	ClockIn            time.Time `json:"clock_in"`
	ElapsedHours       float64   `json:"elapsed_hours"`
	CurrentEarnings    float64   `json:"current_earnings"`
	IsLocationVerified bool      `json:"is_location_verified"`
}

// Snapshot is one refresh of the live tracking screen.
type Snapshot struct {
	TakenAt       time.Time      `json:"taken_at"`
	ActiveWorkers []ActiveWorker `json:"active_workers"`
}
