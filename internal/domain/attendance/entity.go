package attendance

import (
	"time"
)

// Record is a single attendance session captured by the mobile clock-in app
// or entered manually by an administrator. A nil ClockOut means the session
// is still open and the worker is on site.
type Record struct {
	ID                 string
	WorkerEmail        string
	SiteID             *string
	ClockIn            time.Time
	ClockOut           *time.Time
	Hours              float64
	PayAmount          float64
	PayRate            float64
	ClockInLatitude    *float64
	ClockInLongitude   *float64
	IsManual           bool
	IsLocationVerified bool
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined for list views
	WorkerName *string
	SiteName   *string
}

// IsOpen reports whether the worker has not clocked out yet.
func (r Record) IsOpen() bool {
	return r.ClockOut == nil
}

// HasClockIn reports whether the record carries a usable clock-in time.
// Records without one are excluded from every aggregate.
func (r Record) HasClockIn() bool {
	return !r.ClockIn.IsZero()
}

// DateKey returns the calendar date bucket of the session.
func (r Record) DateKey() string {
	return r.ClockIn.Format("2006-01-02")
}

// WorkedHours returns the stored duration, deriving it from the clock pair
// when the device did not precompute it.
func (r Record) WorkedHours() float64 {
	if r.Hours > 0 {
		return r.Hours
	}
	if r.ClockOut != nil && r.ClockOut.After(r.ClockIn) {
		return r.ClockOut.Sub(r.ClockIn).Hours()
	}
	return 0
}

// Earnings returns the stored pay amount, deriving it from worked hours and
// the captured pay rate when absent.
func (r Record) Earnings() float64 {
	if r.PayAmount > 0 {
		return r.PayAmount
	}
	return r.WorkedHours() * r.PayRate
}
