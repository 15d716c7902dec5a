package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/attendance"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/site"
	"github.com/geoattendance/geoattendance-backend-go/internal/domain/worker"
	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/validator"
)

type attendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	workerRepo     worker.WorkerRepository
	siteRepo       site.SiteRepository
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	workerRepo worker.WorkerRepository,
	siteRepo site.SiteRepository,
) attendance.AttendanceService {
	return &attendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		workerRepo:     workerRepo,
		siteRepo:       siteRepo,
	}
}

// GetRecord implements attendance.AttendanceService.
func (s *attendanceServiceImpl) GetRecord(ctx context.Context, id string) (attendance.Record, error) {
	return s.attendanceRepo.GetByID(ctx, id)
}

// ListRecords implements attendance.AttendanceService.
func (s *attendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	return s.attendanceRepo.List(ctx, filter)
}

// ListToday implements attendance.AttendanceService. Today is the server's
// local calendar day.
func (s *attendanceServiceImpl) ListToday(ctx context.Context) ([]attendance.Record, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)

	return s.attendanceRepo.List(ctx, attendance.Filter{
		StartDate: &start,
		EndDate:   &end,
	})
}

// CreateManual implements attendance.AttendanceService. The worker's current
// pay rate is captured on the record so later rate changes do not rewrite
// history. A closed pair precomputes hours and pay.
func (s *attendanceServiceImpl) CreateManual(ctx context.Context, req attendance.CreateManualRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	wk, err := s.workerRepo.GetByEmail(ctx, req.WorkerEmail)
	if err != nil {
		return attendance.Record{}, err
	}

	if req.SiteID != nil && *req.SiteID != "" {
		if _, err := s.siteRepo.GetByID(ctx, *req.SiteID); err != nil {
			return attendance.Record{}, err
		}
	}

	clockIn, _ := validator.IsValidDateTime(req.ClockIn)

	rec := attendance.Record{
		ID:          uuid.NewString(),
		WorkerEmail: wk.Email,
		SiteID:      req.SiteID,
		ClockIn:     clockIn,
		PayRate:     wk.PayRate,
		IsManual:    true,
	}

	if req.ClockOut != nil {
		clockOut, _ := validator.IsValidDateTime(*req.ClockOut)
		rec.ClockOut = &clockOut
		rec.Hours = clockOut.Sub(clockIn).Hours()
		rec.PayAmount = rec.Hours * wk.PayRate
	}

	created, err := s.attendanceRepo.Create(ctx, rec)
	if err != nil {
		return attendance.Record{}, err
	}

	created.WorkerName = &wk.Name
	return created, nil
}

// UpdateRecord implements attendance.AttendanceService. Hours and pay are
// recomputed whenever the resulting record has a closed clock pair.
func (s *attendanceServiceImpl) UpdateRecord(ctx context.Context, id string, req attendance.UpdateRecordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	rec, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if req.SiteID != nil {
		if *req.SiteID != "" {
			if _, err := s.siteRepo.GetByID(ctx, *req.SiteID); err != nil {
				return err
			}
			rec.SiteID = req.SiteID
		} else {
			rec.SiteID = nil
		}
	}
	if req.ClockIn != nil {
		clockIn, _ := validator.IsValidDateTime(*req.ClockIn)
		rec.ClockIn = clockIn
	}
	if req.ClockOut != nil {
		clockOut, _ := validator.IsValidDateTime(*req.ClockOut)
		rec.ClockOut = &clockOut
	}
	if req.IsLocationVerified != nil {
		rec.IsLocationVerified = *req.IsLocationVerified
	}

	if rec.ClockOut != nil {
		if !rec.ClockOut.After(rec.ClockIn) {
			return validator.ValidationErrors{{
				Field:   "clock_out",
				Message: "clock_out must be after clock_in",
			}}
		}
		rec.Hours = rec.ClockOut.Sub(rec.ClockIn).Hours()
		rec.PayAmount = rec.Hours * rec.PayRate
	}

	return s.attendanceRepo.Update(ctx, rec)
}

// ClockOut implements attendance.AttendanceService. It closes an open
// session at the current time and settles hours and pay.
func (s *attendanceServiceImpl) ClockOut(ctx context.Context, id string) (attendance.Record, error) {
	rec, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.Record{}, err
	}
	if !rec.IsOpen() {
		return attendance.Record{}, attendance.ErrSessionNotOpen
	}

	now := time.Now()
	hours := now.Sub(rec.ClockIn).Hours()
	if hours < 0 {
		hours = 0
	}
	payAmount := hours * rec.PayRate

	if err := s.attendanceRepo.CloseSession(ctx, id, now, hours, payAmount); err != nil {
		return attendance.Record{}, err
	}

	rec.ClockOut = &now
	rec.Hours = hours
	rec.PayAmount = payAmount
	return rec, nil
}

// GetStats implements attendance.AttendanceService.
func (s *attendanceServiceImpl) GetStats(ctx context.Context, filter attendance.Filter) (attendance.Stats, error) {
	records, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.Stats{}, err
	}

	return ComputeStats(records), nil
}

// ComputeStats derives the quick aggregate shown above the attendance list.
func ComputeStats(records []attendance.Record) attendance.Stats {
	stats := attendance.Stats{}
	workers := make(map[string]struct{})
	sites := make(map[string]struct{})
	days := make(map[string]struct{})

	for _, rec := range records {
		if !rec.HasClockIn() {
			continue
		}
		stats.TotalRecords++
		stats.TotalHours += rec.WorkedHours()
		stats.TotalEarnings += rec.Earnings()
		workers[rec.WorkerEmail] = struct{}{}
		if rec.SiteID != nil && *rec.SiteID != "" {
			sites[*rec.SiteID] = struct{}{}
		}
		days[rec.DateKey()] = struct{}{}
	}

	stats.UniqueWorkers = len(workers)
	stats.UniqueSites = len(sites)
	if len(days) > 0 {
		stats.AvgHoursPerDay = stats.TotalHours / float64(len(days))
	}

	return stats
}
