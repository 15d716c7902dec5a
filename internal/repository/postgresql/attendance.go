package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/attendance"
	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const recordColumns = `
	a.id, a.worker_email, a.site_id, a.clock_in, a.clock_out,
	COALESCE(a.hours, 0), COALESCE(a.pay_amount, 0), COALESCE(a.pay_rate, 0),
	a.clock_in_latitude, a.clock_in_longitude, a.is_manual, a.is_location_verified,
	a.created_at, a.updated_at, w.name, s.name
`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.WorkerEmail, &rec.SiteID, &rec.ClockIn, &rec.ClockOut,
		&rec.Hours, &rec.PayAmount, &rec.PayRate,
		&rec.ClockInLatitude, &rec.ClockInLongitude, &rec.IsManual, &rec.IsLocationVerified,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.WorkerName, &rec.SiteName,
	)
	return rec, err
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records a
		LEFT JOIN workers w ON a.worker_email = w.email
		LEFT JOIN sites s ON a.site_id = s.id
		WHERE a.id = $1
	`, recordColumns)

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record %s: %w", id, err)
	}

	return rec, nil
}

// List implements attendance.AttendanceRepository. Open-ended date bounds
// fetch the whole history; empty results return an empty slice.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records a
		LEFT JOIN workers w ON a.worker_email = w.email
		LEFT JOIN sites s ON a.site_id = s.id
		WHERE 1=1
	`, recordColumns)

	args := []interface{}{}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND a.clock_in >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND a.clock_in <= $%d", len(args))
	}
	if filter.WorkerEmail != nil {
		args = append(args, *filter.WorkerEmail)
		query += fmt.Sprintf(" AND a.worker_email = $%d", len(args))
	}
	if filter.SiteID != nil {
		args = append(args, *filter.SiteID)
		query += fmt.Sprintf(" AND a.site_id = $%d", len(args))
	}
	query += " ORDER BY a.clock_in DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	records := []attendance.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return records, nil
}

// ListOpenSessions implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListOpenSessions(ctx context.Context, since time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records a
		LEFT JOIN workers w ON a.worker_email = w.email
		LEFT JOIN sites s ON a.site_id = s.id
		WHERE a.clock_out IS NULL AND a.clock_in >= $1
		ORDER BY a.clock_in ASC
	`, recordColumns)

	rows, err := q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}
	defer rows.Close()

	records := []attendance.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan open session: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return records, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, worker_email, site_id, clock_in, clock_out, hours, pay_amount, pay_rate,
			clock_in_latitude, clock_in_longitude, is_manual, is_location_verified,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID, record.WorkerEmail, record.SiteID, record.ClockIn, record.ClockOut,
		record.Hours, record.PayAmount, record.PayRate,
		record.ClockInLatitude, record.ClockInLongitude, record.IsManual, record.IsLocationVerified,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET site_id = $2, clock_in = $3, clock_out = $4, hours = $5, pay_amount = $6,
			is_location_verified = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updated string
	err := q.QueryRow(ctx, query,
		record.ID, record.SiteID, record.ClockIn, record.ClockOut,
		record.Hours, record.PayAmount, record.IsLocationVerified,
	).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update attendance record %s: %w", record.ID, err)
	}

	return nil
}

// CloseSession implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CloseSession(ctx context.Context, id string, clockOut time.Time, hours, payAmount float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET clock_out = $2, hours = $3, pay_amount = $4, updated_at = NOW()
		WHERE id = $1 AND clock_out IS NULL
		RETURNING id
	`

	var closed string
	if err := q.QueryRow(ctx, query, id, clockOut, hours, payAmount).Scan(&closed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrSessionNotOpen
		}
		return fmt.Errorf("failed to close attendance session %s: %w", id, err)
	}

	return nil
}
