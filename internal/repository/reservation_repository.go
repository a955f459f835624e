package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  DATE and
// TIME columns are formatted to their wire strings inside SQL so the Go
// layer never juggles driver-specific date types.  All timestamps are
// assumed to be stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for callers that need to open
// transactions spanning more than one repository.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `reservation_id, first_name, last_name, mobile_number,
       DATE_FORMAT(reservation_date, '%Y-%m-%d'),
       TIME_FORMAT(reservation_time, '%H:%i:%s'),
       people, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(
		&res.ID, &res.FirstName, &res.LastName, &res.MobileNumber,
		&res.Date, &res.Time, &res.People, &res.Status,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetByID returns a single reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ListByDate returns the reservations for a calendar date ordered by
// reservation time.  Finished reservations are excluded from listings.
// When no reservations exist an empty slice is returned.
func (r *ReservationRepo) ListByDate(ctx context.Context, date string) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + `
	      FROM reservations
	      WHERE reservation_date = ? AND status <> 'finished'
	      ORDER BY reservation_time`
	return r.queryList(ctx, q, date)
}

// SearchByMobile returns reservations whose mobile number contains the
// digits of the query, ignoring formatting characters on both sides.
// Partial numbers match; results are ordered by reservation date.
func (r *ReservationRepo) SearchByMobile(ctx context.Context, mobile string) ([]model.Reservation, error) {
	digits := strings.Map(func(c rune) rune {
		if c >= '0' && c <= '9' {
			return c
		}
		return -1
	}, mobile)
	q := `SELECT ` + reservationColumns + `
	      FROM reservations
	      WHERE REPLACE(REPLACE(REPLACE(REPLACE(mobile_number, '-', ''), '(', ''), ')', ''), ' ', '')
	            LIKE CONCAT('%', ?, '%')
	      ORDER BY reservation_date`
	return r.queryList(ctx, q, digits)
}

func (r *ReservationRepo) queryList(ctx context.Context, q string, arg any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new reservation and returns the stored row with its
// generated identifier and timestamps.  Status defaults to booked when
// the payload carries none.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) (*model.Reservation, error) {
	status := res.Status
	if status == "" {
		status = model.StatusBooked
	}
	const ins = `INSERT INTO reservations
	             (first_name, last_name, mobile_number, reservation_date, reservation_time, people, status)
	             VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, ins,
		res.FirstName, res.LastName, res.MobileNumber,
		res.Date, res.Time, res.People, status,
	)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update replaces the editable fields of an existing reservation and
// returns the stored row.  The caller is responsible for having
// validated the payload and the current status beforehand.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) (*model.Reservation, error) {
	const q = `UPDATE reservations
	           SET first_name = ?, last_name = ?, mobile_number = ?,
	               reservation_date = ?, reservation_time = ?, people = ?
	           WHERE reservation_id = ?`
	result, err := r.db.ExecContext(ctx, q,
		res.FirstName, res.LastName, res.MobileNumber,
		res.Date, res.Time, res.People, res.ID,
	)
	if err != nil {
		return nil, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op
		// update, so confirm existence before reporting not found.
		if _, getErr := r.GetByID(ctx, res.ID); getErr != nil {
			return nil, getErr
		}
	}
	return r.GetByID(ctx, res.ID)
}

// UpdateStatus persists a status change and returns the stored row.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string) (*model.Reservation, error) {
	const q = `UPDATE reservations SET status = ? WHERE reservation_id = ?`
	if _, err := r.db.ExecContext(ctx, q, status, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}
