package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// TableRepo provides CRUD and seating operations for dining tables.
// Seat and Finish update the table and its linked reservation inside a
// single transaction so a table is never left occupied by a
// reservation in the wrong status.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

const tableColumns = `table_id, table_name, capacity, reservation_id, created_at, updated_at`

func scanTable(row rowScanner) (*model.Table, error) {
	var t model.Table
	var resID sql.NullInt64
	err := row.Scan(&t.ID, &t.TableName, &t.Capacity, &resID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if resID.Valid {
		id := uint64(resID.Int64)
		t.ReservationID = &id
	}
	return &t, nil
}

// Create inserts a table and returns the stored row.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) (*model.Table, error) {
	const ins = `INSERT INTO tables (table_name, capacity) VALUES (?, ?)`
	result, err := r.db.ExecContext(ctx, ins, t.TableName, t.Capacity)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// List returns every table ordered by name.
func (r *TableRepo) List(ctx context.Context) ([]model.Table, error) {
	q := `SELECT ` + tableColumns + ` FROM tables ORDER BY table_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a single table or ErrTableNotFound.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	q := `SELECT ` + tableColumns + ` FROM tables WHERE table_id = ?`
	t, err := scanTable(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Seat assigns a reservation to a free table and marks the reservation
// seated, all in one transaction.  The row is locked while checking
// occupancy so two concurrent seatings of the same table cannot both
// succeed.  Returns ErrTableNotFound or ErrTableOccupied as applicable.
func (r *TableRepo) Seat(ctx context.Context, tableID, reservationID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var current sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT reservation_id FROM tables WHERE table_id = ? FOR UPDATE`, tableID,
	).Scan(&current)
	if err == sql.ErrNoRows {
		return ErrTableNotFound
	}
	if err != nil {
		return err
	}
	if current.Valid {
		return ErrTableOccupied
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE tables SET reservation_id = ? WHERE table_id = ?`, reservationID, tableID,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE reservation_id = ?`, model.StatusSeated, reservationID,
	); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Finish frees an occupied table and marks its reservation finished,
// returning the identifier of the freed reservation.  Returns
// ErrTableNotFound or ErrTableNotOccupied as applicable.
func (r *TableRepo) Finish(ctx context.Context, tableID uint64) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var current sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT reservation_id FROM tables WHERE table_id = ? FOR UPDATE`, tableID,
	).Scan(&current)
	if err == sql.ErrNoRows {
		return 0, ErrTableNotFound
	}
	if err != nil {
		return 0, err
	}
	if !current.Valid {
		return 0, ErrTableNotOccupied
	}
	reservationID := uint64(current.Int64)
	if _, err := tx.ExecContext(ctx,
		`UPDATE tables SET reservation_id = NULL WHERE table_id = ?`, tableID,
	); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE reservation_id = ?`, model.StatusFinished, reservationID,
	); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return reservationID, nil
}
