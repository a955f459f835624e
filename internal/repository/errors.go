// Package repository provides raw-SQL data access for reservations and
// tables.  These sentinel values let handlers and pipeline stages
// distinguish failure scenarios without inspecting SQL errors: a
// missing row becomes a 404, a seating conflict becomes a 400.
package repository

import "errors"

// ErrReservationNotFound is returned when no reservation exists for the
// requested identifier.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrTableNotFound is returned when no table exists for the requested
// identifier.
var ErrTableNotFound = errors.New("table not found")

// ErrTableOccupied is returned when seating is attempted at a table
// that already holds a reservation.
var ErrTableOccupied = errors.New("table is occupied")

// ErrTableNotOccupied is returned when finishing is attempted at a
// table that holds no reservation.
var ErrTableNotOccupied = errors.New("table is not occupied")
