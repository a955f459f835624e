package model

import "time"

// Table represents a physical table in the dining room.  A table is
// occupied while ReservationID is non-nil; seating and freeing a table
// always updates the linked reservation's status in the same
// transaction.
//
// Fields:
//  ID            – primary key identifier.
//  TableName     – display name, at least two characters.
//  Capacity      – number of guests the table holds.
//  ReservationID – reservation currently seated here (nullable).
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Table struct {
	ID            uint64    `json:"table_id"`       // tables.table_id
	TableName     string    `json:"table_name"`     // tables.table_name
	Capacity      int       `json:"capacity"`       // tables.capacity
	ReservationID *uint64   `json:"reservation_id"` // tables.reservation_id (nullable)
	CreatedAt     time.Time `json:"created_at"`     // tables.created_at
	UpdatedAt     time.Time `json:"updated_at"`     // tables.updated_at
}
