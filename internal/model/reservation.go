package model

import "time"

// Reservation statuses.  A reservation is created as StatusBooked and
// moves through the transition table below; StatusFinished and
// StatusCancelled are terminal.
const (
	StatusBooked    = "booked"
	StatusSeated    = "seated"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

// transitions maps each status to the set of statuses it may legally
// move to.  Terminal statuses map to an empty set.
var transitions = map[string][]string{
	StatusBooked:    {StatusSeated, StatusCancelled},
	StatusSeated:    {StatusFinished, StatusCancelled},
	StatusFinished:  {},
	StatusCancelled: {},
}

// KnownStatus reports whether s is a member of the status enumeration.
func KnownStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether a reservation may move from one status
// to another according to the transition table.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Reservation records a party's booking at the restaurant.  Date and
// Time carry the wire formats ("2006-01-02" and "15:04:05") so the
// JSON representation matches what clients submit.
//
// Fields:
//  ID           – primary key identifier, assigned by the store.
//  FirstName    – guest first name.
//  LastName     – guest last name.
//  MobileNumber – contact number, free-form formatting.
//  Date         – calendar date of the reservation.
//  Time         – time of day of the reservation.
//  People       – party size, strictly positive.
//  Status       – state of the reservation (see transition table).
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Reservation struct {
	ID           uint64    `json:"reservation_id"`   // reservations.reservation_id
	FirstName    string    `json:"first_name"`       // reservations.first_name
	LastName     string    `json:"last_name"`        // reservations.last_name
	MobileNumber string    `json:"mobile_number"`    // reservations.mobile_number
	Date         string    `json:"reservation_date"` // reservations.reservation_date
	Time         string    `json:"reservation_time"` // reservations.reservation_time
	People       int       `json:"people"`           // reservations.people
	Status       string    `json:"status"`           // reservations.status
	CreatedAt    time.Time `json:"created_at"`       // reservations.created_at
	UpdatedAt    time.Time `json:"updated_at"`       // reservations.updated_at
}
