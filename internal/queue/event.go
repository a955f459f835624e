// Package queue defines the message payloads exchanged over the broker
// and the background consumer that records them.
package queue

// ReservationStatusEvent is published whenever a reservation is created
// or changes status (booked, seated, finished, cancelled).  It carries
// enough information for downstream consumers to log or notify without
// querying the primary database.
type ReservationStatusEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	MobileNumber  string `json:"mobile_number"`
	Date          string `json:"reservation_date"`
	Time          string `json:"reservation_time"`
	People        int    `json:"people"`
	Status        string `json:"status"`
	ChangedAt     string `json:"changed_at"`
}
