package pipeline

import (
	"fmt"
	"net/http"
	"strings"
)

// Error is the outcome of a failed pipeline stage.  The HTTP error
// handler renders it verbatim as {"status": ..., "message": ...}.
// Validation failures are non-retryable client errors; nothing has been
// written to the store when a stage aborts.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// BadRequest builds a 400 error with the given message.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// NotFoundError builds a 404 error with the given message.
func NotFoundError(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// InvalidField reports submitted keys outside the recognized field set.
// Every offending key is named.
func InvalidField(fields []string) *Error {
	return BadRequest(fmt.Sprintf("Invalid field(s): %s", strings.Join(fields, ", ")))
}

// MissingField reports a required field that is absent or empty.
func MissingField(name string) *Error {
	return BadRequest(fmt.Sprintf("Must include a %s", name))
}

// InvalidDate reports an unusable reservation_date; reason is one of
// the specific validator messages (unparseable, closed day, past).
func InvalidDate(reason string) *Error {
	return BadRequest(reason)
}

// InvalidTime reports a reservation_time outside 24-hour HH:MM[:SS].
func InvalidTime() *Error {
	return BadRequest("Invalid reservation_time")
}

// InvalidPeopleCount reports a party size that is not a positive integer.
func InvalidPeopleCount() *Error {
	return BadRequest("Invalid number of people")
}

// InvalidStatus reports a submitted status value that is not acceptable
// for the operation, naming the value.
func InvalidStatus(status string) *Error {
	return BadRequest(fmt.Sprintf("status is %s", status))
}

// MissingIdentifier reports that no reservation id could be extracted
// from the route path or the request body.
func MissingIdentifier() *Error {
	return BadRequest("missing reservation_id")
}

// NotFound reports a reservation id that resolved to nothing.
func NotFound(id string) *Error {
	return NotFoundError(fmt.Sprintf("Reservation doesn't exist: %s", id))
}

// InvalidTransition reports a status change refused because of the
// reservation's current status.
func InvalidTransition(current string) *Error {
	return BadRequest(fmt.Sprintf("Reservation status: '%s'.", current))
}
