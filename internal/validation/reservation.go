// Package validation implements the reservation field validators, the
// identifier extraction and existence-resolution stages, and the status
// state-machine gates.  Validators are pure functions of the submitted
// data; stages that need the store take it as an argument and close
// over it.  Nothing here keeps package-level mutable state.
package validation

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/pipeline"
)

// recognizedFields is the full set of keys a reservation payload may
// carry.  Anything outside this set is rejected by Whitelist.
var recognizedFields = map[string]struct{}{
	"first_name":       {},
	"last_name":        {},
	"mobile_number":    {},
	"reservation_date": {},
	"reservation_time": {},
	"people":           {},
	"status":           {},
	"created_at":       {},
	"updated_at":       {},
	"reservation_id":   {},
}

// requiredReservationFields are the fields every create and full-update
// payload must carry.
var requiredReservationFields = []string{
	"first_name",
	"last_name",
	"mobile_number",
	"reservation_date",
	"reservation_time",
	"people",
}

const dateLayout = "2006-01-02"

// clockRE accepts 24-hour HH:MM and HH:MM:SS clock strings.
var clockRE = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)

// Whitelist rejects any submitted key outside the recognized field set.
// The error names every offending key, sorted for deterministic output.
func Whitelist(c echo.Context, s *pipeline.State) error {
	var invalid []string
	for key := range s.Data {
		if _, ok := recognizedFields[key]; !ok {
			invalid = append(invalid, key)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return pipeline.InvalidField(invalid)
	}
	return nil
}

// Required returns a stage that verifies each named field is present
// and non-empty (non-zero for numbers).
func Required(fields ...string) pipeline.Stage {
	return func(c echo.Context, s *pipeline.State) error {
		for _, field := range fields {
			if isEmpty(s.Data[field]) {
				return pipeline.MissingField(field)
			}
		}
		return nil
	}
}

// RequiredReservationFields is the Required stage preconfigured with the
// reservation create/update field list.
func RequiredReservationFields() pipeline.Stage {
	return Required(requiredReservationFields...)
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case float64:
		return t == 0
	case bool:
		return !t
	}
	return false
}

// ValidDate checks reservation_date in order: it must parse as a real
// calendar date, must not fall on Tuesday (the restaurant's closed
// day), and must not lie in the past.  The date is combined with
// reservation_time when the time parses, so a booking later today is
// accepted; a bare date compares at midnight UTC.
func ValidDate(c echo.Context, s *pipeline.State) error {
	raw, _ := s.Data["reservation_date"].(string)
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return pipeline.InvalidDate("Invalid reservation_date")
	}
	if date.Weekday() == time.Tuesday {
		return pipeline.InvalidDate("Restaurant is closed on Tuesdays")
	}
	moment := date
	if clock, ok := s.Data["reservation_time"].(string); ok {
		if d, err := parseClock(clock); err == nil {
			moment = date.Add(d)
		}
	}
	if moment.Before(time.Now().UTC()) {
		return pipeline.InvalidDate("Reservation must be set in the future")
	}
	return nil
}

// ValidTime checks that reservation_time is a 24-hour HH:MM or HH:MM:SS
// clock string.
func ValidTime(c echo.Context, s *pipeline.State) error {
	raw, _ := s.Data["reservation_time"].(string)
	if !clockRE.MatchString(raw) {
		return pipeline.InvalidTime()
	}
	return nil
}

func parseClock(s string) (time.Duration, error) {
	layout := "15:04"
	if len(s) == len("15:04:05") {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// ValidPeople checks that people is a strictly positive integer.  JSON
// numbers decode as float64; fractions, strings, zero and negatives are
// all rejected.
func ValidPeople(c echo.Context, s *pipeline.State) error {
	f, ok := s.Data["people"].(float64)
	if !ok || f != math.Trunc(f) || f < 1 {
		return pipeline.InvalidPeopleCount()
	}
	return nil
}

// GuardNewStatus rejects create and edit payloads whose status is
// already seated or finished; a new or edited reservation may not come
// into existence mid-lifecycle.
func GuardNewStatus(c echo.Context, s *pipeline.State) error {
	status, _ := s.Data["status"].(string)
	if status == model.StatusSeated || status == model.StatusFinished {
		return pipeline.InvalidStatus(status)
	}
	return nil
}

// ExtractReservationID pulls the reservation identifier from the
// reservation_id path parameter or, failing that, from the request
// body.  The raw string is kept on the state so error messages can name
// exactly what the client sent.
func ExtractReservationID(c echo.Context, s *pipeline.State) error {
	id := c.Param("reservation_id")
	if id == "" && s.Data != nil {
		switch v := s.Data["reservation_id"].(type) {
		case string:
			id = v
		case float64:
			id = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	if id == "" {
		return pipeline.MissingIdentifier()
	}
	s.ReservationID = id
	return nil
}
