package validation

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/restaurant-reservation/internal/pipeline"
)

func testCtx() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func stateWith(data map[string]any) *pipeline.State {
	return &pipeline.State{Data: data}
}

func TestWhitelistRejectsUnknownFields(t *testing.T) {
	s := stateWith(map[string]any{
		"first_name": "Rick",
		"pizza":      true,
		"aardvark":   1,
	})
	err := Whitelist(testCtx(), s)

	var pe *pipeline.Error
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusBadRequest, pe.Status)
	assert.Equal(t, "Invalid field(s): aardvark, pizza", pe.Message)
}

func TestWhitelistAcceptsRecognizedFields(t *testing.T) {
	s := stateWith(map[string]any{
		"first_name":       "Rick",
		"last_name":        "Sanchez",
		"mobile_number":    "202-555-0164",
		"reservation_date": "2030-01-02",
		"reservation_time": "18:00",
		"people":           float64(2),
		"status":           "booked",
		"reservation_id":   float64(4),
		"created_at":       "2020-01-01T00:00:00Z",
		"updated_at":       "2020-01-01T00:00:00Z",
	})
	assert.NoError(t, Whitelist(testCtx(), s))
}

func TestWhitelistAcceptsEmptyPayload(t *testing.T) {
	assert.NoError(t, Whitelist(testCtx(), stateWith(map[string]any{})))
}

func TestRequiredReportsEachMissingField(t *testing.T) {
	full := map[string]any{
		"first_name":       "Rick",
		"last_name":        "Sanchez",
		"mobile_number":    "202-555-0164",
		"reservation_date": "2030-01-02",
		"reservation_time": "18:00",
		"people":           float64(2),
	}
	stage := RequiredReservationFields()
	assert.NoError(t, stage(testCtx(), stateWith(full)))

	for _, field := range []string{"first_name", "last_name", "mobile_number", "reservation_date", "reservation_time", "people"} {
		data := map[string]any{}
		for k, v := range full {
			data[k] = v
		}
		delete(data, field)
		err := stage(testCtx(), stateWith(data))

		var pe *pipeline.Error
		assert.ErrorAs(t, err, &pe, field)
		assert.Equal(t, fmt.Sprintf("Must include a %s", field), pe.Message)
	}
}

func TestRequiredTreatsEmptyValuesAsMissing(t *testing.T) {
	stage := Required("first_name", "people")

	err := stage(testCtx(), stateWith(map[string]any{"first_name": "", "people": float64(2)}))
	var pe *pipeline.Error
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, "Must include a first_name", pe.Message)

	err = stage(testCtx(), stateWith(map[string]any{"first_name": "Rick", "people": float64(0)}))
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, "Must include a people", pe.Message)
}

func TestValidDateRejectsUnparseable(t *testing.T) {
	err := ValidDate(testCtx(), stateWith(map[string]any{"reservation_date": "not-a-date"}))
	var pe *pipeline.Error
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, "Invalid reservation_date", pe.Message)
}

func TestValidDateRejectsTuesdaysInAnyYear(t *testing.T) {
	for _, year := range []int{2400, 2750, 3001} {
		d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		for d.Weekday() != time.Tuesday {
			d = d.AddDate(0, 0, 1)
		}
		err := ValidDate(testCtx(), stateWith(map[string]any{
			"reservation_date": d.Format("2006-01-02"),
			"reservation_time": "18:00",
		}))

		var pe *pipeline.Error
		assert.ErrorAs(t, err, &pe, "year %d", year)
		assert.Equal(t, "Restaurant is closed on Tuesdays", pe.Message)
	}
}

func TestValidDateRejectsPastDates(t *testing.T) {
	// 2000-01-05 was a Wednesday, so only the past check can fire.
	err := ValidDate(testCtx(), stateWith(map[string]any{"reservation_date": "2000-01-05"}))
	var pe *pipeline.Error
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, "Reservation must be set in the future", pe.Message)
}

func TestValidDateAcceptsFutureDate(t *testing.T) {
	assert.NoError(t, ValidDate(testCtx(), stateWith(map[string]any{
		"reservation_date": "2999-01-09", // a Wednesday
		"reservation_time": "18:00",
	})))
}

func TestValidTime(t *testing.T) {
	valid := []string{"00:00", "23:59", "18:00", "18:00:00", "09:30:59"}
	for _, v := range valid {
		assert.NoError(t, ValidTime(testCtx(), stateWith(map[string]any{"reservation_time": v})), v)
	}

	invalid := []string{"24:00", "18:60", "9:30", "18:00:61", "half past six", "", "18-00"}
	for _, v := range invalid {
		err := ValidTime(testCtx(), stateWith(map[string]any{"reservation_time": v}))
		var pe *pipeline.Error
		assert.ErrorAs(t, err, &pe, v)
		assert.Equal(t, "Invalid reservation_time", pe.Message)
	}
}

func TestValidPeople(t *testing.T) {
	for _, v := range []any{float64(0), float64(-3), 2.5, "4", nil, true} {
		err := ValidPeople(testCtx(), stateWith(map[string]any{"people": v}))
		var pe *pipeline.Error
		assert.ErrorAs(t, err, &pe, "%v", v)
		assert.Equal(t, "Invalid number of people", pe.Message)
	}

	for _, v := range []float64{1, 2, 12} {
		assert.NoError(t, ValidPeople(testCtx(), stateWith(map[string]any{"people": v})), v)
	}
}

func TestGuardNewStatus(t *testing.T) {
	for _, status := range []string{"seated", "finished"} {
		err := GuardNewStatus(testCtx(), stateWith(map[string]any{"status": status}))
		var pe *pipeline.Error
		assert.ErrorAs(t, err, &pe)
		assert.Equal(t, fmt.Sprintf("status is %s", status), pe.Message)
	}

	assert.NoError(t, GuardNewStatus(testCtx(), stateWith(map[string]any{"status": "booked"})))
	assert.NoError(t, GuardNewStatus(testCtx(), stateWith(map[string]any{})))
}

func TestExtractReservationIDFromPath(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("reservation_id")
	c.SetParamValues("42")

	s := &pipeline.State{}
	assert.NoError(t, ExtractReservationID(c, s))
	assert.Equal(t, "42", s.ReservationID)
}

func TestExtractReservationIDFromBody(t *testing.T) {
	s := stateWith(map[string]any{"reservation_id": float64(7)})
	assert.NoError(t, ExtractReservationID(testCtx(), s))
	assert.Equal(t, "7", s.ReservationID)

	s = stateWith(map[string]any{"reservation_id": "11"})
	assert.NoError(t, ExtractReservationID(testCtx(), s))
	assert.Equal(t, "11", s.ReservationID)
}

func TestExtractReservationIDMissing(t *testing.T) {
	err := ExtractReservationID(testCtx(), &pipeline.State{})
	var pe *pipeline.Error
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusBadRequest, pe.Status)
	assert.Equal(t, "missing reservation_id", pe.Message)
}
