package pipeline

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestComposeRunsStagesInOrder(t *testing.T) {
	var ran []string
	stage := func(name string) Stage {
		return func(c echo.Context, s *State) error {
			ran = append(ran, name)
			return nil
		}
	}

	err := Compose(stage("first"), stage("second"), stage("terminal"))(newContext(""))
	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "terminal"}, ran)
}

func TestComposeAbortsOnFirstFailure(t *testing.T) {
	var ran []string
	pass := func(c echo.Context, s *State) error {
		ran = append(ran, "pass")
		return nil
	}
	fail := func(c echo.Context, s *State) error {
		ran = append(ran, "fail")
		return BadRequest("nope")
	}
	never := func(c echo.Context, s *State) error {
		t.Fatal("stage after a failure must not run")
		return nil
	}

	err := Compose(pass, fail, never)(newContext(""))

	var pe *Error
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusBadRequest, pe.Status)
	assert.Equal(t, "nope", pe.Message)
	assert.Equal(t, []string{"pass", "fail"}, ran)
}

func TestComposeSharesStateBetweenStages(t *testing.T) {
	set := func(c echo.Context, s *State) error {
		s.ReservationID = "42"
		return nil
	}
	var seen string
	get := func(c echo.Context, s *State) error {
		seen = s.ReservationID
		return nil
	}

	assert.NoError(t, Compose(set, get)(newContext("")))
	assert.Equal(t, "42", seen)
}

func TestDecodeBody(t *testing.T) {
	s := &State{}
	err := DecodeBody(newContext(`{"data":{"first_name":"Rick","people":2}}`), s)
	assert.NoError(t, err)
	assert.Equal(t, "Rick", s.Data["first_name"])
	assert.Equal(t, float64(2), s.Data["people"])
}

func TestDecodeBodyEmptyBodyYieldsEmptyData(t *testing.T) {
	s := &State{}
	assert.NoError(t, DecodeBody(newContext(""), s))
	assert.NotNil(t, s.Data)
	assert.Empty(t, s.Data)

	s = &State{}
	assert.NoError(t, DecodeBody(newContext(`{}`), s))
	assert.NotNil(t, s.Data)
}

func TestDecodeBodyMalformedJSON(t *testing.T) {
	err := DecodeBody(newContext(`{"data":`), &State{})
	var pe *Error
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusBadRequest, pe.Status)
}

func TestErrorConstructors(t *testing.T) {
	assert.Equal(t, "Invalid field(s): aardvark, pizza", InvalidField([]string{"aardvark", "pizza"}).Message)
	assert.Equal(t, "Must include a people", MissingField("people").Message)
	assert.Equal(t, "missing reservation_id", MissingIdentifier().Message)
	assert.Equal(t, "Reservation doesn't exist: 99", NotFound("99").Message)
	assert.Equal(t, http.StatusNotFound, NotFound("99").Status)
	assert.Equal(t, "Reservation status: 'seated'.", InvalidTransition("seated").Message)
}
