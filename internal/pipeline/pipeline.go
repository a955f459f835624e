// Package pipeline composes the per-operation validation chains.  Every
// operation is an ordered list of stages; a stage either passes control
// to the next stage or aborts the whole chain by returning an error.
// The terminal handler is simply the last stage of the list.
package pipeline

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// State carries request-scoped values between stages.  A fresh State is
// allocated per request and stages communicate only through it; the
// pipeline keeps no state across requests.
type State struct {
	Data          map[string]any     // decoded request body under "data"
	ReservationID string             // identifier extracted from path or body
	Reservation   *model.Reservation // entity loaded by the existence resolver
}

// Stage is one step of a pipeline.  It returns nil to pass control to
// the next stage, or an error (normally a *Error) to abort the chain.
type Stage func(c echo.Context, s *State) error

// Compose folds an ordered stage list into a single Echo handler.
func Compose(stages ...Stage) echo.HandlerFunc {
	return func(c echo.Context) error {
		s := &State{}
		for _, stage := range stages {
			if err := stage(c, s); err != nil {
				return err
			}
		}
		return nil
	}
}

// DecodeBody parses a {"data": {...}} request body into s.Data.  An
// absent or empty body leaves Data as an empty map so that later
// validators report each missing field individually rather than the
// chain failing with a generic decode error.
func DecodeBody(c echo.Context, s *State) error {
	var body struct {
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return BadRequest("invalid request body")
	}
	if body.Data == nil {
		body.Data = map[string]any{}
	}
	s.Data = body.Data
	return nil
}
