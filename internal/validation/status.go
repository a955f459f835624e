package validation

import (
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/pipeline"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
)

// ReservationGetter is the single store capability the existence
// resolver needs.
type ReservationGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
}

// ReservationExists returns the existence-resolver stage: it loads the
// reservation named by the extracted identifier and attaches it to the
// state, or aborts with 404 naming the identifier.  A non-numeric id
// cannot exist in the store and resolves to the same 404.
func ReservationExists(store ReservationGetter) pipeline.Stage {
	return func(c echo.Context, s *pipeline.State) error {
		id, err := strconv.ParseUint(s.ReservationID, 10, 64)
		if err != nil {
			return pipeline.NotFound(s.ReservationID)
		}
		res, err := store.GetByID(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrReservationNotFound) {
				return pipeline.NotFound(s.ReservationID)
			}
			return err
		}
		s.Reservation = res
		return nil
	}
}

// GateStatusUpdate enforces the status-change rules on the resolved
// reservation.  The requested status must be a known enumeration value,
// and the reservation must still be booked: seated reservations move to
// finished through the table seat flow, and terminal reservations do
// not move at all.
func GateStatusUpdate(c echo.Context, s *pipeline.State) error {
	next, _ := s.Data["status"].(string)
	if !model.KnownStatus(next) {
		return pipeline.InvalidStatus(next)
	}
	if s.Reservation.Status != model.StatusBooked {
		return pipeline.InvalidTransition(s.Reservation.Status)
	}
	return nil
}
