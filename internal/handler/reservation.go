// Package handler contains the terminal pipeline stages: the final
// stage of each operation's chain, which calls the data-access layer
// and builds the response.  All validation has already happened in the
// stages composed ahead of these, so terminal stages only translate
// between the request state, the store and the response envelope.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/pipeline"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
)

// ReservationStore is the data-access capability set the reservation
// handlers depend on.  *repository.ReservationRepo satisfies it; tests
// substitute mocks.
type ReservationStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	ListByDate(ctx context.Context, date string) ([]model.Reservation, error)
	SearchByMobile(ctx context.Context, mobile string) ([]model.Reservation, error)
	Create(ctx context.Context, res *model.Reservation) (*model.Reservation, error)
	Update(ctx context.Context, res *model.Reservation) (*model.Reservation, error)
	UpdateStatus(ctx context.Context, id uint64, status string) (*model.Reservation, error)
}

// PublishFunc sends a status event to the broker.  A nil publisher
// disables events; publish failures never fail the request.
type PublishFunc func(ctx context.Context, event queue.ReservationStatusEvent) error

// ReservationHandler holds the terminal stages for reservation
// operations.
type ReservationHandler struct {
	Store   ReservationStore
	Publish PublishFunc
}

// NewReservationHandler constructs a ReservationHandler.  The store
// must be non-nil.
func NewReservationHandler(store ReservationStore) *ReservationHandler {
	if store == nil {
		panic("nil store passed to NewReservationHandler")
	}
	return &ReservationHandler{Store: store}
}

// Create writes the fully validated payload to the store and responds
// 201 with the stored reservation (status defaulted to booked).
func (h *ReservationHandler) Create(c echo.Context, s *pipeline.State) error {
	created, err := h.Store.Create(c.Request().Context(), reservationFromData(s.Data))
	if err != nil {
		return err
	}
	h.publish(c, created)
	return c.JSON(http.StatusCreated, echo.Map{"data": created})
}

// Read responds with the reservation loaded by the existence resolver.
func (h *ReservationHandler) Read(c echo.Context, s *pipeline.State) error {
	return c.JSON(http.StatusOK, echo.Map{"data": s.Reservation})
}

// List branches on the supplied query: a mobile_number filter delegates
// to search, otherwise reservations for the given date are listed.
// mobile_number wins when both are present.
func (h *ReservationHandler) List(c echo.Context, s *pipeline.State) error {
	ctx := c.Request().Context()
	if mobile := c.QueryParam("mobile_number"); mobile != "" {
		found, err := h.Store.SearchByMobile(ctx, mobile)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"data": found})
	}
	listed, err := h.Store.ListByDate(ctx, c.QueryParam("date"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": listed})
}

// UpdateStatus persists the requested status on the resolved
// reservation.  The state-machine gate ahead of this stage has already
// verified the transition.
func (h *ReservationHandler) UpdateStatus(c echo.Context, s *pipeline.State) error {
	next, _ := s.Data["status"].(string)
	updated, err := h.Store.UpdateStatus(c.Request().Context(), s.Reservation.ID, next)
	if err != nil {
		return err
	}
	h.publish(c, updated)
	return c.JSON(http.StatusOK, echo.Map{"data": updated})
}

// Update replaces the editable fields of the resolved reservation.
func (h *ReservationHandler) Update(c echo.Context, s *pipeline.State) error {
	res := reservationFromData(s.Data)
	res.ID = s.Reservation.ID
	updated, err := h.Store.Update(c.Request().Context(), res)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": updated})
}

func (h *ReservationHandler) publish(c echo.Context, res *model.Reservation) {
	if h.Publish == nil {
		return
	}
	_ = h.Publish(c.Request().Context(), queue.ReservationStatusEvent{
		ReservationID: res.ID,
		FirstName:     res.FirstName,
		LastName:      res.LastName,
		MobileNumber:  res.MobileNumber,
		Date:          res.Date,
		Time:          res.Time,
		People:        res.People,
		Status:        res.Status,
		ChangedAt:     nowRFC3339(),
	})
}

func nowRFC3339() string { return time.Now().UTC().Format(time.RFC3339) }

// reservationFromData maps a validated payload onto the model.  Type
// assertions are lenient: the validators ahead of the terminal stage
// have already rejected malformed values.
func reservationFromData(data map[string]any) *model.Reservation {
	res := &model.Reservation{}
	if v, ok := data["first_name"].(string); ok {
		res.FirstName = v
	}
	if v, ok := data["last_name"].(string); ok {
		res.LastName = v
	}
	if v, ok := data["mobile_number"].(string); ok {
		res.MobileNumber = v
	}
	if v, ok := data["reservation_date"].(string); ok {
		res.Date = v
	}
	if v, ok := data["reservation_time"].(string); ok {
		res.Time = v
	}
	if v, ok := data["people"].(float64); ok {
		res.People = int(v)
	}
	if v, ok := data["status"].(string); ok {
		res.Status = v
	}
	return res
}
