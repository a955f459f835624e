package handler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/pipeline"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
)

// TableStore is the data-access capability set the table handlers
// depend on.  *repository.TableRepo satisfies it.
type TableStore interface {
	Create(ctx context.Context, t *model.Table) (*model.Table, error)
	List(ctx context.Context) ([]model.Table, error)
	GetByID(ctx context.Context, id uint64) (*model.Table, error)
	Seat(ctx context.Context, tableID, reservationID uint64) error
	Finish(ctx context.Context, tableID uint64) (uint64, error)
}

// TableHandler holds the terminal stages for table operations.  Seating
// runs after the reservation existence resolver, so the reservation is
// already loaded on the pipeline state.
type TableHandler struct {
	Tables  TableStore
	Publish PublishFunc
}

// NewTableHandler constructs a TableHandler.  The store must be non-nil.
func NewTableHandler(tables TableStore) *TableHandler {
	if tables == nil {
		panic("nil store passed to NewTableHandler")
	}
	return &TableHandler{Tables: tables}
}

// Create validates the table payload shape and inserts the table:
// table_name at least two characters, capacity a positive integer.
func (h *TableHandler) Create(c echo.Context, s *pipeline.State) error {
	name, _ := s.Data["table_name"].(string)
	if len(name) < 2 {
		return pipeline.BadRequest("table_name must be at least 2 characters")
	}
	capacity, ok := s.Data["capacity"].(float64)
	if !ok || capacity != math.Trunc(capacity) || capacity < 1 {
		return pipeline.BadRequest("capacity must be a positive integer")
	}
	created, err := h.Tables.Create(c.Request().Context(), &model.Table{
		TableName: name,
		Capacity:  int(capacity),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": created})
}

// List responds with every table ordered by name.
func (h *TableHandler) List(c echo.Context, s *pipeline.State) error {
	tables, err := h.Tables.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": tables})
}

// Seat seats the resolved reservation at the table named in the path.
// The table must exist and be free, its capacity must cover the party,
// and the reservation must not already be seated.
func (h *TableHandler) Seat(c echo.Context, s *pipeline.State) error {
	tableID, err := parseTableID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	table, err := h.Tables.GetByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return pipeline.NotFoundError(fmt.Sprintf("Table doesn't exist: %d", tableID))
		}
		return err
	}
	if s.Reservation.Status == model.StatusSeated {
		return pipeline.BadRequest("Reservation is already seated")
	}
	if table.Capacity < s.Reservation.People {
		return pipeline.BadRequest("Table does not have sufficient capacity")
	}
	if table.ReservationID != nil {
		return pipeline.BadRequest("Table is occupied")
	}
	if err := h.Tables.Seat(ctx, tableID, s.Reservation.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrTableOccupied):
			return pipeline.BadRequest("Table is occupied")
		case errors.Is(err, repository.ErrTableNotFound):
			return pipeline.NotFoundError(fmt.Sprintf("Table doesn't exist: %d", tableID))
		}
		return err
	}
	seated, err := h.Tables.GetByID(ctx, tableID)
	if err != nil {
		return err
	}
	h.publishStatus(c, s.Reservation, model.StatusSeated)
	return c.JSON(http.StatusOK, echo.Map{"data": seated})
}

// Finish frees the table named in the path and marks its reservation
// finished.  The table must currently be occupied.
func (h *TableHandler) Finish(c echo.Context, s *pipeline.State) error {
	tableID, err := parseTableID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	reservationID, err := h.Tables.Finish(ctx, tableID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTableNotFound):
			return pipeline.NotFoundError(fmt.Sprintf("Table doesn't exist: %d", tableID))
		case errors.Is(err, repository.ErrTableNotOccupied):
			return pipeline.BadRequest("Table is not occupied")
		}
		return err
	}
	freed, err := h.Tables.GetByID(ctx, tableID)
	if err != nil {
		return err
	}
	h.publishStatus(c, &model.Reservation{ID: reservationID}, model.StatusFinished)
	return c.JSON(http.StatusOK, echo.Map{"data": freed})
}

func parseTableID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("table_id"), 10, 64)
	if err != nil || id == 0 {
		return 0, pipeline.BadRequest("invalid table_id")
	}
	return id, nil
}

func (h *TableHandler) publishStatus(c echo.Context, res *model.Reservation, status string) {
	if h.Publish == nil {
		return
	}
	ev := queue.ReservationStatusEvent{
		ReservationID: res.ID,
		FirstName:     res.FirstName,
		LastName:      res.LastName,
		MobileNumber:  res.MobileNumber,
		Date:          res.Date,
		Time:          res.Time,
		People:        res.People,
		Status:        status,
		ChangedAt:     nowRFC3339(),
	}
	_ = h.Publish(c.Request().Context(), ev)
}
