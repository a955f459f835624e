// Package router wires each operation's stage chain onto its route.
// Every route is an ordered pipeline: validators, then the existence
// resolver and state-machine gates where the operation needs them, then
// the terminal handler.  A stage failure aborts the chain and the
// error handler renders the structured error.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/handler"
	"github.com/iliyamo/restaurant-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-reservation/internal/pipeline"
	"github.com/iliyamo/restaurant-reservation/internal/validation"
)

// RegisterRoutes registers the reservation and table pipelines on the
// provided Echo instance.  Optional middleware (rate limiting) applies
// to every API route; readCache, when non-nil, applies to the listing
// endpoints only.
func RegisterRoutes(e *echo.Echo, rh *handler.ReservationHandler, th *handler.TableHandler, readCache echo.MiddlewareFunc, mws ...echo.MiddlewareFunc) {
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.GET("/healthz", handler.Health)

	required := validation.RequiredReservationFields()
	exists := validation.ReservationExists(rh.Store)

	g := e.Group("", mws...)

	var listMW []echo.MiddlewareFunc
	if readCache != nil {
		listMW = append(listMW, readCache)
	}

	g.POST("/reservations", pipeline.Compose(
		pipeline.DecodeBody,
		validation.Whitelist,
		required,
		validation.ValidDate,
		validation.ValidTime,
		validation.ValidPeople,
		validation.GuardNewStatus,
		rh.Create,
	))
	g.GET("/reservations", pipeline.Compose(rh.List), listMW...)
	g.GET("/reservations/:reservation_id", pipeline.Compose(
		validation.ExtractReservationID,
		exists,
		rh.Read,
	))
	g.PUT("/reservations/:reservation_id/status", pipeline.Compose(
		pipeline.DecodeBody,
		validation.ExtractReservationID,
		exists,
		validation.GateStatusUpdate,
		rh.UpdateStatus,
	))
	g.PUT("/reservations/:reservation_id", pipeline.Compose(
		pipeline.DecodeBody,
		validation.Whitelist,
		required,
		validation.ValidDate,
		validation.ValidTime,
		validation.ValidPeople,
		validation.GuardNewStatus,
		validation.ExtractReservationID,
		exists,
		rh.Update,
	))

	g.POST("/tables", pipeline.Compose(
		pipeline.DecodeBody,
		validation.Required("table_name", "capacity"),
		th.Create,
	))
	g.GET("/tables", pipeline.Compose(th.List), listMW...)
	g.PUT("/tables/:table_id/seat", pipeline.Compose(
		pipeline.DecodeBody,
		validation.ExtractReservationID,
		exists,
		th.Seat,
	))
	g.DELETE("/tables/:table_id/seat", pipeline.Compose(th.Finish))
}
