// Package middleware holds the HTTP error boundary and the
// Redis-backed response cache and rate limiter.
package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/pipeline"
)

// ErrorHandler is the Echo HTTPErrorHandler for the API.  Pipeline
// errors carry their own status and message and are rendered verbatim
// as {"status": ..., "message": ...}; anything else is treated as an
// internal failure and reported generically after logging.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"

	var pipeErr *pipeline.Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &pipeErr):
		status = pipeErr.Status
		message = pipeErr.Message
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	default:
		c.Logger().Error(err)
	}

	_ = c.JSON(status, echo.Map{"status": status, "message": message})
}
