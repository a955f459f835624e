package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/restaurant-reservation/internal/pipeline"
)

func render(err error) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ErrorHandler(err, e.NewContext(req, rec))
	return rec
}

type rendered struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func TestErrorHandlerRendersPipelineErrors(t *testing.T) {
	rec := render(pipeline.NotFound("99"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body rendered
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Equal(t, "Reservation doesn't exist: 99", body.Message)
}

func TestErrorHandlerRendersEchoHTTPErrors(t *testing.T) {
	rec := render(echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	var body rendered
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Method Not Allowed", body.Message)
}

func TestErrorHandlerMasksUnknownErrors(t *testing.T) {
	rec := render(errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body rendered
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusInternalServerError, body.Status)
	assert.Equal(t, "Internal server error", body.Message)
}
