package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puntajes/internal/infrastructure"
	"puntajes/internal/shared/testutil"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "deadline exceeded",
			err:         fmt.Errorf("load: %w", context.DeadlineExceeded),
			wantStatus:  http.StatusGatewayTimeout,
			wantCode:    "TIMEOUT",
			wantMessage: ErrTimeout.Message,
		},
		{
			name:        "api error passes through",
			err:         ErrMissingFields,
			wantStatus:  http.StatusBadRequest,
			wantCode:    "MISSING_FIELDS",
			wantMessage: ErrMissingFields.Message,
		},
		{
			name:        "not found keeps message",
			err:         NewNotFoundError("No hay datos disponibles para el año 2030", nil),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "No hay datos disponibles para el año 2030",
		},
		{
			name:        "no match is a normal answer",
			err:         NewNoMatchError("No se encontraron registros para la combinación universidad/carrera.", nil),
			wantStatus:  http.StatusOK,
			wantCode:    "NO_MATCH",
			wantMessage: "No se encontraron registros para la combinación universidad/carrera.",
		},
		{
			name:        "schema mismatch",
			err:         NewSchemaError("El archivo de datos no tiene las columnas esperadas", nil),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "SCHEMA",
			wantMessage: "El archivo de datos no tiene las columnas esperadas",
		},
		{
			name:        "parsing hides cause",
			err:         NewParsingError("workbook corrupt at /srv/datos/2023", errors.New("zip")),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "PARSING",
			wantMessage: ErrInternalServer.Message,
		},
		{
			name:        "unknown error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_SERVER_ERROR",
			wantMessage: ErrInternalServer.Message,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			h := NewErrorHandler(logger, false)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/consultar", nil)
			h.HandleError(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, tt.wantCode, body.ErrorCode)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Empty(t, body.Detail)
		})
	}
}

func TestErrorHandler_HandleErrorNil(t *testing.T) {
	logger, records := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	w := httptest.NewRecorder()
	h.HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Zero(t, w.Body.Len())
	assert.Zero(t, records.Count())
}

func TestErrorHandler_LogLevels(t *testing.T) {
	logger, records := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)
	r := httptest.NewRequest(http.MethodGet, "/api/opciones/2019", nil)

	h.HandleError(httptest.NewRecorder(), r, NewParsingError("x", errors.New("corrupt")))
	h.HandleError(httptest.NewRecorder(), r, NewNotFoundError("x", nil))

	testutil.AssertLogContains(t, records, slog.LevelError, "request failed")
	testutil.AssertLogContains(t, records, slog.LevelWarn, "request rejected")
	testutil.AssertLogAttr(t, records, "component", "error_handler")
}

func TestErrorHandler_IncludeDetail(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, true)

	w := httptest.NewRecorder()
	h.HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), NewParsingError("x", errors.New("zip: not a valid zip file")))

	body := decodeBody(t, w)
	assert.Contains(t, body.Detail, "zip: not a valid zip file")
}

func TestErrorHandler_RequestID(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(infrastructure.WithTraceID(r.Context(), "trace-123"))
	w := httptest.NewRecorder()
	h.HandleError(w, r, ErrInvalidRequest)

	assert.Equal(t, "trace-123", decodeBody(t, w).RequestID)
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	logger, records := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	w := httptest.NewRecorder()
	h.HandlePanic(w, httptest.NewRequest(http.MethodGet, "/", nil), "kaboom")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, ErrInternalServer.Message, decodeBody(t, w).Message)
	testutil.AssertLogContains(t, records, slog.LevelError, "panic recovered")
}

func TestErrorHandler_NotFoundAndMethod(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	w := httptest.NewRecorder()
	h.NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.MethodNotAllowed(w, httptest.NewRequest(http.MethodDelete, "/api/consultar", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, decodeBody(t, w).Message, "DELETE")
}
