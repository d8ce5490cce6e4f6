package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError is the JSON body of every failed API response. The browser client
// only looks at the "error" key.
type APIError struct {
	StatusCode int    `json:"-"`
	ErrorCode  string `json:"code"`
	Message    string `json:"error"`
	Detail     string `json:"detail,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// WithRequestID returns a copy of e tagged with a request id.
func (e *APIError) WithRequestID(id string) *APIError {
	cp := *e
	cp.RequestID = id
	return &cp
}

// WithDetail returns a copy of e carrying an internal detail string.
func (e *APIError) WithDetail(detail string) *APIError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// Predefined errors. Messages are shown to end users as-is.
var (
	// 400 Bad Request
	ErrInvalidRequest = New(http.StatusBadRequest, "INVALID_REQUEST", "No se enviaron datos JSON")
	ErrMissingFields  = New(http.StatusBadRequest, "MISSING_FIELDS", "Faltan campos obligatorios (year, universidad, carrera)")
	ErrInvalidYear    = New(http.StatusBadRequest, "INVALID_YEAR", "El año debe ser un número entero positivo")

	// 404 Not Found
	ErrNotFound = New(http.StatusNotFound, "NOT_FOUND", "Recurso no encontrado")

	// 405 Method Not Allowed
	ErrMethodNotAllowed = New(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Método no permitido")

	// 429 Too Many Requests
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Demasiadas solicitudes, intente nuevamente en un momento")

	// 500 Internal Server Error
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Error interno procesando datos")

	// 504 Gateway Timeout
	ErrTimeout = New(http.StatusGatewayTimeout, "TIMEOUT", "La consulta tardó demasiado en procesarse")
)

// InvalidYearError reports a year path or body value that is not a positive integer.
func InvalidYearError(raw string) *APIError {
	return New(http.StatusBadRequest, "INVALID_YEAR", fmt.Sprintf("Año inválido: %q", raw))
}

// WriteError writes err as JSON without going through chi/render. Used by
// middleware that runs outside a handler.
func WriteError(w http.ResponseWriter, err *APIError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(err.StatusCode)
	json.NewEncoder(w).Encode(err)
}
