package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/render"

	"puntajes/internal/infrastructure"
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger        *slog.Logger
	includeDetail bool
}

// NewErrorHandler creates a new error handler. With includeDetail set, 5xx
// bodies carry the internal cause; leave it off in production.
func NewErrorHandler(logger *slog.Logger, includeDetail bool) *ErrorHandler {
	return &ErrorHandler{
		logger:        logger.With(slog.String("component", "error_handler")),
		includeDetail: includeDetail,
	}
}

// HandleError maps err to a status and JSON body and writes it.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	ctx := r.Context()
	apiErr := h.ToAPIError(err)

	attrs := []any{
		slog.String("error", err.Error()),
		slog.Int("status", apiErr.StatusCode),
		slog.String("code", apiErr.ErrorCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	}
	switch {
	case apiErr.StatusCode >= http.StatusInternalServerError:
		h.logger.ErrorContext(ctx, "request failed", attrs...)
		if h.includeDetail {
			apiErr = apiErr.WithDetail(err.Error())
		}
	case apiErr.StatusCode >= http.StatusBadRequest:
		h.logger.WarnContext(ctx, "request rejected", attrs...)
	default:
		h.logger.InfoContext(ctx, "request answered with error body", attrs...)
	}

	render.Render(w, r, apiErr.WithRequestID(infrastructure.GetTraceID(ctx)))
}

// ToAPIError converts an error to the response it should produce.
func (h *ErrorHandler) ToAPIError(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrTimeout
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErrorToAPIError(appErr)
	}

	return ErrInternalServer
}

// appErrorToAPIError maps AppError types to statuses. A query without
// matches is a normal answer and keeps status 200.
func appErrorToAPIError(appErr *AppError) *APIError {
	switch appErr.Type {
	case ErrTypeNotFound:
		return New(http.StatusNotFound, string(appErr.Type), appErr.Message)
	case ErrTypeValidation:
		return New(http.StatusBadRequest, string(appErr.Type), appErr.Message)
	case ErrTypeNoMatch:
		return New(http.StatusOK, string(appErr.Type), appErr.Message)
	case ErrTypeSchema:
		return New(http.StatusInternalServerError, string(appErr.Type), appErr.Message)
	case ErrTypeParsing, ErrTypeConfig:
		return New(http.StatusInternalServerError, string(appErr.Type), ErrInternalServer.Message)
	default:
		return ErrInternalServer
	}
}

// HandlePanic logs a recovered panic and answers 500.
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	ctx := r.Context()

	h.logger.ErrorContext(ctx, "panic recovered",
		slog.Any("panic", recovered),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)

	apiErr := ErrInternalServer
	if h.includeDetail {
		apiErr = apiErr.WithDetail(fmt.Sprintf("%v", recovered))
	}
	WriteError(w, apiErr.WithRequestID(infrastructure.GetTraceID(ctx)))
}

// NotFound returns a standard 404 error
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, ErrNotFound.WithRequestID(infrastructure.GetTraceID(r.Context())))
}

// MethodNotAllowed returns a standard 405 error
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	apiErr := New(http.StatusMethodNotAllowed, ErrMethodNotAllowed.ErrorCode,
		fmt.Sprintf("%s: %s", ErrMethodNotAllowed.Message, r.Method))
	render.Render(w, r, apiErr.WithRequestID(infrastructure.GetTraceID(r.Context())))
}

// JSON helper for consistent JSON responses
func (h *ErrorHandler) JSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	render.Status(r, status)
	render.JSON(w, r, v)
}
