package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "puntajes/internal/errors"
	"puntajes/internal/middleware"
	api "puntajes/pkg/contracts/api/v1"
)

// AdmissionHandler serves the admission score endpoints
type AdmissionHandler struct {
	service      AdmissionServiceInterface
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAdmissionHandler creates a new admission handler
func NewAdmissionHandler(service AdmissionServiceInterface, validator *middleware.Validator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AdmissionHandler {
	return &AdmissionHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "admission_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the admission routes, mounted under /api
func (h *AdmissionHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/opciones/{year}", h.GetOptions)
	r.Post("/consultar", h.Query)
	r.Get("/anios", h.GetYears)

	return r
}

// GetOptions handles GET /api/opciones/{year}
func (h *AdmissionHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "year")
	year, err := api.ParseYear(raw)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidYearError(raw))
		return
	}

	opts, err := h.service.ListOptions(r.Context(), year)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, opts)
}

// Query handles POST /api/consultar
func (h *AdmissionHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req api.QueryRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		h.logger.DebugContext(r.Context(), "rejected request body", slog.String("error", err.Error()))
		if errors.Is(err, api.ErrInvalidYear) {
			h.errorHandler.HandleError(w, r, apierrors.ErrInvalidYear.WithDetail(err.Error()))
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest)
		return
	}

	req.Normalize()
	if err := h.validator.Struct(req); err != nil {
		var fields middleware.FieldErrors
		if errors.As(err, &fields) {
			h.errorHandler.HandleError(w, r, apierrors.ErrMissingFields.WithDetail(err.Error()))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "admission query",
		slog.Int("year", req.Year.Value),
		slog.String("universidad", req.University),
		slog.String("carrera", req.Program))

	res, err := h.service.Query(r.Context(), req.Year.Value, req.University, req.Program)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, res)
}

// GetYears handles GET /api/anios
func (h *AdmissionHandler) GetYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.service.Years(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, years)
}
