package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "branchpulse/internal/errors"
	"branchpulse/internal/services"
)

// AnalyticsHandler handles market analytics HTTP requests
type AnalyticsHandler struct {
	service      AnalyticsServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validator    *validator.Validate
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service AnalyticsServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalyticsHandler {
	v := validator.New()
	v.RegisterValidation("csvfilename", isValidCSVFilename)

	return &AnalyticsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "analytics_handler")),
		errorHandler: errorHandler,
		validator:    v,
	}
}

// isValidCSVFilename rejects traversal sequences and non-CSV extensions.
func isValidCSVFilename(fl validator.FieldLevel) bool {
	filename := fl.Field().String()
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		return false
	}
	return strings.HasSuffix(filename, ".csv")
}

// Routes returns the analytics routes
func (h *AnalyticsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/underserved", h.GetUnderserved)
	r.Get("/opportunities", h.GetOpportunities)
	r.Post("/report", h.GenerateReport)
	r.Post("/export", h.ExportBranches)

	// Per-state resources share the state validation middleware
	r.With(h.StateCtx).Get("/density/{state}", h.GetDensity)
	r.With(h.StateCtx).Get("/concentration/{state}", h.GetConcentration)
	r.With(h.StateCtx).Get("/opportunities/{state}", h.GetOpportunity)

	return r
}

// StateCtx middleware validates the state parameter
func (h *AnalyticsHandler) StateCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := chi.URLParam(r, "state")
		if state == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("state", "State name is required"))
			return
		}
		if len(state) > 100 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("state", "State name too long"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetDensity handles GET /api/analytics/density/{state}
func (h *AnalyticsHandler) GetDensity(w http.ResponseWriter, r *http.Request) {
	state := chi.URLParam(r, "state")

	density, err := h.service.Density(r.Context(), state)
	if err != nil {
		h.handleAnalyticsError(w, r, err, state)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   density,
	})
}

// GetConcentration handles GET /api/analytics/concentration/{state}
func (h *AnalyticsHandler) GetConcentration(w http.ResponseWriter, r *http.Request) {
	state := chi.URLParam(r, "state")

	result, err := h.service.Concentration(r.Context(), state)
	if err != nil {
		h.handleAnalyticsError(w, r, err, state)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// GetOpportunity handles GET /api/analytics/opportunities/{state}
func (h *AnalyticsHandler) GetOpportunity(w http.ResponseWriter, r *http.Request) {
	state := chi.URLParam(r, "state")

	score, err := h.service.Opportunity(r.Context(), state)
	if err != nil {
		h.handleAnalyticsError(w, r, err, state)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   score,
	})
}

// GetUnderserved handles GET /api/analytics/underserved. The optional
// threshold query parameter overrides the configured default.
func (h *AnalyticsHandler) GetUnderserved(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	threshold := 0
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("threshold", "Threshold must be an integer"))
			return
		}
		threshold = parsed
	}

	h.logger.InfoContext(r.Context(), "underserved analysis requested",
		slog.String("request_id", reqID),
		slog.Int("threshold", threshold),
	)

	cities, err := h.service.Underserved(r.Context(), threshold)
	if err != nil {
		if errors.Is(err, services.ErrInvalidThreshold) {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("threshold", "Threshold must be at least 1"))
			return
		}
		h.handleAnalyticsError(w, r, err, "")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   cities,
		"count":  len(cities),
	})
}

// GetOpportunities handles GET /api/analytics/opportunities. Use limit=-1
// to return the complete ranking.
func (h *AnalyticsHandler) GetOpportunities(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("limit", "Limit must be an integer"))
			return
		}
		limit = parsed
	}

	scores, err := h.service.Rankings(r.Context(), limit)
	if err != nil {
		h.handleAnalyticsError(w, r, err, "")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   scores,
		"count":  len(scores),
	})
}

// GenerateReport handles POST /api/analytics/report
func (h *AnalyticsHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.InfoContext(r.Context(), "report generation requested",
		slog.String("request_id", reqID),
	)

	result, err := h.service.GenerateReport(r.Context())
	if err != nil {
		h.handleAnalyticsError(w, r, err, "")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// ExportRequest is the body for POST /api/analytics/export.
type ExportRequest struct {
	State    string `json:"state" validate:"omitempty,max=100"`
	City     string `json:"city" validate:"omitempty,max=100"`
	Bank     string `json:"bank" validate:"omitempty,max=100"`
	Filename string `json:"filename" validate:"omitempty,max=128,csvfilename"`
}

// Bind implements render.Binder
func (req *ExportRequest) Bind(r *http.Request) error {
	return nil
}

// ExportBranches handles POST /api/analytics/export
func (h *AnalyticsHandler) ExportBranches(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := render.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	name, count, err := h.service.FilteredExport(r.Context(), req.State, req.City, req.Bank, req.Filename)
	if err != nil {
		h.handleAnalyticsError(w, r, err, req.State)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status":   "success",
		"filename": name,
		"count":    count,
	})
}

// handleAnalyticsError maps service errors to RFC 7807 responses.
func (h *AnalyticsHandler) handleAnalyticsError(w http.ResponseWriter, r *http.Request, err error, state string) {
	h.logger.ErrorContext(r.Context(), "analytics request failed",
		slog.String("error", err.Error()),
		slog.String("state", state),
	)

	switch {
	case errors.Is(err, services.ErrStateNoData):
		h.errorHandler.HandleError(w, r, apierrors.StateNoDataError(state))
	case errors.Is(err, services.ErrDatasetNotFound):
		h.errorHandler.HandleError(w, r, apierrors.DatasetNotFoundError(err))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
