package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "branchpulse/internal/errors"
	"branchpulse/internal/services"
)

// DataHandler handles dataset HTTP requests with RFC 7807 compliance
type DataHandler struct {
	service      DataServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler with RFC 7807 error handling
func NewDataHandler(service DataServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data routes with proper Chi patterns
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	// Use render for consistent JSON responses
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/branches", h.GetBranches)
	r.Get("/banks", h.GetBanks)
	r.Get("/statistics", h.GetStats)
	r.Get("/distribution/states", h.GetStateDistribution)
	r.Get("/distribution/banks", h.GetBankDistribution)
	r.Post("/reload", h.Reload)

	// Sub-resource routes
	r.Route("/banks/{bank}", func(r chi.Router) {
		r.Use(h.BankCtx) // Validate bank parameter
		r.Get("/branches", h.GetBankBranches)
	})

	return r
}

// BankCtx middleware validates the bank parameter
func (h *DataHandler) BankCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bank := chi.URLParam(r, "bank")
		if bank == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("bank", "Bank name is required"))
			return
		}
		if len(bank) > 100 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("bank", "Bank name too long"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetBranches handles GET /api/data/branches with optional state, city and
// bank query selectors.
func (h *DataHandler) GetBranches(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	state := r.URL.Query().Get("state")
	city := r.URL.Query().Get("city")
	bank := r.URL.Query().Get("bank")

	h.logger.InfoContext(r.Context(), "fetching branches",
		slog.String("request_id", reqID),
		slog.String("state", state),
		slog.String("city", city),
		slog.String("bank", bank),
	)

	records, err := h.service.Branches(r.Context(), state, city, bank)
	if err != nil {
		h.handleDatasetError(w, r, err, reqID)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   records,
		"count":  len(records),
	})
}

// GetBanks handles GET /api/data/banks
func (h *DataHandler) GetBanks(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	banks, err := h.service.Banks(r.Context())
	if err != nil {
		h.handleDatasetError(w, r, err, reqID)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   banks,
		"count":  len(banks),
	})
}

// GetBankBranches handles GET /api/data/banks/{bank}/branches, reading the
// per-bank CSV rather than the combined cache.
func (h *DataHandler) GetBankBranches(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	bank := chi.URLParam(r, "bank")

	records, err := h.service.BankBranches(r.Context(), bank)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load bank branches",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("bank", bank),
		)

		if errors.Is(err, services.ErrBankNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.NotFoundError("bank"))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   records,
		"count":  len(records),
	})
}

// GetStats handles GET /api/data/statistics
func (h *DataHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.handleDatasetError(w, r, err, reqID)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   stats,
	})
}

// GetStateDistribution handles GET /api/data/distribution/states
func (h *DataHandler) GetStateDistribution(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	entries, err := h.service.StateDistribution(r.Context())
	if err != nil {
		h.handleDatasetError(w, r, err, reqID)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   entries,
		"count":  len(entries),
	})
}

// GetBankDistribution handles GET /api/data/distribution/banks
func (h *DataHandler) GetBankDistribution(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	entries, err := h.service.BankDistribution(r.Context())
	if err != nil {
		h.handleDatasetError(w, r, err, reqID)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   entries,
		"count":  len(entries),
	})
}

// Reload handles POST /api/data/reload, rebuilding the dataset cache.
func (h *DataHandler) Reload(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.InfoContext(r.Context(), "reloading dataset",
		slog.String("request_id", reqID),
	)

	if err := h.service.Reload(r.Context()); err != nil {
		h.handleDatasetError(w, r, err, reqID)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":  "success",
		"message": "dataset reloaded",
	})
}

// handleDatasetError maps service errors to RFC 7807 responses.
func (h *DataHandler) handleDatasetError(w http.ResponseWriter, r *http.Request, err error, reqID string) {
	h.logger.ErrorContext(r.Context(), "dataset request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
	)

	if errors.Is(err, services.ErrDatasetNotFound) {
		h.errorHandler.HandleError(w, r, apierrors.DatasetNotFoundError(err))
		return
	}
	h.errorHandler.HandleError(w, r, err)
}
