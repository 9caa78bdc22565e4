package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/piwi3910/PrintCost/internal/engine"
	"github.com/piwi3910/PrintCost/internal/export"
	"github.com/piwi3910/PrintCost/internal/model"
)

// maxBodyBytes bounds request bodies; a job spec is well under 1 KiB.
const maxBodyBytes = 64 << 10

type server struct {
	logger    *zap.Logger
	config    model.AppConfig
	inventory model.Inventory
}

func newServer(logger *zap.Logger, cfg model.AppConfig, inv model.Inventory) *server {
	return &server{logger: logger, config: cfg, inventory: inv}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/presets", s.handlePresets)
	r.Post("/fit", s.handleFit)
	r.Post("/quote", s.handleQuote)
	r.Post("/quote.csv", s.handleQuoteCSV)
	return r
}

// requestLogger logs one line per request with its status and latency.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

type presetsResponse struct {
	Papers     []model.PaperPreset `json:"papers"`
	Plates     []model.PlatePreset `json:"plates"`
	Currencies []string            `json:"currencies"`
	Defaults   model.JobSpec       `json:"defaults"`
}

type fitRequest struct {
	Unit       model.Dimensions `json:"unit"`
	Sheet      model.Dimensions `json:"sheet"`
	TotalUnits int              `json:"total_units"`
}

type fitResponse struct {
	Fit         model.FitResult `json:"fit"`
	Utilization float64         `json:"utilization"`
	Layout      []model.Rect    `json:"layout"`
}

type quoteResponse struct {
	Summary   string            `json:"summary"`
	Quotation engine.Quotation  `json:"quotation"`
	Report    []model.ReportRow `json:"report"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presetsResponse{
		Papers:     s.inventory.Papers,
		Plates:     s.inventory.Plates,
		Currencies: model.Currencies,
		Defaults:   s.config.NewJobSpec(),
	})
}

func (s *server) handleFit(w http.ResponseWriter, r *http.Request) {
	var req fitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if !req.Unit.Positive() || !req.Sheet.Positive() {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: unit and sheet sizes must be positive", model.ErrInvalidInput))
		return
	}
	if req.TotalUnits < 0 {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: total units cannot be negative", model.ErrInvalidInput))
		return
	}

	fit, err := engine.Fit(req.Unit, req.Sheet, req.TotalUnits)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, fitResponse{
		Fit:         fit,
		Utilization: fit.Utilization(),
		Layout:      engine.LayoutRects(fit),
	})
}

func (s *server) handleQuote(w http.ResponseWriter, r *http.Request) {
	q, ok := s.quoteFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{
		Summary:   engine.FitSummary(q.Fit),
		Quotation: q,
		Report:    engine.ReportRows(q),
	})
}

func (s *server) handleQuoteCSV(w http.ResponseWriter, r *http.Request) {
	q, ok := s.quoteFromRequest(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.QuoteFilename(q, "csv")))
	if err := export.WriteCSV(w, q); err != nil {
		s.logger.Error("failed to write CSV response", zap.Error(err))
	}
}

// quoteFromRequest decodes a job over the configured defaults, validates
// and quotes it. On failure the error response is already written.
func (s *server) quoteFromRequest(w http.ResponseWriter, r *http.Request) (engine.Quotation, bool) {
	job := s.config.NewJobSpec()
	if err := decodeJSON(w, r, &job); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return engine.Quotation{}, false
	}
	// A custom value in the body replaces the default preset
	if job.Paper.IsCustom() {
		job.Paper.Preset = ""
	}
	if job.Plate.IsCustom() {
		job.Plate.Preset = ""
	}

	if err := job.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return engine.Quotation{}, false
	}
	q, err := engine.Quote(job, s.inventory)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return engine.Quotation{}, false
	}
	return q, true
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInfeasibleFit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrInvalidInput), errors.Is(err, model.ErrUnknownPreset):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", model.ErrInvalidInput, err)
	}
	return nil
}

func (s *server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	} else {
		s.logger.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
