// Package httpapi exposes the schema engine as an HTTP service:
// evaluation of raw parameter maps against registered actions, plus
// schema discovery endpoints.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/artpar/paramgate/adapters/metrics"
	"github.com/artpar/paramgate/core/registry"
	"github.com/artpar/paramgate/core/schema"
)

// maxBodyBytes caps evaluation request bodies.
const maxBodyBytes = 1 << 20

// ErrorResponseBody is the generic error envelope.
type ErrorResponseBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine code and a display message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Handler serves the validation endpoints.
type Handler struct {
	registry *registry.Registry
	logger   zerolog.Logger
	metrics  *metrics.Collector
}

// New creates a handler. The metrics collector may be nil.
func New(reg *registry.Registry, logger zerolog.Logger, m *metrics.Collector) *Handler {
	if m != nil {
		m.SchemasLoaded.Set(float64(reg.Len()))
	}
	return &Handler{registry: reg, logger: logger, metrics: m}
}

// Routes builds the router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.requestID)
	r.Use(h.logRequests)

	r.Get("/healthz", h.handleHealth)
	r.Get("/schemas", h.handleListSchemas)
	r.Get("/schemas/{action}", h.handleGetSchema)
	r.Post("/actions/{action}", h.handleAction)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	resp := schema.ActionListResponse{Actions: []schema.ActionSummary{}}
	for _, name := range h.registry.Actions() {
		cs, _ := h.registry.Get(name)
		resp.Actions = append(resp.Actions, schema.Summarize(cs))
	}
	resp.Count = len(resp.Actions)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	cs, ok := h.registry.Get(action)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_action", "no schema registered for action")
		return
	}
	writeJSON(w, http.StatusOK, schema.Describe(cs))
}

// handleAction evaluates the request's parameters against the named
// action's schema. Raise-mode schemas answer an invalid request with a
// single generic failure and never leak partial values; collect-mode
// schemas answer with the full result, errors and surviving values
// alike.
func (h *Handler) handleAction(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_body", "could not read request body")
		return
	}

	raw, err := RawParams(r, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_body", err.Error())
		return
	}

	start := time.Now()
	res, err := h.registry.Bind(action, raw)
	h.observe(action, res, err, time.Since(start))

	if err != nil {
		var invalid *schema.InvalidError
		if errors.As(err, &invalid) {
			h.logger.Debug().
				Str("action", action).
				Str("path", invalid.First.Path).
				Str("kind", invalid.First.Kind).
				Msg("request rejected")
			writeError(w, http.StatusBadRequest, "invalid_parameters", "parameter validation failed")
			return
		}
		writeError(w, http.StatusNotFound, "unknown_action", "no schema registered for action")
		return
	}

	status := http.StatusOK
	if !res.Valid {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

func (h *Handler) observe(action string, res schema.Result, err error, took time.Duration) {
	if h.metrics == nil {
		return
	}

	outcome := metrics.OutcomeValid
	switch {
	case err != nil && !isInvalid(err):
		outcome = metrics.OutcomeUnknown
	case !res.Valid:
		outcome = metrics.OutcomeInvalid
	}

	h.metrics.EvaluationsTotal.WithLabelValues(action, outcome).Inc()
	if outcome != metrics.OutcomeUnknown {
		h.metrics.EvaluationDuration.WithLabelValues(action).Observe(took.Seconds())
	}
	for _, fe := range res.Errors {
		h.metrics.ArgumentFailures.WithLabelValues(action, fe.Kind).Inc()
	}
}

func isInvalid(err error) bool {
	var invalid *schema.InvalidError
	return errors.As(err, &invalid)
}

// requestID tags each request with an id, echoed in the response.
func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(
			h.logger.With().Str("request_id", id).Logger().WithContext(r.Context()),
		))
	})
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		zerolog.Ctx(r.Context()).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponseBody{Error: ErrorDetail{Code: code, Message: message}})
}
