// Package httpapi exposes the fact-check pipeline over HTTP with a
// server-sent-events progress stream.
package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/ppiankov/claimcheck/internal/model"
)

// FactChecker runs one fact-check request, delivering progress through emit.
type FactChecker interface {
	Run(ctx context.Context, req model.Request, emit func(model.Event) error) error
}

// Handler serves the fact-check HTTP surface.
type Handler struct {
	checker        FactChecker
	cfg            model.ServerConfig
	defaultSources int
}

// NewHandler creates a handler around the given pipeline. defaultSources is
// applied to requests that do not specify a source count.
func NewHandler(checker FactChecker, cfg model.ServerConfig, defaultSources int) *Handler {
	if defaultSources < 1 {
		defaultSources = model.DefaultNumSources
	}
	return &Handler{checker: checker, cfg: cfg, defaultSources: defaultSources}
}

// Routes builds the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", h.handleHealth)
	r.Get("/fact-check", h.handleFactCheck)
	r.Post("/fact-check", h.handleFactCheck)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleFactCheck normalizes the GET and POST forms into one request shape
// and streams pipeline events back until a terminal event. Fatal pipeline
// conditions are events on the stream, not HTTP errors: by the time they
// occur the stream has already started.
func (h *Handler) handleFactCheck(w http.ResponseWriter, r *http.Request) {
	req := h.parseRequest(r)

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	requestID := uuid.NewString()
	startedAt := time.Now()
	log.Printf("fact-check start: request_id=%s method=%s num_sources=%d claim_chars=%d",
		requestID, r.Method, req.NumSources, len(req.Claim))

	events := 0
	var terminal model.EventKind
	emit := func(ev model.Event) error {
		if err := WriteEvent(w, ev); err != nil {
			return err
		}
		flusher.Flush()
		events++
		if ev.Terminal() {
			terminal = ev.Kind
		}
		return nil
	}

	err := h.checker.Run(r.Context(), req, emit)

	log.Printf("fact-check done: request_id=%s events=%d terminal=%s delivery_err=%t elapsed_ms=%d",
		requestID, events, terminal, err != nil, time.Since(startedAt).Milliseconds())
}

// parseRequest reduces both request forms to the internal representation.
// GET reads query parameters; POST reads a JSON body. An unusable source
// count is left invalid so validation rejects it before any external call;
// the claim is decoded independently so a bad count never masks it.
func (h *Handler) parseRequest(r *http.Request) model.Request {
	if r.Method == http.MethodPost {
		var body struct {
			Claim      string          `json:"claim"`
			NumSources json.RawMessage `json:"num_sources"`
		}
		if err := decodeJSON(r, &body); err != nil {
			return model.Request{NumSources: h.defaultSources}
		}
		req := model.Request{Claim: strings.TrimSpace(body.Claim), NumSources: h.defaultSources}
		if raw := string(body.NumSources); raw != "" && raw != "null" {
			var n int
			if err := json.Unmarshal(body.NumSources, &n); err != nil {
				n = -1
			}
			req.NumSources = n
		}
		return req
	}

	req := model.Request{
		Claim:      strings.TrimSpace(r.URL.Query().Get("claim")),
		NumSources: h.defaultSources,
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("num_sources")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			n = -1
		}
		req.NumSources = n
	}
	return req
}
