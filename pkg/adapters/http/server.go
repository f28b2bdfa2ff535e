package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/lindenmayer"
	"github.com/aretw0/lindenmayer/internal/dto"
	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/aretw0/lindenmayer/pkg/expansion"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/yaml.v3"
)

// Response headers of the expand endpoint.
const (
	HeaderExpansionID    = "X-Expansion-ID"
	HeaderExpansionSeed  = "X-Expansion-Seed"
	HeaderExpansionError = "X-Expansion-Error"
)

// maxBodyBytes bounds grammar documents accepted by PUT.
const maxBodyBytes = 1 << 20

// Engine is the subset of *lindenmayer.Engine served over HTTP.
type Engine interface {
	Grammars(ctx context.Context) ([]string, error)
	Inspect(ctx context.Context, name string) (*domain.Definition, error)
	Define(ctx context.Context, def *domain.Definition) error
	Remove(ctx context.Context, name string) error
	Open(ctx context.Context, name string, req lindenmayer.Request) (*lindenmayer.Run, error)
}

var _ Engine = (*lindenmayer.Engine)(nil)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Engine  Engine
	Logger  *slog.Logger
	Metrics http.Handler
}

// Option configures the handler built by NewHandler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics mounts h (usually promhttp.Handler()) on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{Engine: engine}
	for _, opt := range opts {
		opt(server)
	}
	if server.Logger == nil {
		server.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(server.logRequests)

	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if server.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.Metrics)
	}

	r.Route("/grammars", func(r chi.Router) {
		r.Get("/", server.ListGrammars)
		r.Get("/{name}", server.GetGrammar)
		r.Put("/{name}", server.PutGrammar)
		r.Delete("/{name}", server.DeleteGrammar)
		r.Get("/{name}/expand", server.Expand)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", HeaderExpansionID+", "+HeaderExpansionSeed)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    "lsys",
		"version": strings.TrimSpace(lindenmayer.Version),
	})
}

// ListGrammars handles GET /grammars.
func (s *Server) ListGrammars(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.Grammars(r.Context())
	if err != nil {
		s.writeError(w, "list grammars", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"grammars": names})
}

// GetGrammar handles GET /grammars/{name}.
func (s *Server) GetGrammar(w http.ResponseWriter, r *http.Request) {
	def, err := s.Engine.Inspect(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, "inspect grammar", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromDomain(def))
}

// PutGrammar handles PUT /grammars/{name}. The body is a grammar document in
// JSON, or in YAML when Content-Type says so. The name in the path wins.
func (s *Server) PutGrammar(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	raw := make(map[string]any)
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var err error
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		err = yaml.NewDecoder(body).Decode(&raw)
	} else {
		err = json.NewDecoder(body).Decode(&raw)
	}
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("PutGrammar: invalid request body", "error", err)
		return
	}
	raw["name"] = name

	doc, err := dto.Decode(raw)
	if err != nil {
		s.writeError(w, "decode grammar", err)
		return
	}
	def, err := doc.ToDomain()
	if err != nil {
		s.writeError(w, "decode grammar", err)
		return
	}
	if err := s.Engine.Define(r.Context(), def); err != nil {
		s.writeError(w, "define grammar", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromDomain(def))
}

// DeleteGrammar handles DELETE /grammars/{name}.
func (s *Server) DeleteGrammar(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.Remove(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, "delete grammar", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Expand handles GET /grammars/{name}/expand?depth=&seed=&limit=&wrap=.
// The expansion is streamed as text/plain while it is produced. Errors that
// happen after the first byte are reported in the X-Expansion-Error trailer.
func (s *Server) Expand(w http.ResponseWriter, r *http.Request) {
	req, wrap, err := parseExpandQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	run, err := s.Engine.Open(r.Context(), chi.URLParam(r, "name"), req)
	if err != nil {
		s.writeError(w, "open expansion", err)
		return
	}
	defer run.Close()

	h := w.Header()
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("Trailer", HeaderExpansionError)
	h.Set(HeaderExpansionID, run.ID)
	if seed, ok := run.Seed(); ok {
		h.Set(HeaderExpansionSeed, strconv.FormatUint(seed, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := lindenmayer.Stream(w, run, wrap); err != nil {
		h.Set(HeaderExpansionError, err.Error())
		s.Logger.Warn("Expand: stream interrupted", "run_id", run.ID, "error", err)
	}
}

func parseExpandQuery(r *http.Request) (lindenmayer.Request, int, error) {
	q := r.URL.Query()
	var req lindenmayer.Request
	var wrap int

	if v := q.Get("depth"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return req, 0, fmt.Errorf("invalid depth %q", v)
		}
		req.Depth = depth
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return req, 0, fmt.Errorf("invalid seed %q", v)
		}
		req.Seed = &seed
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil || limit < 0 {
			return req, 0, fmt.Errorf("invalid limit %q", v)
		}
		req.Limit = limit
	}
	if v := q.Get("wrap"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return req, 0, fmt.Errorf("invalid wrap %q", v)
		}
		wrap = n
	}
	return req, wrap, nil
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrGrammarNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidGrammar),
		errors.Is(err, expansion.ErrNegativeDepth),
		errors.Is(err, lindenmayer.ErrDepthLimit):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
