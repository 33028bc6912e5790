package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/aretw0/unify"
	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/ports"
	"github.com/aretw0/unify/pkg/runner"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

//go:embed openapi.yaml
var rawSpec []byte

// maxBodySize bounds request bodies. Term text itself is limited by runner.SanitizeInput.
const maxBodySize = 1 << 20

// Server serves unification over HTTP.
type Server struct {
	Runner  *runner.Runner
	Loader  ports.ProblemLoader
	Streams *StreamManager
	Logger  *slog.Logger

	metrics http.Handler
	spec    *openapi3.T
}

// Option configures the handler built by NewHandler.
type Option func(*Server)

// WithLoader serves the problems of loader under /problems.
func WithLoader(loader ports.ProblemLoader) Option {
	return func(s *Server) {
		s.Loader = loader
	}
}

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}
	return doc, nil
}

// NewHandler creates a new HTTP handler around r. Solutions are read from r.Store;
// without a store the /solutions routes answer 404.
func NewHandler(r *runner.Runner, opts ...Option) (http.Handler, error) {
	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}

	server := &Server{
		Runner: r,
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		spec:   spec,
	}
	for _, opt := range opts {
		opt(server)
	}
	server.Streams = NewStreamManager(server.Logger)

	router := chi.NewRouter()

	router.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	router.Post("/unify", server.Unify)
	router.Get("/problems", server.ListProblems)
	router.Get("/problems/{id}", server.GetProblem)
	router.Post("/problems/{id}/solve", server.SolveProblem)
	router.Get("/solutions", server.ListSolutions)
	router.Get("/solutions/{id}", server.GetSolution)
	router.Delete("/solutions/{id}", server.DeleteSolution)
	router.Get("/events", server.SubscribeEvents)
	router.Get("/health", server.GetHealth)
	router.Get("/info", server.GetInfo)
	if server.metrics != nil {
		router.Handle("/metrics", server.metrics)
	}

	return enableCORS(router), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Unify API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// UnifyRequest is the body of POST /unify.
type UnifyRequest struct {
	Left     string   `json:"left"`
	Right    string   `json:"right"`
	Language []string `json:"language,omitempty"`
}

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorKind string `json:"error_kind,omitempty"`
}

// Unify handles the POST /unify request.
func (s *Server) Unify(w http.ResponseWriter, r *http.Request) {
	var body UnifyRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: invalid request body: %v", domain.ErrValidation, err))
		return
	}
	if body.Left == "" || body.Right == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: left and right are required", domain.ErrValidation))
		return
	}

	s.solve(w, r, &domain.Problem{Left: body.Left, Right: body.Right, Language: body.Language})
}

// ListProblems handles the GET /problems request.
func (s *Server) ListProblems(w http.ResponseWriter, r *http.Request) {
	problems := []domain.Problem{}
	if s.Loader != nil {
		ids, err := s.Loader.ListProblems(r.Context())
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		for _, id := range ids {
			p, err := s.Loader.GetProblem(r.Context(), id)
			if err != nil {
				s.writeError(w, http.StatusInternalServerError, err)
				return
			}
			problems = append(problems, *p)
		}
	}
	s.writeJSON(w, http.StatusOK, problems)
}

// GetProblem handles the GET /problems/{id} request.
func (s *Server) GetProblem(w http.ResponseWriter, r *http.Request) {
	p, ok := s.problem(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// SolveProblem handles the POST /problems/{id}/solve request.
func (s *Server) SolveProblem(w http.ResponseWriter, r *http.Request) {
	p, ok := s.problem(w, r)
	if !ok {
		return
	}
	s.solve(w, r, p)
}

// ListSolutions handles the GET /solutions request.
func (s *Server) ListSolutions(w http.ResponseWriter, r *http.Request) {
	ids := []string{}
	if store := s.Runner.Store; store != nil {
		var err error
		if ids, err = store.List(r.Context()); err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		sort.Strings(ids)
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetSolution handles the GET /solutions/{id} request.
func (s *Server) GetSolution(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.Runner.Store == nil {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrSolutionNotFound, id))
		return
	}
	sol, err := s.Runner.Store.Load(r.Context(), id)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, sol)
}

// DeleteSolution handles the DELETE /solutions/{id} request.
func (s *Server) DeleteSolution(w http.ResponseWriter, r *http.Request) {
	if s.Runner.Store != nil {
		if err := s.Runner.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			s.writeError(w, statusFor(err), err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":          "unify-http",
		"version":      strings.TrimSpace(unify.Version),
		"api_version":  apiVersion,
		"occurs_check": s.Runner.Engine().OccursCheck(),
	})
}

func (s *Server) problem(w http.ResponseWriter, r *http.Request) (*domain.Problem, bool) {
	id := chi.URLParam(r, "id")
	if s.Loader == nil {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrProblemNotFound, id))
		return nil, false
	}
	p, err := s.Loader.GetProblem(r.Context(), id)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return nil, false
	}
	return p, true
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request, p *domain.Problem) {
	sol, err := s.Runner.Solve(r.Context(), p)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	if data, err := json.Marshal(sol); err == nil {
		s.Streams.Broadcast(sol.ProblemID, string(data))
	}
	s.writeJSON(w, http.StatusOK, sol)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProblemNotFound), errors.Is(err, domain.ErrSolutionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSyntax), errors.Is(err, domain.ErrValidation),
		errors.Is(err, runner.ErrInputTooLarge), errors.Is(err, runner.ErrInvalidUTF8):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStepLimit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "err", err)
	} else {
		s.Logger.Warn("request rejected", "err", err, "status", status)
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error(), ErrorKind: kindFor(err)})
}

func kindFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrProblemNotFound), errors.Is(err, domain.ErrSolutionNotFound):
		return "not_found"
	case errors.Is(err, runner.ErrInputTooLarge), errors.Is(err, runner.ErrInvalidUTF8):
		return domain.KindValidation
	default:
		return domain.ErrorKind(err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}
