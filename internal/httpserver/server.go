// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle solver.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, access log, panic recovery,
//     JSON content type, CORS).
//   - Public endpoints: "/", "/health".
//   - Solver endpoints: mounted under /api/wordle (see routes_wordle.go).
//
// Notes:
//   - Error bodies are always JSON: {"message": "..."}.
//   - A solve can take up to the attempt ceiling of remote round trips, so the
//     solve deadline is configurable rather than fixed. It is enforced by the
//     solve handler itself so that a timed-out solve still gets a JSON 500.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/history"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// Solver is the part of solver.Solver the HTTP layer depends on.
type Solver interface {
	Solve(ctx context.Context, length int) (solver.Result, error)
}

// Options tunes the middleware stack.
type Options struct {
	ClientOrigin   string        // CORS origin; "*" or empty allows any origin
	RequestTimeout time.Duration // per-solve deadline
}

// Server bundles the router, the solver and the solve history.
type Server struct {
	r            *chi.Mux
	solver       Solver
	history      history.Store
	solveTimeout time.Duration
}

// New constructs a Server, installs middleware, and registers routes.
func New(sv Solver, hist history.Store, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	s := &Server{r: chi.NewRouter(), solver: sv, history: hist, solveTimeout: opts.RequestTimeout}

	// --- middleware ---
	s.r.Use(chimw.RequestID)         // add X-Request-ID
	s.r.Use(chimw.RealIP)            // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog(log.Logger))   // structured request log
	s.r.Use(recoverJSON)             // panics become JSON 500s
	s.r.Use(jsonContentType)         // default JSON responses
	s.r.Use(cors(opts.ClientOrigin)) // origin-aware CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordle-solver",
			"endpoints": []string{"/health", "GET /api/wordle/solve?size=N", "GET /api/wordle/history"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	})

	s.r.Route("/api", func(r chi.Router) {
		s.mountWordle(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found: "+r.URL.Path)
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return s
}

// Router exposes the internal router (useful for tests and http.Server).
func (s *Server) Router() chi.Router { return s.r }

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Message: msg})
}
