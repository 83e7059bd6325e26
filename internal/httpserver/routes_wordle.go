// internal/httpserver/routes_wordle.go
//
// Solver routes, mounted under /api:
//   - GET /api/wordle/solve?size=N   → solve today's puzzle of N letters (default 5)
//   - GET /api/wordle/history        → recent solves (?date=YYYY-MM-DD&limit=N)
//
// The solve response body is a JSON string: the solved word, or "" when the
// solver gave up. Outcome and attempt count travel in X-Solve-* headers.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/solver/internal/history"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

const (
	defaultSize  = 5
	maxSize      = 32
	maxListLimit = 200
)

// mountWordle registers all /wordle routes.
func (s *Server) mountWordle(r chi.Router) {
	r.Route("/wordle", func(r chi.Router) {
		r.Get("/solve", s.handleSolve)
		r.Get("/history", s.handleHistory)
	})
}

// parseSize reads ?size=, defaulting to 5.
func parseSize(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("size")
	if raw == "" {
		return defaultSize, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxSize {
		return 0, errors.New("size must be an integer between 1 and " + strconv.Itoa(maxSize))
	}
	return n, nil
}

// handleSolve runs one solve and answers with the word as a JSON string.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	size, err := parseSize(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.solveTimeout)
	defer cancel()

	res, err := s.solver.Solve(ctx, size)
	s.record(r, size, res)
	if err != nil {
		if r.Context().Err() != nil {
			// client went away; nobody is left to answer
			hlog.FromRequest(r).Warn().Err(err).Int("size", size).Msg("solve interrupted")
			return
		}
		if errors.Is(err, context.DeadlineExceeded) {
			hlog.FromRequest(r).Error().Err(err).Int("size", size).Int("attempts", res.Attempts).Msg("solve timed out")
			writeError(w, http.StatusInternalServerError, "solve timed out after "+s.solveTimeout.String())
			return
		}
		hlog.FromRequest(r).Error().Err(err).Int("size", size).Msg("solve failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("X-Solve-Outcome", string(res.Outcome))
	w.Header().Set("X-Solve-Attempts", strconv.Itoa(res.Attempts))
	writeJSON(w, http.StatusOK, res.Word)
}

// record stores the solve in history; failures are logged only.
func (s *Server) record(r *http.Request, size int, res solver.Result) {
	if s.history == nil || res.Outcome == "" {
		return
	}
	e := &history.Entry{
		Size:      size,
		Word:      res.Word,
		Outcome:   string(res.Outcome),
		Attempts:  res.Attempts,
		Guesses:   res.Guesses,
		ElapsedMs: res.Elapsed.Milliseconds(),
	}
	// the request may already be canceled; history should still be written
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 5*time.Second)
	defer cancel()
	if err := s.history.Record(ctx, e); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("record solve")
	}
}

// historyRes is returned by /wordle/history.
type historyRes struct {
	Date    string          `json:"date,omitempty"`
	Entries []history.Entry `json:"entries"`
}

// handleHistory lists recent solves, optionally for a single day.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusOK, historyRes{Entries: []history.Entry{}})
		return
	}

	limit := history.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			writeError(w, http.StatusBadRequest, "limit must be an integer between 1 and "+strconv.Itoa(maxListLimit))
			return
		}
		limit = n
	}

	var (
		entries []history.Entry
		err     error
	)
	date := r.URL.Query().Get("date")
	if date != "" {
		if _, perr := time.Parse("2006-01-02", date); perr != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		entries, err = s.history.ByDate(r.Context(), date, limit)
	} else {
		entries, err = s.history.Recent(r.Context(), limit)
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list history")
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	writeJSON(w, http.StatusOK, historyRes{Date: date, Entries: entries})
}
