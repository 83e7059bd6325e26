// internal/solver/solver.go
//
// Guess/feedback loop that solves a remote Wordle.
//
// Strategy:
//   1. Seeding: while no slot is confirmed, guess a vowel repeated across the
//      whole word, in the fixed order a, e, u, i, o.
//   2. Narrowing: once some slots are confirmed, filter the dictionary with a
//      positional pattern (confirmed letters fixed, "." elsewhere), drop words
//      already guessed and submit the first survivor in dictionary order.
//   3. Solved when every slot is confirmed; the answer is assembled from the
//      confirmed letters.
//
// Only "correct" verdicts are used. A failed scoring round counts as an
// attempt with no information. The loop stops after MaxAttempts guesses or
// when the dictionary has no untried candidate left.
//
// A Solver holds no per-solve state and is safe for concurrent use; every
// call to Solve builds its own dictionary and bookkeeping.

package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/scoring"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// DefaultMaxAttempts is the attempt ceiling for a single solve.
const DefaultMaxAttempts = 100

// DefaultVowels is the seed order, most frequent first.
var DefaultVowels = []byte{'a', 'e', 'u', 'i', 'o'}

// ErrInvalidLength is returned when the requested word length is below 1.
var ErrInvalidLength = errors.New("word length must be at least 1")

// Outcome is the terminal state of a solve.
type Outcome string

const (
	Solved       Outcome = "solved"        // every slot confirmed
	Exhausted    Outcome = "exhausted"     // attempt ceiling reached
	NoCandidates Outcome = "no_candidates" // nothing left to guess
	Canceled     Outcome = "canceled"      // context done before finishing
)

// Result describes a finished solve.
type Result struct {
	Word     string        // solved word, "" unless Outcome == Solved
	Outcome  Outcome       // terminal state
	Attempts int           // guesses submitted to the scorer
	Guesses  []string      // submitted guesses in order
	Elapsed  time.Duration // wall time of the solve
}

// Solver runs solves against a scorer using a dictionary source.
type Solver struct {
	scorer      scoring.Client
	source      words.Source
	maxAttempts int
	vowels      []byte
	logger      zerolog.Logger
}

// Option customizes a Solver.
type Option func(*Solver)

// WithMaxAttempts overrides the attempt ceiling. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithVowels overrides the seed letters and their order.
func WithVowels(v []byte) Option {
	return func(s *Solver) { s.vowels = append([]byte(nil), v...) }
}

// WithLogger sets the logger used for per-solve diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Solver) { s.logger = l }
}

// New returns a Solver that scores with scorer and loads candidates from src.
func New(scorer scoring.Client, src words.Source, opts ...Option) *Solver {
	s := &Solver{
		scorer:      scorer,
		source:      src,
		maxAttempts: DefaultMaxAttempts,
		vowels:      DefaultVowels,
		logger:      log.Logger,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Solve guesses the secret word of the given length.
//
// The returned error is non-nil only for an invalid length or a done context;
// exhaustion and running out of candidates are reported through
// Result.Outcome with an empty Word.
func (s *Solver) Solve(ctx context.Context, length int) (Result, error) {
	if length < 1 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidLength, length)
	}
	start := time.Now()
	lg := s.logger.With().Int("size", length).Logger()

	r := newRun(length, words.Load(s.source, length), s.vowels)
	res := Result{Outcome: Exhausted}

	for !r.solved() && r.attempts < s.maxAttempts {
		if err := ctx.Err(); err != nil {
			return s.finish(lg, r, Result{Outcome: Canceled}, start), err
		}

		guess, ok := r.next()
		if !ok {
			res.Outcome = NoCandidates
			break
		}

		verdicts, err := s.scorer.Score(ctx, guess, length)
		r.markUsed(guess)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				r.attempts++
				return s.finish(lg, r, Result{Outcome: Canceled}, start), ctxErr
			}
			// no information this round; the attempt is still spent
			lg.Warn().Err(err).Str("guess", guess).Int("attempt", r.attempts+1).Msg("scoring failed")
			verdicts = nil
		}

		r.apply(lg, verdicts)
		r.attempts++
		lg.Debug().Str("guess", guess).Int("attempt", r.attempts).Int("confirmed", len(r.correct)).Msg("guess scored")
	}

	if r.solved() {
		res = Result{Outcome: Solved, Word: r.word()}
	}
	return s.finish(lg, r, res, start), nil
}

// finish fills in the bookkeeping fields of res and logs the outcome.
func (s *Solver) finish(lg zerolog.Logger, r *run, res Result, start time.Time) Result {
	res.Attempts = r.attempts
	res.Guesses = r.guesses
	res.Elapsed = time.Since(start)
	lg.Info().
		Str("outcome", string(res.Outcome)).
		Str("word", res.Word).
		Int("attempts", res.Attempts).
		Dur("elapsed", res.Elapsed).
		Msg("solve finished")
	return res
}
