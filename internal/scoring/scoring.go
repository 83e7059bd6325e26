// internal/scoring/scoring.go
//
// Types shared by every scoring backend.
// A scorer maps a guess to one Verdict per letter position.
//
// Backends:
//   - HTTPClient:  the remote puzzle API (GET /daily?guess=&size=).
//   - LocalClient: offline two-pass Wordle scoring against a known answer.

package scoring

import "context"

// Result is the per-letter verdict tag reported by a scorer.
type Result string

const (
	Correct Result = "correct" // right letter, right slot
	Present Result = "present" // letter occurs elsewhere
	Absent  Result = "absent"  // letter not in the answer (or no copies left)
)

// Verdict is the evaluation of one slot of a guess.
// The JSON shape matches the remote API: {"slot":0,"guess":"a","result":"correct"}.
type Verdict struct {
	Slot   int    `json:"slot"`
	Guess  string `json:"guess"`
	Result Result `json:"result"`
}

// Client scores a guess of the given size.
// Implementations return an error on transport or remote failure; the solver
// decides how to treat it.
type Client interface {
	Score(ctx context.Context, guess string, size int) ([]Verdict, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, guess string, size int) ([]Verdict, error)

// Score calls f.
func (f ClientFunc) Score(ctx context.Context, guess string, size int) ([]Verdict, error) {
	return f(ctx, guess, size)
}
