// internal/history/history.go
//
// Solve history: one Entry per finished solve request.
// Backends:
//   - memory (default): bounded, process-local, lost on restart.
//   - sqlite (DB_PATH set): durable, migrations embedded in the binary.
//
// History is write-behind diagnostics only; the solver never reads it.

package history

import (
	"context"
	"time"
)

// DefaultLimit caps listing queries when the caller passes limit <= 0.
const DefaultLimit = 20

// Entry is one finished solve.
type Entry struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD (UTC) of the solve
	Size      int       `json:"size"`
	Word      string    `json:"word"`
	Outcome   string    `json:"outcome"`
	Attempts  int       `json:"attempts"`
	Guesses   []string  `json:"guesses"`
	ElapsedMs int64     `json:"elapsedMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists and lists solve entries.
type Store interface {
	// Record saves e and assigns its ID.
	Record(ctx context.Context, e *Entry) error

	// Recent lists the newest entries first.
	Recent(ctx context.Context, limit int) ([]Entry, error)

	// ByDate lists entries of one day (YYYY-MM-DD), newest first.
	ByDate(ctx context.Context, date string, limit int) ([]Entry, error)

	// Close releases backend resources.
	Close() error
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
