// internal/scoring/local.go
//
// Offline scorer used for development (SCORING_MODE=local) and tests.
//
// The answer for a size is either fixed or picked per UTC day from the
// dictionary with daily.WordIndex, mirroring the remote "daily" puzzle.
// Guesses are scored with the standard two-pass Wordle algorithm so repeated
// letters behave like the real game.

package scoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// LocalClient scores guesses without any network access.
type LocalClient struct {
	answer string // fixed answer; empty means pick from source per day
	source words.Source
	salt   string
	now    func() time.Time
}

// NewLocalClient returns a scorer that picks the daily answer of each size
// from src using salt.
func NewLocalClient(src words.Source, salt string) *LocalClient {
	return &LocalClient{source: src, salt: salt, now: time.Now}
}

// NewFixedClient returns a scorer whose answer is always answer.
func NewFixedClient(answer string) *LocalClient {
	return &LocalClient{answer: strings.ToLower(strings.TrimSpace(answer)), now: time.Now}
}

// Answer reports the answer used for size on the current day.
func (c *LocalClient) Answer(size int) (string, error) {
	if c.answer != "" {
		if len(c.answer) != size {
			return "", fmt.Errorf("no answer of size %d", size)
		}
		return c.answer, nil
	}
	dict := words.Load(c.source, size)
	if len(dict) == 0 {
		return "", fmt.Errorf("no answer of size %d", size)
	}
	return dict[daily.WordIndex(c.now(), c.salt, size, len(dict))], nil
}

// Score evaluates guess against the answer for size.
func (c *LocalClient) Score(ctx context.Context, guess string, size int) ([]Verdict, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	answer, err := c.Answer(size)
	if err != nil {
		return nil, err
	}
	guess = strings.ToLower(guess)
	if len(guess) != size {
		return nil, fmt.Errorf("guess %q is not %d letters", guess, size)
	}

	marks := scoreGuess(answer, guess)
	out := make([]Verdict, size)
	for i, m := range marks {
		out[i] = Verdict{Slot: i, Guess: string(guess[i]), Result: m}
	}
	return out, nil
}

// scoreGuess implements the two-pass Wordle scoring.
//
// Pass 1: exact matches are Correct; remaining answer letters are counted.
// Pass 2: other guess letters are Present while copies remain, else Absent.
func scoreGuess(answer, guess string) []Result {
	n := len(guess)
	res := make([]Result, n)
	counts := make(map[byte]int, n)

	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = Correct
		} else {
			counts[answer[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == Correct {
			continue
		}
		if c := guess[i]; counts[c] > 0 {
			res[i] = Present
			counts[c]--
		} else {
			res[i] = Absent
		}
	}
	return res
}
