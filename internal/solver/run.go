// internal/solver/run.go
//
// Per-solve state: confirmed letters, used guesses, attempt and seed counters.
// Responsibilities:
//   - Pick the next guess (vowel seed or first matching dictionary word).
//   - Merge "correct" verdicts monotonically.
//   - Build the positional filter pattern.

package solver

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/solver/internal/scoring"
)

// run is the state of one solve. It is never shared between solves.
type run struct {
	length   int
	dict     []string
	vowels   []byte
	correct  map[int]byte // slot -> confirmed letter; entries are never removed
	used     map[string]struct{}
	guesses  []string
	attempts int
	seed     int // next index into vowels
}

func newRun(length int, dict []string, vowels []byte) *run {
	return &run{
		length:  length,
		dict:    dict,
		vowels:  vowels,
		correct: make(map[int]byte, length),
		used:    make(map[string]struct{}),
	}
}

func (r *run) solved() bool { return len(r.correct) == r.length }

// next picks the guess to submit. ok is false when no untried guess exists.
func (r *run) next() (guess string, ok bool) {
	if len(r.correct) == 0 {
		for r.seed < len(r.vowels) {
			g := strings.Repeat(string(r.vowels[r.seed]), r.length)
			r.seed++
			if !r.isUsed(g) {
				return g, true
			}
		}
	}
	pattern := Pattern(r.correct, r.length)
	return lo.Find(r.dict, func(w string) bool {
		return !r.isUsed(w) && pattern.MatchString(w)
	})
}

func (r *run) isUsed(g string) bool {
	_, ok := r.used[g]
	return ok
}

func (r *run) markUsed(g string) {
	r.used[g] = struct{}{}
	r.guesses = append(r.guesses, g)
}

// apply records the "correct" verdicts. Malformed verdicts and verdicts that
// contradict an already confirmed slot are dropped.
func (r *run) apply(lg zerolog.Logger, verdicts []scoring.Verdict) {
	for _, v := range verdicts {
		if v.Result != scoring.Correct {
			continue
		}
		letter := strings.ToLower(v.Guess)
		if v.Slot < 0 || v.Slot >= r.length || len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
			lg.Warn().Int("slot", v.Slot).Str("letter", v.Guess).Msg("ignoring malformed verdict")
			continue
		}
		if prev, ok := r.correct[v.Slot]; ok {
			if prev != letter[0] {
				lg.Warn().Int("slot", v.Slot).Str("kept", string(prev)).Str("got", letter).Msg("conflicting verdict ignored")
			}
			continue
		}
		r.correct[v.Slot] = letter[0]
	}
}

// word assembles the confirmed letters. Unconfirmed slots are left out.
func (r *run) word() string {
	var b strings.Builder
	for i := 0; i < r.length; i++ {
		if c, ok := r.correct[i]; ok {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Pattern builds the positional filter for the confirmed letters: the letter
// itself at a confirmed slot and "." elsewhere, anchored at both ends.
// Pattern({0:'c', 2:'t'}, 5) is ^c.t..$.
func Pattern(correct map[int]byte, length int) *regexp.Regexp {
	var b strings.Builder
	b.Grow(length + 2)
	b.WriteByte('^')
	for i := 0; i < length; i++ {
		if c, ok := correct[i]; ok {
			b.WriteString(regexp.QuoteMeta(string(c)))
		} else {
			b.WriteByte('.')
		}
	}
	b.WriteByte('$')
	return regexp.MustCompile(b.String())
}
