package solver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/robalobadob/wordle/apps/solver/internal/scoring"
)

// sliceSource serves a fixed in-memory word list.
type sliceSource []string

func (s sliceSource) Lines() ([]string, error) { return append([]string(nil), s...), nil }
func (s sliceSource) Name() string             { return "test" }

type brokenSource struct{}

func (brokenSource) Lines() ([]string, error) { return nil, errors.New("disk on fire") }
func (brokenSource) Name() string             { return "broken" }

// recorder wraps a scorer and fails the test on any repeated guess.
type recorder struct {
	t     *testing.T
	inner scoring.Client
	mu    sync.Mutex
	seen  map[string]bool
	calls []string
}

func record(t *testing.T, inner scoring.Client) *recorder {
	return &recorder{t: t, inner: inner, seen: map[string]bool{}}
}

func (r *recorder) Score(ctx context.Context, guess string, size int) ([]scoring.Verdict, error) {
	r.mu.Lock()
	if r.seen[guess] {
		r.t.Errorf("guess %q submitted twice", guess)
	}
	r.seen[guess] = true
	r.calls = append(r.calls, guess)
	r.mu.Unlock()
	return r.inner.Score(ctx, guess, size)
}

var silent = scoring.ClientFunc(func(context.Context, string, int) ([]scoring.Verdict, error) {
	return nil, nil
})

func quiet() Option { return WithLogger(zerolog.Nop()) }

// syntheticDict returns n distinct three-letter consonant words.
func syntheticDict(n int) []string {
	const letters = "bcdfghjklmnpqrstvwxyz"
	var out []string
	for _, a := range letters {
		for _, b := range letters {
			for _, c := range letters {
				if len(out) == n {
					return out
				}
				out = append(out, string([]rune{a, b, c}))
			}
		}
	}
	return out
}

func TestPattern(t *testing.T) {
	p := Pattern(map[int]byte{0: 'c', 2: 't'}, 5)
	assert.Equal(t, "^c.t..$", p.String())
	assert.True(t, p.MatchString("chtwo"))
	assert.False(t, p.MatchString("crate"))
	assert.False(t, p.MatchString("cat"))
	assert.False(t, p.MatchString("chtwos"))

	assert.Equal(t, "^...$", Pattern(nil, 3).String())
	assert.Equal(t, "^dog$", Pattern(map[int]byte{0: 'd', 1: 'o', 2: 'g'}, 3).String())
}

func TestSolveNarrowsThroughDictionary(t *testing.T) {
	sc := record(t, scoring.NewFixedClient("can"))
	s := New(sc, sliceSource{"cat", "car", "can"}, quiet())

	res, err := s.Solve(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, Solved, res.Outcome)
	assert.Equal(t, "can", res.Word)
	assert.Equal(t, 4, res.Attempts)
	assert.Equal(t, []string{"aaa", "cat", "car", "can"}, res.Guesses)
	assert.Equal(t, res.Guesses, sc.calls)
}

func TestSolveSeedThatConfirmsEverySlot(t *testing.T) {
	cases := []struct {
		answer  string
		guesses []string
	}{
		{"aaa", []string{"aaa"}},
		{"eeee", []string{"aaaa", "eeee"}},
	}
	for _, tc := range cases {
		t.Run(tc.answer, func(t *testing.T) {
			sc := record(t, scoring.NewFixedClient(tc.answer))
			// the dictionary would fail the solve if narrowing were ever reached
			s := New(sc, sliceSource{"bcd", "fghj"}, quiet())

			res, err := s.Solve(context.Background(), len(tc.answer))
			require.NoError(t, err)
			assert.Equal(t, Solved, res.Outcome)
			assert.Equal(t, tc.answer, res.Word)
			assert.Equal(t, tc.guesses, res.Guesses)
			assert.Equal(t, len(tc.guesses), res.Attempts)
		})
	}
}

func TestSolveWalksVowelSeeds(t *testing.T) {
	sc := record(t, scoring.NewFixedClient("cut"))
	s := New(sc, sliceSource{"cat", "cot", "cut"}, quiet())

	res, err := s.Solve(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "cut", res.Word)
	assert.Equal(t, []string{"aaa", "eee", "uuu", "cut"}, res.Guesses)
	assert.Equal(t, 4, res.Attempts)
}

func TestSolveResultIsAssembledFromConfirmedSlots(t *testing.T) {
	const answer = "dog"
	var round int
	sc := scoring.ClientFunc(func(_ context.Context, guess string, _ int) ([]scoring.Verdict, error) {
		v := []scoring.Verdict{{Slot: round, Guess: string(answer[round]), Result: scoring.Correct}}
		round++
		return v, nil
	})
	s := New(record(t, sc), sliceSource{"dab", "dig", "dot", "dog"}, quiet())

	res, err := s.Solve(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, Solved, res.Outcome)
	assert.Equal(t, "dog", res.Word)
	assert.Equal(t, []string{"aaa", "dab", "dot"}, res.Guesses)
}

func TestSolveEmptyFeedbackExhaustsCeiling(t *testing.T) {
	sc := record(t, silent)
	s := New(sc, sliceSource(syntheticDict(200)), quiet())

	res, err := s.Solve(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, Exhausted, res.Outcome)
	assert.Equal(t, "", res.Word)
	assert.Equal(t, DefaultMaxAttempts, res.Attempts)
	assert.Len(t, sc.calls, DefaultMaxAttempts)
	assert.Equal(t, []string{"aaa", "eee", "uuu", "iii", "ooo", "bbb"}, sc.calls[:6])
}

func TestSolveScoringFailuresCountAsAttempts(t *testing.T) {
	failing := scoring.ClientFunc(func(context.Context, string, int) ([]scoring.Verdict, error) {
		return nil, &scoring.APIError{StatusCode: 502}
	})
	s := New(record(t, failing), sliceSource(syntheticDict(200)), quiet(), WithMaxAttempts(12))

	res, err := s.Solve(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, Exhausted, res.Outcome)
	assert.Equal(t, 12, res.Attempts)
	assert.Equal(t, "", res.Word)
}

func TestSolveEmptyDictionaryStopsAfterSeeds(t *testing.T) {
	sc := record(t, silent)
	s := New(sc, brokenSource{}, quiet())

	res, err := s.Solve(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, NoCandidates, res.Outcome)
	assert.Equal(t, "", res.Word)
	assert.Equal(t, []string{"aaaaa", "eeeee", "uuuuu", "iiiii", "ooooo"}, sc.calls)
	assert.Equal(t, 5, res.Attempts)
}

func TestSolveNoCandidatesNeverSubmitsEmptyGuess(t *testing.T) {
	// the answer is missing from the dictionary
	sc := record(t, scoring.NewFixedClient("cub"))
	s := New(sc, sliceSource{"cat", "cot"}, quiet())

	res, err := s.Solve(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, NoCandidates, res.Outcome)
	assert.Equal(t, "", res.Word)
	assert.NotContains(t, sc.calls, "")
	assert.Equal(t, []string{"aaa", "eee", "uuu"}, sc.calls)
}

func TestSolveCeilingWithLongAnswerList(t *testing.T) {
	// every guess confirms only the first slot, so narrowing walks the dictionary
	sc := scoring.ClientFunc(func(_ context.Context, guess string, _ int) ([]scoring.Verdict, error) {
		return []scoring.Verdict{{Slot: 0, Guess: "b", Result: scoring.Correct}}, nil
	})
	s := New(record(t, sc), sliceSource(syntheticDict(400)), quiet(), WithMaxAttempts(30))

	res, err := s.Solve(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, Exhausted, res.Outcome)
	assert.Equal(t, 30, res.Attempts)
	for _, g := range res.Guesses[1:] {
		assert.Equal(t, byte('b'), g[0])
	}
}

func TestSolveInvalidLength(t *testing.T) {
	s := New(silent, sliceSource{}, quiet())
	_, err := s.Solve(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestSolveCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	sc := scoring.ClientFunc(func(ctx context.Context, _ string, _ int) ([]scoring.Verdict, error) {
		calls++
		if calls == 2 {
			cancel()
			return nil, ctx.Err()
		}
		return nil, nil
	})
	s := New(sc, sliceSource(syntheticDict(10)), quiet())

	res, err := s.Solve(ctx, 3)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Canceled, res.Outcome)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, "", res.Word)
}

func TestApplyIsMonotonic(t *testing.T) {
	r := newRun(3, nil, DefaultVowels)
	lg := zerolog.Nop()

	r.apply(lg, []scoring.Verdict{{Slot: 0, Guess: "c", Result: scoring.Correct}})
	r.apply(lg, []scoring.Verdict{
		{Slot: 0, Guess: "x", Result: scoring.Correct},
		{Slot: 1, Guess: "a", Result: scoring.Present},
		{Slot: 2, Guess: "T", Result: scoring.Correct},
		{Slot: 7, Guess: "z", Result: scoring.Correct},
		{Slot: 1, Guess: "ab", Result: scoring.Correct},
	})
	assert.Equal(t, map[int]byte{0: 'c', 2: 't'}, r.correct)

	r.apply(lg, nil)
	assert.Equal(t, map[int]byte{0: 'c', 2: 't'}, r.correct)
}

func TestConcurrentSolvesAreIsolated(t *testing.T) {
	defer goleak.VerifyNone(t)

	dict := sliceSource{"cat", "car", "can", "cut", "cot", "dog", "dig", "dot"}
	answers := []string{"can", "cut", "dog", "dot", "car", "cat"}

	var wg sync.WaitGroup
	results := make([]Result, len(answers))
	errs := make([]error, len(answers))
	for i, ans := range answers {
		wg.Add(1)
		go func(i int, ans string) {
			defer wg.Done()
			s := New(scoring.NewFixedClient(ans), dict, quiet())
			results[i], errs[i] = s.Solve(context.Background(), 3)
		}(i, ans)
	}
	wg.Wait()

	for i, ans := range answers {
		require.NoError(t, errs[i], ans)
		assert.Equal(t, ans, results[i].Word, fmt.Sprintf("solve %d", i))
	}
}

func TestSharedSolverAcrossGoroutines(t *testing.T) {
	s := New(scoring.NewFixedClient("dot"), sliceSource{"dog", "dig", "dot"}, quiet())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.Solve(context.Background(), 3)
			assert.NoError(t, err)
			assert.Equal(t, "dot", res.Word)
		}()
	}
	wg.Wait()
}
