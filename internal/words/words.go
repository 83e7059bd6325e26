// internal/words/words.go
//
// Dictionary loading for the solver.
//
// Responsibilities:
//   - Read raw lines from a word list source (file on disk or embedded asset).
//   - Normalize (trim + lowercase) and keep only words of the requested length
//     made of a–z letters, preserving source order.
//   - Degrade to an empty dictionary when the source cannot be read.
//
// Sources:
//   - FileSource(path): newline-delimited file; relative paths resolve against
//     the process working directory.
//   - EmbeddedSource(): the list compiled in by the assets package.
//
// Nothing is cached: every call to Load re-reads and re-filters the source, so
// each solve owns its own slice.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/solver/assets"
)

// Source yields the raw lines of a word list.
type Source interface {
	// Lines returns every line of the list in order, unfiltered.
	Lines() ([]string, error)
	// Name identifies the source in logs.
	Name() string
}

// maxLineBytes bounds a single line; longer lines are skipped.
const maxLineBytes = 4096

type fileSource struct{ path string }

// FileSource reads one word per line from path.
func FileSource(path string) Source { return fileSource{path: path} }

func (f fileSource) Name() string { return f.path }

func (f fileSource) Lines() ([]string, error) {
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer fh.Close()

	var out []string
	br := bufio.NewReaderSize(fh, maxLineBytes)
	for {
		line, isPrefix, err := br.ReadLine()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read word list %s: %w", f.path, err)
		}
		if isPrefix {
			// longer than any word; drop the rest of the line and move on
			for isPrefix && err == nil {
				_, isPrefix, err = br.ReadLine()
			}
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("read word list %s: %w", f.path, err)
			}
			continue
		}
		out = append(out, string(line))
	}
}

type embeddedSource struct{}

// EmbeddedSource serves the dictionary bundled with the binary.
func EmbeddedSource() Source { return embeddedSource{} }

func (embeddedSource) Name() string { return "embedded:" + assets.WordsFile }

func (embeddedSource) Lines() ([]string, error) { return assets.WordLines() }

// Load returns the words of exactly length letters from src.
// A read failure is logged and yields an empty, non-nil dictionary.
func Load(src Source, length int) []string {
	lines, err := src.Lines()
	if err != nil {
		log.Error().Err(err).Str("source", src.Name()).Msg("failed to load word list")
		return []string{}
	}
	dict := Filter(lines, length)
	log.Debug().Str("source", src.Name()).Int("size", length).Int("words", len(dict)).Msg("dictionary loaded")
	return dict
}

// Filter normalizes lines and keeps lowercase a–z words of the given length.
func Filter(lines []string, length int) []string {
	if length <= 0 {
		return []string{}
	}
	normalized := lo.Map(lines, func(line string, _ int) string {
		return strings.TrimSpace(strings.ToLower(line))
	})
	return lo.Filter(normalized, func(w string, _ int) bool {
		return len(w) == length && isAlpha(w)
	})
}

// isAlpha reports whether s is non-empty and all lowercase ASCII letters.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
