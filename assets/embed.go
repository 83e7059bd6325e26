// assets/embed.go
//
// Word list compiled into the binary. Used when no WORDS_FILE is configured
// so the solver always has a dictionary to narrow against.

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words.txt
var FS embed.FS

// WordsFile is the name of the embedded dictionary inside FS.
const WordsFile = "words.txt"

// readLines returns the raw, trimmed lines of an embedded file.
// Blank lines and "#" comments are skipped; no case or length filtering is done.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// WordLines returns the embedded dictionary lines in file order.
func WordLines() ([]string, error) {
	return readLines(WordsFile)
}
