// internal/daily/daily.go
//
// Day-keyed helpers shared by the offline scorer and the solve history.
//   - DateKey:   canonical YYYY-MM-DD (UTC) key for a timestamp.
//   - WordIndex: deterministic per-day index into a word list.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date and word length using
// HMAC(salt, YYYY-MM-DD|length) % listLen. Different lengths on the same day
// get independent picks.
func WordIndex(date time.Time, salt string, length, listLen int) int {
	if listLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date) + "|" + strconv.Itoa(length)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(listLen))
}
