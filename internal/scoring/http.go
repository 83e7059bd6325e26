// internal/scoring/http.go
//
// HTTP client for the remote puzzle API.
//
//   GET {base}/daily?guess=<guess>&size=<n>  →  [{"slot":0,"guess":"a","result":"absent"}, ...]
//
// Non-2xx responses become *APIError. No retries are attempted.

package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public puzzle API.
const DefaultBaseURL = "https://wordle.votee.dev:8000"

const maxResponseSize = 1 << 20 // 1MB

// APIError is a non-2xx answer from the remote API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("scoring api %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("scoring api %d", e.StatusCode)
}

// HTTPClient scores guesses against the remote daily puzzle.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for baseURL (DefaultBaseURL when empty)
// with the given per-request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid scoring base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid scoring base url %q", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: u.String(),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Score submits guess for the daily puzzle of the given size.
func (c *HTTPClient) Score(ctx context.Context, guess string, size int) ([]Verdict, error) {
	q := url.Values{}
	q.Set("guess", guess)
	q.Set("size", strconv.Itoa(size))
	reqURL := c.baseURL + "/daily?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(b)}
	}
	if len(b) == 0 {
		return nil, errors.New("empty response body")
	}

	var out []Verdict
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return out, nil
}

// errorMessage pulls a human-readable message out of an error body, if any.
func errorMessage(b []byte) string {
	var m map[string]any
	if json.Unmarshal(b, &m) != nil {
		s := strings.TrimSpace(string(b))
		if len(s) > 200 {
			s = s[:200]
		}
		return s
	}
	for _, k := range []string{"message", "detail", "error"} {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
