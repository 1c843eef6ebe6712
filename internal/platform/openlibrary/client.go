package openlibrary

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

const (
	DefaultBaseURL    = "https://openlibrary.org"
	DefaultMinDelay   = 1100 * time.Millisecond
	DefaultTimeout    = 8 * time.Second
	DefaultMaxRetries = 5
	DefaultBackoffCap = 30 * time.Second
)

// ErrNotFound means the upstream has no record for the requested ISBN.
var ErrNotFound = errors.New("openlibrary: not found")

// StatusError is a non-retryable upstream response, or the last retryable
// status after retries were exhausted.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openlibrary: unexpected status code %d", e.StatusCode)
}

type Config struct {
	BaseURL    string
	UserAgent  string
	MinDelay   time.Duration
	Timeout    time.Duration
	MaxRetries int
	BackoffCap time.Duration
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	throttle   *Throttle
	maxRetries int
	backoffCap time.Duration

	// sleep is swapped out in tests to avoid real backoff waits.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "book-review-platform"
	}
	if cfg.MinDelay <= 0 {
		cfg.MinDelay = DefaultMinDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.BackoffCap <= 0 {
		cfg.BackoffCap = DefaultBackoffCap
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		throttle:   NewThrottle(cfg.MinDelay),
		maxRetries: cfg.MaxRetries,
		backoffCap: cfg.BackoffCap,
		sleep:      sleepCtx,
	}
}

type Author struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type Publisher struct {
	Name string `json:"name"`
}

type Cover struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

// Record matches one entry of api/books?jscmd=data. Raw keeps the undecoded
// node so callers can persist fields we do not model.
type Record struct {
	Title         string          `json:"title"`
	Authors       []Author        `json:"authors"`
	Cover         Cover           `json:"cover"`
	NumberOfPages int             `json:"number_of_pages"`
	PublishDate   string          `json:"publish_date"`
	Publishers    []Publisher     `json:"publishers"`
	Raw           json.RawMessage `json:"-"`
}

// GetBooksByISBN fetches metadata for up to one batch of ISBNs in a single
// request. The result is keyed by bare ISBN; ISBNs unknown upstream are
// simply absent.
func (c *Client) GetBooksByISBN(ctx context.Context, isbns []string) (map[string]Record, error) {
	if len(isbns) == 0 {
		return nil, nil
	}

	bibkeys := make([]string, len(isbns))
	for i, isbn := range isbns {
		bibkeys[i] = "ISBN:" + isbn
	}

	q := url.Values{}
	q.Set("bibkeys", strings.Join(bibkeys, ","))
	q.Set("jscmd", "data")
	q.Set("format", "json")

	body, err := c.get(ctx, c.baseURL+"/api/books?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var nodes map[string]json.RawMessage
	if err := json.Unmarshal(body, &nodes); err != nil {
		return nil, fmt.Errorf("decode batch response: %w", err)
	}

	out := make(map[string]Record, len(nodes))
	for key, raw := range nodes {
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", key, err)
		}
		rec.Raw = raw
		out[strings.TrimPrefix(key, "ISBN:")] = rec
	}
	return out, nil
}

// GetBookByISBN is a single lookup expressed as a batch of one.
func (c *Client) GetBookByISBN(ctx context.Context, isbn string) (Record, error) {
	records, err := c.GetBooksByISBN(ctx, []string{isbn})
	if err != nil {
		return Record{}, err
	}
	rec, ok := records[isbn]
	if !ok {
		return Record{}, fmt.Errorf("isbn %s: %w", isbn, ErrNotFound)
	}
	return rec, nil
}

// get issues a throttled GET with retries. 429 and 5xx responses are retried
// with a Retry-After hint when the server sends one, otherwise exponential
// backoff capped at backoffCap; other non-200 statuses fail immediately.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	retryAfter := ""

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, c.backoff(attempt-1, retryAfter)); err != nil {
				return nil, err
			}
		}

		if err := c.throttle.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			retryAfter = ""
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return nil, readErr
			}
			return body, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = &StatusError{StatusCode: resp.StatusCode}
			retryAfter = resp.Header.Get("Retry-After")
		case resp.StatusCode == http.StatusNotFound:
			return nil, ErrNotFound
		default:
			return nil, &StatusError{StatusCode: resp.StatusCode}
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", c.maxRetries, lastErr)
}

// backoff prefers a well-formed integer Retry-After hint; a missing or
// malformed hint falls back to min(2^attempt, cap) seconds.
func (c *Client) backoff(attempt int, retryAfter string) time.Duration {
	if retryAfter != "" {
		if secs, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	// Large attempt counts would overflow the shift; anything past 2^30s is
	// beyond any sane cap already.
	if attempt > 30 {
		return c.backoffCap
	}
	d := time.Duration(1<<uint(attempt)) * time.Second
	if d > c.backoffCap {
		d = c.backoffCap
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
