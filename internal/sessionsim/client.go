package sessionsim

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

// IsCode reports whether err is an APIError carrying code.
func IsCode(err error, code string) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Code == code
}

// Client talks JSON to the planner API.
type Client struct {
	base    string
	token   string
	http    *http.Client
	retries int
	limiter *rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRateLimitRetries retries a request answered with 429 up to n more
// times, waiting for the server's Retry-After between attempts.
func WithRateLimitRetries(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.retries = n
		}
	}
}

// WithRequestLimiter makes every request wait for a token from l first.
// Clients sharing l share its rate.
func WithRequestLimiter(l *rate.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = l
	}
}

// NewClient returns a client for baseURL with the given request timeout.
func NewClient(baseURL, token string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		base:  baseURL,
		token: token,
		http:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends body as JSON when it is non-nil and decodes a 2xx response into out.
// A rate limited request is rejected before the handler runs, so it is safe
// to send again.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	for attempt := 0; ; attempt++ {
		wait, err := c.send(ctx, method, path, payload, out)
		if wait == 0 || attempt >= c.retries {
			return err
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(wait):
		}
	}
}

// send performs one request. A positive wait means the request was rate
// limited and may be sent again after it.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, out any) (time.Duration, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("%s %s: %w", method, path, err)
		}
	}
	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ae := &APIError{Status: resp.StatusCode}
		_ = json.Unmarshal(data, ae)
		if resp.StatusCode == http.StatusTooManyRequests {
			return retryAfter(resp.Header.Get("Retry-After")), ae
		}
		return 0, ae
	}
	if out == nil || len(data) == 0 {
		return 0, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return 0, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return 0, nil
}

// retryAfter reads a Retry-After value in seconds, bounded to
// [minRetryWait, maxRetryWait].
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil {
		return minRetryWait
	}
	return min(max(time.Duration(secs)*time.Second, minRetryWait), maxRetryWait)
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// Recommendations lists the current candidates.
func (c *Client) Recommendations(ctx context.Context) ([]Candidate, error) {
	var out []Candidate
	err := c.do(ctx, http.MethodGet, "/api/v1/recommendations", nil, &out)
	return out, err
}

// Current returns the top candidate.
func (c *Client) Current(ctx context.Context) (Candidate, error) {
	var out Candidate
	err := c.do(ctx, http.MethodGet, "/api/v1/recommendations/current", nil, &out)
	return out, err
}

type decisionRequest struct {
	MatchKey string `json:"match_key"`
}

// Accept loads the candidate with key into the form.
func (c *Client) Accept(ctx context.Context, key string) (Decision, error) {
	var out Decision
	err := c.do(ctx, http.MethodPost, "/api/v1/recommendations/accept", decisionRequest{MatchKey: key}, &out)
	return out, err
}

// Skip dismisses the candidate with key.
func (c *Client) Skip(ctx context.Context, key string) (Decision, error) {
	var out Decision
	err := c.do(ctx, http.MethodPost, "/api/v1/recommendations/skip", decisionRequest{MatchKey: key}, &out)
	return out, err
}

// Reset clears the dismissed recommendations.
func (c *Client) Reset(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/recommendations/reset", nil, nil)
}

// UpdateForm replaces the working form.
func (c *Client) UpdateForm(ctx context.Context, f Form) (Form, error) {
	var out Form
	err := c.do(ctx, http.MethodPut, "/api/v1/form", f, &out)
	return out, err
}

// CreateMatch plans f, or the working form when f is nil.
func (c *Client) CreateMatch(ctx context.Context, f *Form) (Match, error) {
	var out Match
	var body any
	if f != nil {
		body = f
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/matches", body, &out)
	return out, err
}

// Matches lists planned matches.
func (c *Client) Matches(ctx context.Context) ([]Match, error) {
	var out []Match
	err := c.do(ctx, http.MethodGet, "/api/v1/matches", nil, &out)
	return out, err
}

// RemoveMatch deletes a planned match and reports whether it existed.
func (c *Client) RemoveMatch(ctx context.Context, key string) (bool, error) {
	var out struct {
		Removed bool `json:"removed"`
	}
	err := c.do(ctx, http.MethodDelete, "/api/v1/matches/"+url.PathEscape(key), nil, &out)
	return out.Removed, err
}

// Pairs returns the top limit pairs.
func (c *Client) Pairs(ctx context.Context, limit int) ([]PairEntry, error) {
	var out []PairEntry
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/pairs?limit=%d", limit), nil, &out)
	return out, err
}
