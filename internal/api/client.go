// Package api is the HTTP client for the project-management backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Config holds connection settings for the backend.
type Config struct {
	BaseURL    string
	TimeoutMs  int
	MaxRetries int // extra attempts for GET requests only
}

// DefaultConfig returns a Config pointing at a local backend.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://localhost:5000/api",
		TimeoutMs:  10000,
		MaxRetries: 1,
	}
}

// Client talks to the backend over HTTP/JSON. It is safe for concurrent use.
type Client struct {
	cfg      Config
	http     *http.Client
	observer CallObserver

	mu    sync.RWMutex
	token string
}

// NewClient creates a Client for cfg.
func NewClient(cfg Config, observer CallObserver) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// SetToken sets the bearer token sent with every request. Empty clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// request describes one logical call; it may be attempted more than once.
type request struct {
	call    string
	method  string
	path    string // relative to BaseURL, or an absolute URL
	body    any
	headers map[string]string
	decode  func(r io.Reader) error
}

func (c *Client) do(ctx context.Context, req request) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	attempts := 1
	if req.method == http.MethodGet {
		attempts += c.cfg.MaxRetries
	}

	var (
		lastErr error
		status  int
		tried   int
	)
	for tried < attempts {
		tried++
		status, lastErr = c.roundTrip(ctx, req)
		if lastErr == nil {
			break
		}
		// Don't retry on context cancellation/timeout or client errors
		if ctx.Err() != nil || !retryable(lastErr) {
			break
		}
	}

	err := classify(ctx, lastErr, tried, attempts)
	c.observer.OnCallComplete(CallEvent{
		Call:      req.call,
		Method:    req.method,
		Path:      req.path,
		Status:    status,
		Attempts:  tried,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	return err
}

func (c *Client) roundTrip(ctx context.Context, req request) (int, error) {
	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.url(req.path), body)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if tok := c.Token(); tok != "" && c.ownHost(httpReq.URL) {
		httpReq.Header.Set("Authorization", "Bearer "+tok)
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(httpResp.Body, 64<<10))
		return httpResp.StatusCode, &Error{Status: httpResp.StatusCode, Message: serverMessage(respBody)}
	}

	if req.decode != nil {
		if err := req.decode(httpResp.Body); err != nil {
			return httpResp.StatusCode, err
		}
	}
	return httpResp.StatusCode, nil
}

func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// ownHost reports whether u points at the backend. Absolute URLs such as
// plan images may live on another host and never get the bearer token.
func (c *Client) ownHost(u *url.URL) bool {
	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, base.Scheme) && strings.EqualFold(u.Host, base.Host)
}

// decodeJSON returns a decoder that unmarshals the body into out.
func decodeJSON(out any) func(io.Reader) error {
	return func(r io.Reader) error {
		if err := json.NewDecoder(r).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		return nil
	}
}

// serverMessage extracts {"message": "..."} from an error body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}

func retryable(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return isConnectionError(err)
}

func classify(ctx context.Context, err error, tried, attempts int) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ctxErr
	}
	if isConnectionError(err) {
		return ErrUnavailable
	}
	if attempts > 1 && tried == attempts && retryable(err) {
		return fmt.Errorf("%w: %w", ErrRetryExhausted, err)
	}
	return err
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}
