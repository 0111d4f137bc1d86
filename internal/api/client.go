// Package api is the HTTP client for the PsicoCare REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder receives per-request observations.
type Recorder interface {
	ObserveAPIRequest(endpoint, status string, seconds float64)
}

// Config holds configuration for the API client
type Config struct {
	BaseURL   string        // e.g. "https://api.psicocare.com.br"
	Timeout   time.Duration // 0 disables the client-side timeout
	UserAgent string
}

// Client issues requests to the backend. It holds no credentials;
// every authenticated call receives the bearer token explicitly.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	recorder   Recorder
	logger     *zap.Logger
}

// Option customizes a Client
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithMetrics(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new API client
func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = "psicocare-bot/1.0"
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent:  ua,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do sends one request. endpoint is a low-cardinality name used for metrics and logs.
func (c *Client) do(ctx context.Context, method, path, token, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: marshal %s: %w", endpoint, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: build %s request: %w", endpoint, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, "transport_error", start)
		c.logger.Debug("API request failed",
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.Error(err))
		return fmt.Errorf("api: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	c.observe(endpoint, fmt.Sprintf("%d", resp.StatusCode), start)
	c.logger.Debug("API request",
		zap.String("endpoint", endpoint),
		zap.String("method", method),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return newError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	// raw bodies are kept as sent; callers decide what an unreadable 2xx means
	if raw, ok := out.(*json.RawMessage); ok {
		b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return fmt.Errorf("api: read %s response: %w", endpoint, err)
		}
		*raw = bytes.TrimSpace(b)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("api: decode %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) observe(endpoint, status string, start time.Time) {
	if c.recorder == nil {
		return
	}
	c.recorder.ObserveAPIRequest(endpoint, status, time.Since(start).Seconds())
}
