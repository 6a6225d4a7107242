// Package api implements the HTTP client for the Moodio backend. The backend
// owns all generation and persistence behaviour; this client is a thin,
// retrying JSON transport over its REST endpoints.
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
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds a single request attempt.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of extra attempts for transient errors.
	DefaultMaxRetries = 3

	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 8 * time.Second

	// maxResponseSize caps response bodies so a misbehaving backend cannot
	// exhaust memory.
	maxResponseSize = 4 << 20
)

// Sentinel errors for conditions callers branch on.
var (
	ErrNotConfigured       = errors.New("backend URL not configured")
	ErrAuthFailed          = errors.New("authentication failed")
	ErrRateLimited         = errors.New("rate limited")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

// Error is a structured failure reported by the backend.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("moodio backend [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("moodio backend (HTTP %d): %s", e.Status, e.Message)
}

// Client talks to the Moodio backend.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxRetries overrides the retry budget for transient failures.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithRateLimit overrides the request pacing shared by all calls.
func WithRateLimit(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient builds a client for the backend at baseURL. The key may be empty;
// requests then fail with ErrNotConfigured only if the URL is also missing,
// since local development backends accept anonymous calls.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		// Generous steady rate with a small burst; the watcher's polling and
		// user actions share this budget.
		limiter:    rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendChat posts the conversation so far and returns the assistant's reply.
func (c *Client) SendChat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	var resp ChatResponse
	err := c.do(ctx, http.MethodPost, "/api/chat", req, &resp)
	return resp, err
}

// GenerateImage queues an image generation job.
func (c *Client) GenerateImage(ctx context.Context, req GenerationRequest) (Generation, error) {
	var resp Generation
	err := c.do(ctx, http.MethodPost, "/api/images", req, &resp)
	return resp, err
}

// GenerateVideo queues a video generation job.
func (c *Client) GenerateVideo(ctx context.Context, req GenerationRequest) (Generation, error) {
	var resp Generation
	err := c.do(ctx, http.MethodPost, "/api/videos", req, &resp)
	return resp, err
}

// PendingImages lists image generations that are queued, running, or recently
// finished.
func (c *Client) PendingImages(ctx context.Context) ([]PendingImage, error) {
	var resp pendingImagesResponse
	if err := c.do(ctx, http.MethodGet, "/api/images/pending", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Images, nil
}

// PendingVideos lists video generations in flight.
func (c *Client) PendingVideos(ctx context.Context) ([]PendingVideo, error) {
	var resp pendingVideosResponse
	if err := c.do(ctx, http.MethodGet, "/api/videos/pending", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Videos, nil
}

// ListAssets returns the user's asset library.
func (c *Client) ListAssets(ctx context.Context) ([]Asset, error) {
	var resp assetsResponse
	if err := c.do(ctx, http.MethodGet, "/api/assets", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Assets, nil
}

// ListCollections returns the user's collections.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	var resp collectionsResponse
	if err := c.do(ctx, http.MethodGet, "/api/collections", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Collections, nil
}

// CreateCollection creates a named collection and returns it.
func (c *Client) CreateCollection(ctx context.Context, name string) (Collection, error) {
	var resp Collection
	err := c.do(ctx, http.MethodPost, "/api/collections", map[string]string{"name": name}, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = data
	}
	requestID := uuid.NewString()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepBackoff(ctx, attempt); err != nil {
				return err
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		retryable, err := c.attempt(ctx, method, path, requestID, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
	}
	return fmt.Errorf("%s %s: retries exhausted: %w", method, path, lastErr)
}

// attempt performs one HTTP round trip. The bool reports whether the failure
// is worth retrying.
func (c *Client) attempt(ctx context.Context, method, path, requestID string, payload []byte, out interface{}) (bool, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return true, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return true, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return false, fmt.Errorf("%w: %s", ErrAuthFailed, apiMessage(data))
	case resp.StatusCode == http.StatusTooManyRequests:
		return true, ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return false, ErrInsufficientCredits
	case resp.StatusCode >= 500:
		return true, newError(resp.StatusCode, data)
	case resp.StatusCode >= 400:
		return false, newError(resp.StatusCode, data)
	}

	if out == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return false, nil
}

func newError(status int, body []byte) error {
	var parsed apiErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return &Error{Code: parsed.Error.Code, Message: parsed.Error.Message, Status: status}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{Message: msg, Status: status}
}

func apiMessage(body []byte) string {
	var parsed apiErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return strings.TrimSpace(string(body))
}

func sleepBackoff(ctx context.Context, attempt int) error {
	delay := retryBaseDelay << (attempt - 1)
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
