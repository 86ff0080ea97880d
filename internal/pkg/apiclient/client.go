// Package apiclient is the typed gateway to the remote task-manager API.
// Every call is a single attempt: no retry, no backoff, the caller decides
// what a failure means for the view.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/Minimal-Programmer/Task-Manager/internal/app/models"
	"github.com/Minimal-Programmer/Task-Manager/internal/app/observability/metrics"
)

// RemoteError carries the upstream response for failed calls. Message holds
// the error payload's detail when present, else a generic fallback.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Unwrap maps upstream statuses onto the domain sentinels so call sites can
// use errors.Is instead of matching status codes.
func (e *RemoteError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return models.ErrUnauthenticated
	case http.StatusForbidden:
		return models.ErrForbidden
	case http.StatusNotFound:
		return models.ErrNotFound
	case http.StatusConflict:
		return models.ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return models.ErrBadRequest
	default:
		return models.ErrUpstream
	}
}

// Client issues authenticated JSON requests against a fixed base address.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Do performs one round-trip. A non-empty token is attached as a bearer
// credential; body (when non-nil) is JSON-encoded; out (when non-nil)
// receives the decoded success payload.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.record(ctx, method, path, time.Since(start), err)
	if err != nil {
		c.logger.Warn("Upstream request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("request failed: %w", models.ErrUpstream)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", models.ErrUpstream)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		remote := &RemoteError{Status: resp.StatusCode, Message: errorDetail(raw, resp.StatusCode)}
		c.logger.Warn("Upstream rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", remote.Message),
		)
		return remote
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", models.ErrUpstream)
		}
	}

	return nil
}

// errorDetail pulls the message out of a FastAPI-style error body
// {"detail": "..."}. Structured validation details fall back to a generic
// message rather than leaking raw JSON into the UI.
func errorDetail(raw []byte, status int) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(body.Detail, &detail); err == nil && detail != "" {
			return detail
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}

func (c *Client) record(ctx context.Context, method, path string, elapsed time.Duration, err error) {
	if !metrics.Ready() {
		return
	}
	m := metrics.Get()
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
	)
	m.UpstreamRequestsTotal.Add(ctx, 1, attrs)
	m.UpstreamRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	if err != nil {
		m.UpstreamErrorsTotal.Add(ctx, 1, attrs)
	}
}
