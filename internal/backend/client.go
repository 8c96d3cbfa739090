package backend

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

	"github.com/tidwall/gjson"

	"github.com/ImAlagar/zohra-admin-core/pkg/config"
	pkgerrors "github.com/ImAlagar/zohra-admin-core/pkg/errors"
	"github.com/ImAlagar/zohra-admin-core/pkg/logger"
	"github.com/ImAlagar/zohra-admin-core/pkg/metrics"
)

// Client talks to the catalog backend REST API. It is the only place that
// sees transport-level details; everything past it works with typed errors.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logg      *logger.Logger
	metrics   *metrics.BackendMetrics
}

// New builds a backend client from config. The metrics registerer may be nil.
func New(cfg config.BackendConfig, logg *logger.Logger, m *metrics.BackendMetrics) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("backend base url required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   base,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: timeout},
		logg:      logg,
		metrics:   m,
	}, nil
}

// StatusError is a non-2xx backend response. Message carries the
// backend-provided reason when one could be extracted.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// StatusCode implements the carrier interface used by pkgerrors.Dump.
func (e *StatusError) StatusCode() int {
	return e.Status
}

func (c *Client) do(ctx context.Context, operation, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s payload: %w", operation, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveDuration(operation, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(operation)
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.IncFailure(operation)
		return nil, fmt.Errorf("%s: reading response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.IncFailure(operation)
		statusErr := &StatusError{Status: resp.StatusCode, Message: extractErrorMessage(body)}
		if c.logg != nil {
			lctx := c.logg.WithFields(ctx, map[string]any{
				"operation": operation,
				"status":    resp.StatusCode,
			})
			c.logg.Warn(lctx, "backend.request_failed")
		}
		return nil, statusErr
	}

	c.metrics.IncSuccess(operation)
	return body, nil
}

// extractErrorMessage pulls a human-readable reason out of the backend's
// error body, tolerating the handful of shapes it is known to produce.
func extractErrorMessage(body []byte) string {
	for _, path := range []string{"error.message", "message", "error"} {
		if result := gjson.GetBytes(body, path); result.Type == gjson.String && result.Str != "" {
			return result.Str
		}
	}
	return ""
}

// asOpError converts a transport error to the typed code for the operation.
// A 404 always maps to NotFound regardless of the operation.
func asOpError(err error, code pkgerrors.Code, fallback string) error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Status == http.StatusNotFound {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fallback)
		}
		if statusErr.Message != "" {
			return pkgerrors.Wrap(code, err, statusErr.Message)
		}
	}
	return pkgerrors.Wrap(code, err, fallback)
}
