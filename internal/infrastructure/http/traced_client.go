package http

import (
	"log/slog"
	"net/http"
	"time"

	ctxutil "3tcapital/myob_attachments/internal/infrastructure/context"
	"3tcapital/myob_attachments/internal/infrastructure/security"
)

// TracedClient wraps an HTTP client so every outbound request and response
// produces a sanitized log line tagged with the run's correlation ID.
type TracedClient struct {
	client     *http.Client
	log        *slog.Logger
	provider   string
	logHeaders bool
}

// TracedClientConfig holds configuration for the traced HTTP client.
type TracedClientConfig struct {
	Timeout    time.Duration
	LogHeaders bool // emit sanitized request headers at debug level
}

// NewTracedClient creates a traced HTTP client for the named provider.
// The underlying client comes from the shared factory so its defaults
// apply here too.
func NewTracedClient(cfg *TracedClientConfig, log *slog.Logger, provider string) *TracedClient {
	return &TracedClient{
		client:     NewClient(&ClientConfig{Timeout: cfg.Timeout}),
		log:        log,
		provider:   provider,
		logHeaders: cfg.LogHeaders,
	}
}

// Do executes an HTTP request, logging the request before it leaves and
// the response (or transport error) with its duration when it returns.
// Authorization material and pre-signed URL signatures never reach the log.
func (c *TracedClient) Do(req *http.Request) (*http.Response, error) {
	runID := ctxutil.GetRunID(req.Context())
	sanitizedURL := security.SanitizeURL(req.URL.String())
	start := time.Now()

	attrs := []any{
		"run_id", runID,
		"provider", c.provider,
		"method", req.Method,
		"url", sanitizedURL,
	}
	if c.logHeaders {
		c.log.Debug("provider_request_headers", append(attrs, "headers", security.SanitizeHeaders(req.Header))...)
	}
	c.log.Info("provider_request", attrs...)

	resp, err := c.client.Do(req)
	duration := time.Since(start)

	attrs = append(attrs, "duration_ms", duration.Milliseconds())
	if err != nil {
		c.log.Error("provider_request_failed", append(attrs, "error", err.Error())...)
		return nil, err
	}

	attrs = append(attrs, "status", resp.StatusCode)
	switch {
	case resp.StatusCode >= 500:
		c.log.Error("provider_response", attrs...)
	case resp.StatusCode >= 400:
		c.log.Warn("provider_response", attrs...)
	default:
		c.log.Info("provider_response", attrs...)
	}

	return resp, nil
}

// Client returns the underlying HTTP client.
func (c *TracedClient) Client() *http.Client {
	return c.client
}
