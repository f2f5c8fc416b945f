package http

import (
	"net/http"
	"time"
)

// defaultTimeout applies when no client configuration is given.
const defaultTimeout = 30 * time.Second

// ClientConfig holds configuration for HTTP clients.
type ClientConfig struct {
	Timeout       time.Duration
	Transport     http.RoundTripper
	CheckRedirect func(req *http.Request, via []*http.Request) error
}

// NewClient creates an HTTP client with standard configuration. A nil
// config, or a zero timeout, falls back to the default timeout. Both the
// MYOB API client and the pre-signed download client are built through
// here.
func NewClient(config *ClientConfig) *http.Client {
	if config == nil {
		config = &ClientConfig{}
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &http.Client{
		Timeout:       timeout,
		Transport:     config.Transport,
		CheckRedirect: config.CheckRedirect,
	}
}
