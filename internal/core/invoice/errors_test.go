package invoice

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "validation",
			err:      &ValidationError{Field: "start date", Reason: "must be YYYY-MM-DD"},
			expected: "invalid start date: must be YYYY-MM-DD",
		},
		{
			name:     "authentication",
			err:      &AuthenticationError{StatusCode: 401},
			expected: "authentication rejected by MYOB API (status 401)",
		},
		{
			name:     "api with body",
			err:      &APIError{Operation: "list invoices", StatusCode: 502, Body: "bad gateway"},
			expected: "list invoices failed with status 502: bad gateway",
		},
		{
			name:     "api without body",
			err:      &APIError{Operation: "list invoices", StatusCode: 500},
			expected: "list invoices failed with status 500",
		},
		{
			name:     "download",
			err:      &DownloadError{FileName: "a.pdf", Err: errors.New("status 403: expired")},
			expected: "download a.pdf: status 403: expired",
		},
		{
			name:     "store",
			err:      &StoreError{Path: "invoice_pdfs/a.pdf", Err: errors.New("permission denied")},
			expected: "write invoice_pdfs/a.pdf: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestErrorUnwrapping(t *testing.T) {
	cause := errors.New("connection reset")

	wrapped := fmt.Errorf("run failed: %w", &DownloadError{FileName: "a.pdf", Err: cause})
	var downloadErr *DownloadError
	if !errors.As(wrapped, &downloadErr) {
		t.Fatal("expected DownloadError through wrapping")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("expected cause reachable through Unwrap")
	}

	storeErr := &StoreError{Path: "x", Err: cause}
	if !errors.Is(storeErr, cause) {
		t.Error("expected StoreError cause reachable through Unwrap")
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	err := error(&AuthenticationError{StatusCode: 401})

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("AuthenticationError must not match APIError")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status in message, got %q", err.Error())
	}
}
