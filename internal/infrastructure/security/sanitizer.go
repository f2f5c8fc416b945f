package security

import (
	"net/http"
	"net/url"
	"strings"
)

// Sensitive header names that should be redacted in trace logs.
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"x-myobapi-key": true,
	"x-api-key":     true,
	"x-auth-token":  true,
}

// Query parameter name fragments that mark pre-signed URL credentials.
// Covers both S3 v2 (AWSAccessKeyId, Signature, Expires) and v4
// (X-Amz-Credential, X-Amz-Signature, ...) styles.
var sensitiveQueryParams = []string{
	"signature",
	"credential",
	"token",
	"key",
	"secret",
}

const redactedValue = "[REDACTED]"

// SanitizeHeaders returns a loggable copy of the headers with sensitive
// values redacted.
func SanitizeHeaders(headers http.Header) map[string]string {
	sanitized := make(map[string]string, len(headers))

	for key, values := range headers {
		if sensitiveHeaders[strings.ToLower(key)] {
			sanitized[key] = redactedValue
		} else {
			sanitized[key] = strings.Join(values, ", ")
		}
	}

	return sanitized
}

// SanitizeURL redacts credential-bearing query parameters from a URL so
// pre-signed links can be logged without leaking a usable download link.
func SanitizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	query := parsed.Query()
	changed := false
	for name := range query {
		if isSensitiveParam(name) {
			query.Set(name, redactedValue)
			changed = true
		}
	}

	if !changed {
		return rawURL
	}

	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func isSensitiveParam(name string) bool {
	lower := strings.ToLower(name)
	for _, fragment := range sensitiveQueryParams {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
