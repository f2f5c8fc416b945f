package invoice

import "fmt"

// ValidationError reports rejected input before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuthenticationError reports credentials rejected by the API (401/403).
type AuthenticationError struct {
	StatusCode int
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication rejected by MYOB API (status %d)", e.StatusCode)
}

// APIError reports a non-auth failure from a listing endpoint.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s failed with status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s failed with status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// DownloadError reports a failed pre-signed fetch for one attachment.
// Non-fatal: the run continues with the remaining attachments.
type DownloadError struct {
	FileName string
	Err      error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %v", e.FileName, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// StoreError reports a failed local write for one attachment. Non-fatal.
type StoreError struct {
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
