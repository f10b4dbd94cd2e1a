package yamusic

import (
	"errors"
	"fmt"
	"net/http"

	httpclient "github.com/handiism/yamusic-downloader/internal/http"
)

// Sentinel errors for the failure modes callers branch on. They arrive
// wrapped with request context, so test with errors.Is.
var (
	// ErrInvalidReference means the playlist reference could not be parsed.
	ErrInvalidReference = errors.New("invalid playlist reference")

	// ErrUnauthorized means the OAuth token is missing, expired or rejected.
	ErrUnauthorized = errors.New("unauthorized: check the OAuth token")

	// ErrNotFound means the requested playlist or track does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the resource exists but is not accessible,
	// typically a private playlist of another user.
	ErrForbidden = errors.New("access forbidden")
)

// APIError is a non-success API response that maps to no sentinel.
type APIError struct {
	// StatusCode is the HTTP status the API answered with.
	StatusCode int

	// Message carries the status line or response detail.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: %s", e.Message)
}

// Temporary reports whether the failure is worth retrying. Rate limiting
// and server-side errors are; other client errors are not.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// statusToError maps transport-level status errors onto the package's
// taxonomy. Errors that are not *httpclient.StatusError pass through
// unchanged.
func statusToError(err error) error {
	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}

	switch statusErr.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrInvalidReference, statusErr.Status)
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &APIError{StatusCode: statusErr.StatusCode, Message: statusErr.Error()}
	}
}
