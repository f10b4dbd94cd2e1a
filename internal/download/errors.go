package download

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net"

	"github.com/handiism/yamusic-downloader/internal/yamusic"
)

// Kind classifies an error for outcomes and logs.
type Kind string

const (
	KindInvalidReference Kind = "invalid-reference"
	KindUnauthorized     Kind = "unauthorized"
	KindNotFound         Kind = "not-found"
	KindForbidden        Kind = "forbidden"
	KindTransientNetwork Kind = "transient-network"
	KindPermanentRemote  Kind = "permanent-remote"
	KindFilesystem       Kind = "filesystem"
	KindExhaustedRetries Kind = "exhausted-retries"
)

// IsTransient reports whether retrying the failed operation could succeed.
// Rejections from the service (bad reference, auth, missing or restricted
// content), filesystem errors and context cancellation are permanent;
// network-level failures, timeouts, truncated bodies, 429 and 5xx responses
// are transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, yamusic.ErrInvalidReference) ||
		errors.Is(err, yamusic.ErrUnauthorized) ||
		errors.Is(err, yamusic.ErrNotFound) ||
		errors.Is(err, yamusic.ErrForbidden) {
		return false
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return false
	}

	var apiErr *yamusic.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}

// Classify maps an error onto its Kind.
func Classify(err error) Kind {
	var retryErr *RetryError
	if errors.As(err, &retryErr) {
		return KindExhaustedRetries
	}

	switch {
	case errors.Is(err, yamusic.ErrInvalidReference):
		return KindInvalidReference
	case errors.Is(err, yamusic.ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, yamusic.ErrNotFound):
		return KindNotFound
	case errors.Is(err, yamusic.ErrForbidden):
		return KindForbidden
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return KindFilesystem
	}
	if IsTransient(err) {
		return KindTransientNetwork
	}
	return KindPermanentRemote
}
