package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"testing"

	"github.com/handiism/yamusic-downloader/internal/yamusic"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"invalid reference", yamusic.ErrInvalidReference, KindInvalidReference},
		{"wrapped unauthorized", fmt.Errorf("account: %w", yamusic.ErrUnauthorized), KindUnauthorized},
		{"not found", yamusic.ErrNotFound, KindNotFound},
		{"forbidden", yamusic.ErrForbidden, KindForbidden},
		{"filesystem", &fs.PathError{Op: "open", Path: "/x", Err: errors.New("denied")}, KindFilesystem},
		{"truncated body", io.ErrUnexpectedEOF, KindTransientNetwork},
		{"server error", &yamusic.APIError{StatusCode: 503}, KindTransientNetwork},
		{"rate limited", &yamusic.APIError{StatusCode: 429}, KindTransientNetwork},
		{"odd remote rejection", &yamusic.APIError{StatusCode: 418}, KindPermanentRemote},
		{"exhausted", &RetryError{Attempts: 4, Err: io.ErrUnexpectedEOF}, KindExhaustedRetries},
		{"unknown", errors.New("boom"), KindPermanentRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"cancelled", context.Canceled, false},
		{"wrapped deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), false},
		{"dns timeout", &net.DNSError{IsTimeout: true}, true},
		{"path error", &fs.PathError{Op: "write", Path: "/x", Err: errors.New("full")}, false},
		{"api 500", &yamusic.APIError{StatusCode: 500}, true},
		{"api 400", &yamusic.APIError{StatusCode: 400}, false},
		{"unexpected EOF", io.ErrUnexpectedEOF, true},
		{"not found", fmt.Errorf("x: %w", yamusic.ErrNotFound), false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
