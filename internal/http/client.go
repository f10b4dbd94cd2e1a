package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client wraps HTTP operations shared by the API client and the downloader.
//
// Client provides:
//   - A configured User-Agent header
//   - An optional Authorization header attached to every request
//   - Timeout handling
//   - Streaming downloads with progress tracking
//
// Example usage:
//
//	client := NewClient("OAuth " + token)
//
//	// Fetch an API response body
//	body, err := client.Get(ctx, "https://api.music.yandex.net/account/status")
//
//	// Stream a download with progress
//	err = client.DownloadTo(ctx, fileURL, file, func(written, total int64) {
//	    percent := float64(written) / float64(total) * 100
//	    fmt.Printf("%.1f%%\n", percent)
//	})
type Client struct {
	httpClient *http.Client
	userAgent  string
	authHeader string
}

// NewClient creates a new HTTP client.
//
// authHeader is the value sent as the Authorization header on every
// request, e.g. "OAuth <token>"; pass the empty string for anonymous use.
//
// The client is configured with:
//   - 60 second timeout
//   - "yamusic-downloader" User-Agent header
func NewClient(authHeader string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent:  "yamusic-downloader",
		authHeader: authHeader,
	}
}

// StatusError reports a non-success HTTP status. Callers map the code to
// their own error taxonomy.
type StatusError struct {
	// StatusCode is the numeric HTTP status.
	StatusCode int

	// Status is the status line, e.g. "403 Forbidden".
	Status string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor large downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	// Negative when the server did not report a length.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Get performs a GET request and returns the response body as bytes.
//
// The request carries the configured User-Agent and Authorization headers.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK (a *StatusError)
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return io.ReadAll(resp.Body)
}

// PostForm performs a form-encoded POST request and returns the response
// body as bytes. Status handling matches Get.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return io.ReadAll(resp.Body)
}

// DownloadTo streams a URL into the given writer.
//
// The caller owns the writer; creating and closing the destination file
// stays with the caller so its filesystem errors remain distinguishable
// from network ones.
//
// Parameters:
//   - ctx: Context for cancellation
//   - url: URL to download from
//   - w: Destination writer
//   - onProgress: Optional callback called with (bytesWritten, totalBytes);
//     total is negative when unknown. Pass nil to disable.
func (c *Client) DownloadTo(ctx context.Context, url string, w io.Writer, onProgress func(written, total int64)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if onProgress != nil {
		w = &ProgressWriter{
			Writer:   w,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	_, err = io.Copy(w, resp.Body)
	return err
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	if c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}
}
