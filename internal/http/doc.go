// Package http provides the HTTP client shared by the API layer and the
// track downloader.
//
// The Client in this package handles:
//   - User-Agent and Authorization headers on every request
//   - Timeout handling
//   - Streaming downloads with progress tracking
//
// # Basic Usage
//
//	client := http.NewClient("OAuth " + token)
//
//	// Fetch an API response
//	body, err := client.Get(ctx, "https://api.music.yandex.net/account/status")
//
//	// Stream a file with a progress callback
//	err = client.DownloadTo(ctx, fileURL, file, func(written, total int64) {
//	    fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	})
//
// Non-2xx responses surface as *StatusError so callers can map status
// codes onto their own error taxonomy.
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress
// tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
