// Package web serves the browser front-end for the downloader.
//
// The server exposes a small set of routes:
//
//  1. A form to start a playlist download in the background
//  2. A progress page that polls JSON state while a download runs
//  3. The history of past runs, backed by the store package
//  4. Prometheus metrics and a health probe
//
// # Starting the Server
//
// Build a Server from loaded settings, an OAuth token and an optional
// history store, then serve it like any http.Handler:
//
//	st, err := store.Open(ctx, settings.DatabasePath)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := web.New(settings, token, st)
//	http.ListenAndServe(":8080", srv)
//
// # Run Lifecycle
//
// Each POST /download registers a run keyed by a fresh UUID and launches
// the download manager in a background goroutine. The progress page polls
// /api/progress/{id} once per second until the run leaves the "running"
// state. Finished runs are written to the history database, including
// runs that failed before downloading a single track.
package web
