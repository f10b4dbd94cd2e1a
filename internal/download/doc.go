// Package download orchestrates fetching a whole playlist from the
// streaming service onto disk.
//
// # Manager
//
// The Manager carries one playlist run end to end:
//
//  1. Parse the playlist reference
//  2. Resolve the playlist through the Catalog
//  3. Per track: list renditions, choose one, skip existing files,
//     fetch the bytes, tag MP3 files
//  4. Record an Outcome per track and a Summary for the run
//  5. Optionally write a playlist file over the downloaded tracks
//
// # Basic Usage
//
//	client := yamusic.NewClient(token)
//	manager := download.NewManager(settings, client, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	summary, err := manager.Run(ctx, "https://music.yandex.ru/users/alice/playlists/1000")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d downloaded, %d skipped, %d failed\n",
//	    summary.Succeeded, summary.Skipped, summary.Failed)
//
// # Failure Handling
//
// A failed track never stops the run; it is recorded as a failed Outcome
// and the run moves on. Only two things abort a run: a reference that
// cannot be parsed and a playlist that cannot be resolved. Transient
// failures (timeouts, resets, 429 and 5xx responses) are retried with
// exponential backoff per RetryPolicy; rejections from the service and
// filesystem errors are permanent and fail fast.
//
// # Pacing
//
// Requests for consecutive tracks are spaced out by a Pacer so a long
// playlist does not hammer the service. The first track starts
// immediately.
//
// # Progress Tracking
//
// Per-event progress is reported via a callback that receives
// ProgressEvent; aggregate counters are available from GetProgress, which
// is safe to poll from another goroutine. An audit trail of every run is
// appended to download.log in the output directory.
package download
