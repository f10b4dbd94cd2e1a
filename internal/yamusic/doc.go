// Package yamusic provides the client for the Yandex Music API.
//
// The package handles three main use cases:
//
//  1. Parsing user-supplied playlist references
//  2. Resolving playlists to full track listings
//  3. Exchanging download descriptors for signed storage URLs
//
// # References
//
// ParseReference accepts a playlist URL, an owner:kind pair, or one of the
// liked-tracks aliases:
//
//	ref, err := yamusic.ParseReference("https://music.yandex.ru/users/alice/playlists/1000")
//	if err != nil {
//	    log.Fatal(err) // errors.Is(err, yamusic.ErrInvalidReference)
//	}
//
// # Resolving Playlists
//
// Use the Client to resolve a reference into an ordered track listing:
//
//	client := yamusic.NewClient(token)
//	playlist, err := client.ResolvePlaylist(ctx, ref)
//	for _, track := range playlist.Tracks {
//	    fmt.Println(track.DisplayName())
//	}
//
// Playlist responses may carry bare track identifiers; the client hydrates
// them through /tracks in chunks of 100, falling back to per-track fetches
// when a chunk fails, and preserves the playlist order throughout.
//
// # Downloading
//
// Each track exposes renditions via DownloadInfos. After one is chosen,
// FetchTrack exchanges its descriptor URL for an XML document naming the
// storage host and signs the final URL with the service's md5 scheme:
//
//	encodings, _ := client.DownloadInfos(ctx, track.ID)
//	best := model.ChooseEncoding(encodings, pref)
//	err := client.FetchTrack(ctx, *best, file, nil)
//
// # Errors
//
// Failure modes callers branch on are sentinel errors (ErrUnauthorized,
// ErrNotFound, ErrForbidden, ErrInvalidReference); everything else is
// either an *APIError carrying the HTTP status or a transport error.
package yamusic
