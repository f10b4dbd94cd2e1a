// Package model defines the core data structures used throughout
// the yamusic-downloader application.
//
// # Track and Playlist
//
// Playlist is a resolved playlist; Track is one entry with the metadata
// needed to download, name and tag it:
//
//	for _, track := range playlist.Tracks {
//	    fmt.Println(track.DisplayName()) // "Artist - Title"
//	}
//
// # Encodings and selection
//
// Encoding describes one downloadable rendition (codec plus bitrate) of a
// track. ChooseEncoding picks which one to fetch, honoring the user's
// format preference and falling back to the best class on offer:
//
//	best := model.ChooseEncoding(encodings, model.DefaultPreference())
//	if best == nil {
//	    // nothing downloadable for this track
//	}
//
// Selection is pure: no I/O, no clock, and the result is always one of the
// given encodings.
//
// # File naming
//
// Track.BuildPath computes the flat target path for a chosen encoding,
// sanitizing every segment:
//
//	path := track.BuildPath("/music", *best)
//	// "/music/Artist - Title.mp3"
package model
