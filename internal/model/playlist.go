package model

// LikedOwner is the Owner value of the virtual "liked tracks" playlist.
const LikedOwner = "me"

// Playlist is a resolved playlist: its identity plus the ordered tracks.
type Playlist struct {
	// Owner is the login of the playlist owner, or LikedOwner for the
	// caller's liked tracks.
	Owner string

	// Kind is the playlist identifier within the owner's library.
	Kind string

	// Title is the human-readable playlist title.
	Title string

	// Tracks holds the entries in service order. Selection and download
	// walk this slice front to back, so its order decides tie-breaks.
	Tracks []Track
}
