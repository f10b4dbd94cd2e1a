package model

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	ioutils "github.com/handiism/yamusic-downloader/internal/io"
)

// Placeholders substituted when a track is missing identity metadata, so a
// filename segment is never empty.
const (
	UnknownArtist = "Unknown Artist"
	UnknownTitle  = "Unknown Title"
)

// maxFileNameLen caps generated filenames. Longer names lose the tail of
// the stem; the extension is always preserved.
const maxFileNameLen = 200

// Track represents a single playlist entry with the metadata needed to
// download, name and tag it.
//
// Track carries:
//   - Service identifiers for metadata and download-info lookups
//   - Artist names, title and album for file naming and ID3 tagging
//   - Duration for playlist file generation
//   - The cover art URI template, if the service reported one
//
// The local file path is not stored on the track because it depends on the
// encoding chosen at download time; see BuildPath.
//
// Example:
//
//	track := model.Track{ID: "1042", Title: "Song", Artists: []string{"Artist"}}
//	path := track.BuildPath("/music", model.Encoding{Format: model.FormatMP3})
//	// path == "/music/Artist - Song.mp3"
type Track struct {
	// ID is the service identifier for the track.
	ID string

	// AlbumID is the identifier of the album this entry came from.
	// Empty when the service did not report one.
	AlbumID string

	// Title is the track title.
	Title string

	// Artists holds the artist names in service order.
	Artists []string

	// Album is the album title, used for ID3 tagging.
	Album string

	// Year is the album release year, zero when unknown.
	Year int

	// TrackNumber is the position within the album, zero when unknown.
	TrackNumber int

	// Genre is the album genre, empty when unknown.
	Genre string

	// DurationMs is the track length in milliseconds.
	DurationMs int

	// CoverURI is the cover art URI template containing a %% size
	// placeholder. Empty when the track has no artwork.
	CoverURI string
}

// ArtistLine returns the ", "-joined artist names, or UnknownArtist when
// the track carries none.
func (t Track) ArtistLine() string {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		if s := strings.TrimSpace(a); s != "" {
			names = append(names, s)
		}
	}
	if len(names) == 0 {
		return UnknownArtist
	}
	return strings.Join(names, ", ")
}

// DisplayTitle returns the title, or UnknownTitle when it is empty.
func (t Track) DisplayTitle() string {
	if s := strings.TrimSpace(t.Title); s != "" {
		return s
	}
	return UnknownTitle
}

// DisplayName returns "Artist - Title" for progress output and logs.
func (t Track) DisplayName() string {
	return t.ArtistLine() + " - " + t.DisplayTitle()
}

// DurationSeconds returns the track length in whole seconds.
func (t Track) DurationSeconds() int {
	return t.DurationMs / 1000
}

// HasCover reports whether the service offered cover art for this track.
func (t Track) HasCover() bool {
	return t.CoverURI != ""
}

// FileName derives the on-disk name "{artists} - {title}{ext}" for the
// chosen encoding.
//
// Both segments are sanitized via ioutils.SanitizeFileName. A segment that
// sanitizes to nothing becomes UnknownArtist or UnknownTitle, so the name
// never collapses to a bare extension. Names longer than 200 characters are
// truncated at the stem on a rune boundary.
func (t Track) FileName(enc Encoding) string {
	artist := ioutils.SanitizeFileName(t.ArtistLine())
	if artist == "" {
		artist = UnknownArtist
	}
	title := ioutils.SanitizeFileName(t.DisplayTitle())
	if title == "" {
		title = UnknownTitle
	}

	ext := enc.Format.Extension()
	name := artist + " - " + title

	if len(name)+len(ext) > maxFileNameLen {
		cut := maxFileNameLen - len(ext)
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = strings.TrimRight(name[:cut], " .")
	}

	return name + ext
}

// BuildPath joins dir with the track's filename for the chosen encoding.
//
// The layout is flat. Two tracks whose sanitized names collide map to the
// same path, and the second is treated as already downloaded; the tool does
// not append disambiguating suffixes.
func (t Track) BuildPath(dir string, enc Encoding) string {
	return filepath.Join(dir, t.FileName(enc))
}
