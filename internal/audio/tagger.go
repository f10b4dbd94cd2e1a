package audio

import (
	"strconv"

	"github.com/bogem/id3v2"

	"github.com/handiism/yamusic-downloader/internal/model"
)

// TagEditAction defines how to handle individual ID3 tags.
//
// Each tag field can be configured independently to determine whether
// it should be modified, cleared, or left unchanged.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value from the service catalog.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// This allows fine-grained control over which tags are modified
// when processing downloaded MP3 files.
//
// Example:
//
//	cfg := &TagConfig{
//	    Artist:      TagModify,      // Update artist from the catalog
//	    Album:       TagModify,      // Update album from the catalog
//	    Title:       TagModify,      // Update title from the catalog
//	    Year:        TagModify,      // Update year from the album release
//	    Genre:       TagDoNotModify, // Keep whatever is already there
//	}
type TagConfig struct {
	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// AlbumArtist controls the TPE2 (Album artist) frame.
	AlbumArtist TagEditAction

	// Album controls the TALB (Album title) frame.
	Album TagEditAction

	// Year controls the TYER (Year) frame.
	Year TagEditAction

	// TrackNumber controls the TRCK (Track number) frame.
	TrackNumber TagEditAction

	// Title controls the TIT2 (Title) frame.
	Title TagEditAction

	// Genre controls the TCON (Content type) frame.
	Genre TagEditAction
}

// DefaultTagConfig returns the default tag configuration: every field is
// updated with catalog data.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		Artist:      TagModify,
		AlbumArtist: TagModify,
		Album:       TagModify,
		Year:        TagModify,
		TrackNumber: TagModify,
		Title:       TagModify,
		Genre:       TagModify,
	}
}

// Tagger writes ID3 tags to MP3 files.
//
// Tagger uses the id3v2 library to modify MP3 file metadata including:
//   - Artist, Album Artist, Album, Title
//   - Track Number, Year, Genre
//   - Cover Art (attached picture)
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//
//	// After downloading the track
//	err := tagger.Tag(path, track, artworkBytes)
//	if err != nil {
//	    log.Printf("Failed to tag %s: %v", path, err)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// Tag writes ID3 tags to the MP3 file at path.
//
// String frames are updated per the TagConfig; artwork, when non-nil, is
// embedded as the front cover (and replaces any existing pictures).
// Returns an error if the file cannot be opened or saved.
func (t *Tagger) Tag(path string, track model.Track, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	t.updateStringTags(tag, track)

	if artwork != nil {
		t.updateArtwork(tag, artwork)
	}

	return tag.Save()
}

// updateStringTags updates text-based ID3 frames based on configuration.
func (t *Tagger) updateStringTags(tag *id3v2.Tag, track model.Track) {
	// Artist (TPE1)
	switch t.config.Artist {
	case TagEmpty:
		tag.SetArtist("")
	case TagModify:
		tag.SetArtist(track.ArtistLine())
	}

	// Album Artist (TPE2)
	switch t.config.AlbumArtist {
	case TagEmpty:
		tag.DeleteFrames("TPE2")
	case TagModify:
		tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, track.ArtistLine())
	}

	// Album (TALB)
	switch t.config.Album {
	case TagEmpty:
		tag.SetAlbum("")
	case TagModify:
		if track.Album != "" {
			tag.SetAlbum(track.Album)
		}
	}

	// Year (TYER)
	switch t.config.Year {
	case TagEmpty:
		tag.DeleteFrames("TYER")
	case TagModify:
		if track.Year > 0 {
			tag.AddTextFrame("TYER", id3v2.EncodingUTF8, strconv.Itoa(track.Year))
		}
	}

	// Track Number (TRCK)
	switch t.config.TrackNumber {
	case TagEmpty:
		tag.DeleteFrames("TRCK")
	case TagModify:
		if track.TrackNumber > 0 {
			tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, strconv.Itoa(track.TrackNumber))
		}
	}

	// Title (TIT2)
	switch t.config.Title {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		tag.SetTitle(track.DisplayTitle())
	}

	// Genre (TCON)
	switch t.config.Genre {
	case TagEmpty:
		tag.SetGenre("")
	case TagModify:
		if track.Genre != "" {
			tag.SetGenre(track.Genre)
		}
	}
}

// updateArtwork embeds cover art as an attached picture frame.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, artwork []byte) {
	// Remove any existing cover pictures
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	pic := id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	}
	tag.AddAttachedPicture(pic)
}
