package dto

import (
	"encoding/json"

	"github.com/handiism/yamusic-downloader/internal/model"
)

// FlexID is an identifier the API reports as either a JSON string or a
// number, depending on the endpoint and the age of the catalog entry.
type FlexID string

// UnmarshalJSON accepts "123", 123 and null.
func (id *FlexID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

// String returns the identifier as a string.
func (id FlexID) String() string {
	return string(id)
}

// JSONArtist is one artist entry on a track.
type JSONArtist struct {
	ID   FlexID `json:"id"`
	Name string `json:"name"`
}

// JSONAlbum is the album summary embedded in a track.
type JSONAlbum struct {
	ID    FlexID `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year"`
	Genre string `json:"genre"`
}

// JSONTrack is the full track object returned by /tracks and embedded in
// playlist responses.
type JSONTrack struct {
	ID          FlexID       `json:"id"`
	RealID      FlexID       `json:"realId"`
	Title       string       `json:"title"`
	DurationMs  int          `json:"durationMs"`
	TrackNumber int          `json:"trackNumber"`
	Year        int          `json:"year"`
	Genre       string       `json:"genre"`
	Available   bool         `json:"available"`
	CoverURI    string       `json:"coverUri"`
	OgImage     string       `json:"ogImage"`
	Artists     []JSONArtist `json:"artists"`
	Albums      []JSONAlbum  `json:"albums"`
}

// ToTrack converts the wire track to a model.Track, folding album metadata
// into the flat shape the rest of the application works with.
func (jt *JSONTrack) ToTrack() model.Track {
	track := model.Track{
		ID:          jt.ID.String(),
		Title:       jt.Title,
		DurationMs:  jt.DurationMs,
		TrackNumber: jt.TrackNumber,
		Year:        jt.Year,
		Genre:       jt.Genre,
		CoverURI:    jt.CoverURI,
	}

	if track.CoverURI == "" {
		track.CoverURI = jt.OgImage
	}

	for _, a := range jt.Artists {
		if a.Name != "" {
			track.Artists = append(track.Artists, a.Name)
		}
	}

	// Some catalog entries only carry year/genre on the album.
	if len(jt.Albums) > 0 {
		album := jt.Albums[0]
		track.AlbumID = album.ID.String()
		track.Album = album.Title
		if track.Year == 0 {
			track.Year = album.Year
		}
		if track.Genre == "" {
			track.Genre = album.Genre
		}
	}

	return track
}
