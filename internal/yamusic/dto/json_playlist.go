package dto

import (
	"github.com/handiism/yamusic-downloader/internal/model"
)

// JSONOwner identifies the user a playlist belongs to.
type JSONOwner struct {
	UID   FlexID `json:"uid"`
	Login string `json:"login"`
	Name  string `json:"name"`
}

// JSONPlaylistTrack is one playlist entry. Short responses carry only the
// track and album identifiers; full responses embed the whole track.
type JSONPlaylistTrack struct {
	ID      FlexID     `json:"id"`
	AlbumID FlexID     `json:"albumId"`
	Track   *JSONTrack `json:"track"`
}

// JSONPlaylist is the playlist object from /users/{owner}/playlists/{kind}.
type JSONPlaylist struct {
	Owner      JSONOwner           `json:"owner"`
	Kind       FlexID              `json:"kind"`
	Title      string              `json:"title"`
	TrackCount int                 `json:"trackCount"`
	Visibility string              `json:"visibility"`
	Tracks     []JSONPlaylistTrack `json:"tracks"`
}

// JSONAccount is the authenticated account from /account/status.
type JSONAccount struct {
	UID         FlexID `json:"uid"`
	Login       string `json:"login"`
	DisplayName string `json:"displayName"`
}

// JSONLikedTrack is one entry of the liked-tracks library listing. It never
// embeds track metadata; entries are hydrated via /tracks.
type JSONLikedTrack struct {
	ID      FlexID `json:"id"`
	AlbumID FlexID `json:"albumId"`
}

// Response envelopes. Every API response wraps its payload in "result".

// AccountStatusResponse envelopes /account/status.
type AccountStatusResponse struct {
	Result struct {
		Account JSONAccount `json:"account"`
	} `json:"result"`
}

// PlaylistResponse envelopes /users/{owner}/playlists/{kind}.
type PlaylistResponse struct {
	Result JSONPlaylist `json:"result"`
}

// LikedTracksResponse envelopes /users/{uid}/likes/tracks.
type LikedTracksResponse struct {
	Result struct {
		Library struct {
			Tracks []JSONLikedTrack `json:"tracks"`
		} `json:"library"`
	} `json:"result"`
}

// TracksResponse envelopes /tracks and /tracks/{id}.
type TracksResponse struct {
	Result []JSONTrack `json:"result"`
}

// ToPlaylist converts the wire playlist to a model.Playlist, preserving
// entry order. Entries that arrived as bare identifiers become placeholder
// tracks carrying only IDs; the caller hydrates them via /tracks and
// replaces them in place so the playlist order survives.
func (jp *JSONPlaylist) ToPlaylist() *model.Playlist {
	playlist := &model.Playlist{
		Owner:  jp.Owner.Login,
		Kind:   jp.Kind.String(),
		Title:  jp.Title,
		Tracks: make([]model.Track, 0, len(jp.Tracks)),
	}

	for _, entry := range jp.Tracks {
		var track model.Track
		if entry.Track != nil {
			track = entry.Track.ToTrack()
		} else {
			track.ID = entry.ID.String()
		}
		if track.AlbumID == "" {
			track.AlbumID = entry.AlbumID.String()
		}
		playlist.Tracks = append(playlist.Tracks, track)
	}

	return playlist
}
