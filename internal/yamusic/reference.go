package yamusic

import (
	"fmt"
	"regexp"
	"strings"
)

// playlistURL matches public playlist URLs on any Yandex Music domain,
// e.g. https://music.yandex.ru/users/alice/playlists/1000.
var playlistURL = regexp.MustCompile(`^https?://music\.yandex\.[a-z.]+/users/([^/]+)/playlists/(\d+)`)

// likedAliases are accepted in place of a playlist reference and stand for
// the caller's liked tracks.
var likedAliases = map[string]bool{
	"liked":     true,
	"favorites": true,
	"my":        true,
}

// Reference identifies a playlist to download.
type Reference struct {
	// Owner is the playlist owner's login.
	Owner string

	// Kind is the playlist identifier within the owner's library.
	Kind string

	// Liked marks the caller's liked-tracks virtual playlist. Owner and
	// Kind are empty in that case.
	Liked bool
}

// String renders the reference for logs and error messages.
func (r Reference) String() string {
	if r.Liked {
		return "liked"
	}
	return r.Owner + ":" + r.Kind
}

// ParseReference parses a playlist reference in any of the accepted forms:
//
//   - https://music.yandex.ru/users/<owner>/playlists/<kind> (any TLD)
//   - <owner>:<kind>
//   - liked, favorites or my (case-insensitive) for the liked tracks
//
// Anything else fails with ErrInvalidReference. Parsing is purely
// syntactic; whether the playlist exists is discovered at resolution time.
func ParseReference(s string) (Reference, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Reference{}, fmt.Errorf("%w: empty reference", ErrInvalidReference)
	}

	if likedAliases[strings.ToLower(s)] {
		return Reference{Liked: true}, nil
	}

	if m := playlistURL.FindStringSubmatch(s); m != nil {
		return Reference{Owner: m[1], Kind: m[2]}, nil
	}

	if owner, kind, ok := strings.Cut(s, ":"); ok {
		owner = strings.TrimSpace(owner)
		kind = strings.TrimSpace(kind)
		if owner != "" && kind != "" &&
			!strings.ContainsAny(owner, "/:") && !strings.ContainsAny(kind, "/:") {
			return Reference{Owner: owner, Kind: kind}, nil
		}
	}

	return Reference{}, fmt.Errorf("%w: %q", ErrInvalidReference, s)
}
