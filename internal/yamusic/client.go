package yamusic

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/samber/lo"

	httpclient "github.com/handiism/yamusic-downloader/internal/http"
	"github.com/handiism/yamusic-downloader/internal/logging"
	"github.com/handiism/yamusic-downloader/internal/model"
	"github.com/handiism/yamusic-downloader/internal/yamusic/dto"
)

const (
	defaultBaseURL = "https://api.music.yandex.net"

	// trackHydrateChunk bounds how many track IDs one /tracks call carries.
	trackHydrateChunk = 100

	// signSalt is mixed into the md5 signature of direct storage URLs.
	signSalt = "XGRlBW9FXlekgbPrRHuSiA"
)

// Client talks to the Yandex Music API.
//
// A Client carries the OAuth token of one account and keeps no per-request
// state, so it is safe for concurrent use. Construct one per token:
//
//	client := yamusic.NewClient(token)
//	playlist, err := client.ResolvePlaylist(ctx, ref)
type Client struct {
	http    *httpclient.Client
	baseURL string
}

// NewClient creates an API client authenticated with the given OAuth token.
// An empty token produces an anonymous client; most endpoints reject it
// with ErrUnauthorized.
func NewClient(token string) *Client {
	auth := ""
	if token != "" {
		auth = "OAuth " + token
	}
	return &Client{
		http:    httpclient.NewClient(auth),
		baseURL: defaultBaseURL,
	}
}

// Account identifies the authenticated user.
type Account struct {
	UID   string
	Login string
}

// AccountStatus validates the token and returns the account it belongs to.
func (c *Client) AccountStatus(ctx context.Context) (*Account, error) {
	body, err := c.http.Get(ctx, c.baseURL+"/account/status")
	if err != nil {
		return nil, fmt.Errorf("account status: %w", statusToError(err))
	}

	var resp dto.AccountStatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("account status: %w", err)
	}

	account := resp.Result.Account
	uid := account.UID.String()
	if uid == "" || uid == "0" {
		return nil, fmt.Errorf("account status: %w", ErrUnauthorized)
	}

	return &Account{UID: uid, Login: account.Login}, nil
}

// ResolvePlaylist fetches the playlist the reference names, with every
// entry hydrated to a full track, in service order.
func (c *Client) ResolvePlaylist(ctx context.Context, ref Reference) (*model.Playlist, error) {
	if ref.Liked {
		return c.likedPlaylist(ctx)
	}

	u := fmt.Sprintf("%s/users/%s/playlists/%s",
		c.baseURL, url.PathEscape(ref.Owner), url.PathEscape(ref.Kind))
	body, err := c.http.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("playlist %s: %w", ref, statusToError(err))
	}

	var resp dto.PlaylistResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("playlist %s: %w", ref, err)
	}

	playlist := resp.Result.ToPlaylist()
	if err := c.hydrateTracks(ctx, playlist.Tracks); err != nil {
		return nil, fmt.Errorf("playlist %s: %w", ref, err)
	}

	logging.Debug("resolved playlist %s: %q with %d tracks", ref, playlist.Title, len(playlist.Tracks))
	return playlist, nil
}

// likedPlaylist assembles the virtual playlist of the caller's liked
// tracks. The likes listing carries bare identifiers only, so every entry
// is hydrated afterwards.
func (c *Client) likedPlaylist(ctx context.Context) (*model.Playlist, error) {
	account, err := c.AccountStatus(ctx)
	if err != nil {
		return nil, err
	}

	body, err := c.http.Get(ctx, fmt.Sprintf("%s/users/%s/likes/tracks", c.baseURL, url.PathEscape(account.UID)))
	if err != nil {
		return nil, fmt.Errorf("liked tracks: %w", statusToError(err))
	}

	var resp dto.LikedTracksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("liked tracks: %w", err)
	}

	playlist := &model.Playlist{
		Owner: model.LikedOwner,
		Kind:  "liked",
		Title: "Liked Tracks",
	}
	for _, item := range resp.Result.Library.Tracks {
		playlist.Tracks = append(playlist.Tracks, model.Track{
			ID:      item.ID.String(),
			AlbumID: item.AlbumID.String(),
		})
	}

	if err := c.hydrateTracks(ctx, playlist.Tracks); err != nil {
		return nil, fmt.Errorf("liked tracks: %w", err)
	}
	return playlist, nil
}

// hydrateTracks fills in metadata for placeholder entries (ID only) in
// chunks, falling back to per-track fetches when a whole chunk fails so one
// broken entry cannot sink the playlist. Entries that still cannot be
// fetched keep their placeholder shape; their failure surfaces later as a
// per-track outcome instead of aborting resolution.
func (c *Client) hydrateTracks(ctx context.Context, tracks []model.Track) error {
	positions := make(map[string][]int)
	var ids []string
	for i, t := range tracks {
		if t.Title != "" || t.ID == "" {
			continue
		}
		if _, seen := positions[t.ID]; !seen {
			ids = append(ids, t.ID)
		}
		positions[t.ID] = append(positions[t.ID], i)
	}
	if len(ids) == 0 {
		return nil
	}

	logging.Debug("hydrating %d tracks", len(ids))
	for _, chunk := range lo.Chunk(ids, trackHydrateChunk) {
		fetched, err := c.tracksByIDs(ctx, chunk)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logging.Warn("track chunk of %d failed (%v), retrying entries one by one", len(chunk), err)
			fetched = fetched[:0]
			for _, id := range chunk {
				single, err := c.tracksByIDs(ctx, []string{id})
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					logging.Warn("track %s: %v", id, err)
					continue
				}
				fetched = append(fetched, single...)
			}
		}

		for _, track := range fetched {
			for _, i := range positions[track.ID] {
				albumID := tracks[i].AlbumID
				tracks[i] = track
				if tracks[i].AlbumID == "" {
					tracks[i].AlbumID = albumID
				}
			}
		}
	}

	return nil
}

// tracksByIDs fetches full track objects via POST /tracks.
func (c *Client) tracksByIDs(ctx context.Context, ids []string) ([]model.Track, error) {
	form := url.Values{"track-ids": {strings.Join(ids, ",")}}
	body, err := c.http.PostForm(ctx, c.baseURL+"/tracks", form)
	if err != nil {
		return nil, statusToError(err)
	}

	var resp dto.TracksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	return lo.Map(resp.Result, func(jt dto.JSONTrack, _ int) model.Track {
		return jt.ToTrack()
	}), nil
}

// DownloadInfos lists the renditions available for a track, preserving
// service order. Preview-only entries and entries without a descriptor URL
// are dropped; a track offering nothing downloadable yields an empty slice,
// not an error.
func (c *Client) DownloadInfos(ctx context.Context, trackID string) ([]model.Encoding, error) {
	u := fmt.Sprintf("%s/tracks/%s/download-info", c.baseURL, url.PathEscape(trackID))
	body, err := c.http.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("download info for track %s: %w", trackID, statusToError(err))
	}

	var resp dto.DownloadInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("download info for track %s: %w", trackID, err)
	}

	encodings := make([]model.Encoding, 0, len(resp.Result))
	for _, info := range resp.Result {
		if info.Preview || info.DownloadInfoURL == "" {
			continue
		}
		encodings = append(encodings, info.ToEncoding())
	}
	return encodings, nil
}

// FetchTrack streams the bytes of the chosen encoding into w, reporting
// progress through onProgress (which may be nil).
func (c *Client) FetchTrack(ctx context.Context, enc model.Encoding, w io.Writer, onProgress func(written, total int64)) error {
	direct, err := c.directURL(ctx, enc)
	if err != nil {
		return err
	}
	if err := c.http.DownloadTo(ctx, direct, w, onProgress); err != nil {
		return fmt.Errorf("fetch %s: %w", enc, statusToError(err))
	}
	return nil
}

// CoverArt fetches the track's cover image at the given square size.
func (c *Client) CoverArt(ctx context.Context, track model.Track, size int) ([]byte, error) {
	if !track.HasCover() {
		return nil, fmt.Errorf("track %s has no cover art", track.ID)
	}

	uri := strings.ReplaceAll(track.CoverURI, "%%", fmt.Sprintf("%dx%d", size, size))
	if !strings.HasPrefix(uri, "http") {
		uri = "https://" + uri
	}

	data, err := c.http.Get(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("cover art: %w", statusToError(err))
	}
	return data, nil
}

// directURL exchanges a rendition's descriptor URL for the signed storage
// URL the bytes are served from.
func (c *Client) directURL(ctx context.Context, enc model.Encoding) (string, error) {
	body, err := c.http.Get(ctx, enc.InfoURL)
	if err != nil {
		return "", fmt.Errorf("download descriptor: %w", statusToError(err))
	}

	var desc dto.DownloadDescriptor
	if err := xml.Unmarshal(body, &desc); err != nil {
		return "", fmt.Errorf("download descriptor: %w", err)
	}

	return signDirectURL(&desc), nil
}

// signDirectURL builds the storage URL from a descriptor. The signature is
// md5 over the fixed salt, the path without its leading slash, and s.
func signDirectURL(desc *dto.DownloadDescriptor) string {
	trimmed := strings.TrimPrefix(desc.Path, "/")
	sum := md5.Sum([]byte(signSalt + trimmed + desc.S))
	sign := hex.EncodeToString(sum[:])
	return fmt.Sprintf("https://%s/get-mp3/%s/%s%s", desc.Host, sign, desc.TS, desc.Path)
}
