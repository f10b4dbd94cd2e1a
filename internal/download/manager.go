package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/handiism/yamusic-downloader/internal/audio"
	"github.com/handiism/yamusic-downloader/internal/config"
	ioutils "github.com/handiism/yamusic-downloader/internal/io"
	"github.com/handiism/yamusic-downloader/internal/model"
	"github.com/handiism/yamusic-downloader/internal/yamusic"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Progress is a snapshot of a running download, safe to read from another
// goroutine while Run is in flight.
type Progress struct {
	Processed     int
	Total         int
	Succeeded     int
	Skipped       int
	Failed        int
	ReceivedBytes int64
}

// Catalog is the slice of the streaming service the Manager needs: playlist
// resolution, the renditions of a track, the track bytes and cover art.
// *yamusic.Client satisfies it.
type Catalog interface {
	ResolvePlaylist(ctx context.Context, ref yamusic.Reference) (*model.Playlist, error)
	DownloadInfos(ctx context.Context, trackID string) ([]model.Encoding, error)
	FetchTrack(ctx context.Context, enc model.Encoding, w io.Writer, onProgress func(written, total int64)) error
	CoverArt(ctx context.Context, track model.Track, size int) ([]byte, error)
}

// Manager coordinates playlist downloads.
type Manager struct {
	settings *config.Settings
	catalog  Catalog
	executor *Executor
	tagger   *audio.Tagger
	playlist *audio.PlaylistWriter
	images   *ioutils.ImageService
	runLog   *RunLog

	totalTracks     int32
	processedTracks int32
	succeeded       int32
	skipped         int32
	failed          int32
	receivedBytes   int64

	onProgress func(ProgressEvent)

	// OnOutcome, if set, is called after each track with its 1-based
	// position, the track total and the outcome.
	OnOutcome func(index, total int, outcome Outcome)
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, catalog Catalog, onProgress func(ProgressEvent)) *Manager {
	var playlistFormat audio.PlaylistFormat
	switch settings.PlaylistFormat {
	case "pls":
		playlistFormat = audio.FormatPLS
	case "wpl":
		playlistFormat = audio.FormatWPL
	case "zpl":
		playlistFormat = audio.FormatZPL
	default:
		playlistFormat = audio.FormatM3U
	}

	m := &Manager{
		settings:   settings,
		catalog:    catalog,
		tagger:     audio.NewTagger(audio.DefaultTagConfig()),
		playlist:   audio.NewPlaylistWriter(playlistFormat, settings.M3UExtended),
		images:     ioutils.NewImageService(),
		onProgress: onProgress,
	}

	policy := RetryPolicy{
		MaxRetries: settings.MaxRetries,
		BaseDelay:  settings.RetryBaseDelay(),
		Jitter:     settings.RetryJitter,
	}
	m.executor = NewExecutor(policy, func(attempt int, delay time.Duration, err error) {
		m.runLog.Printf("retry attempt=%d delay=%s err=%v", attempt, delay, err)
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Retry %d/%d in %s: %v", attempt, policy.MaxRetries, delay.Round(time.Millisecond), err),
			Level:   LevelWarning,
		})
	})
	return m
}

// Run downloads the playlist the reference names. Per-track failures are
// recorded in the summary and never stop the run; only an unusable
// reference or a failed playlist resolution aborts, with a nil summary.
// When ctx is cancelled mid-run the summary built so far is returned
// together with the context error.
func (m *Manager) Run(ctx context.Context, reference string) (*Summary, error) {
	m.resetProgress()

	ref, err := yamusic.ParseReference(reference)
	if err != nil {
		return nil, err
	}

	if err := ioutils.EnsureDir(m.settings.OutputDir); err != nil {
		return nil, err
	}

	runLog, err := OpenRunLog(m.settings.OutputDir)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Run log unavailable: %v", err), Level: LevelWarning})
	}
	m.runLog = runLog
	defer func() {
		m.runLog.Close()
		m.runLog = nil
	}()

	m.progress(ProgressEvent{Message: fmt.Sprintf("Resolving playlist: %s", ref), Level: LevelInfo})
	m.runLog.Printf("run start reference=%s", ref)

	var playlist *model.Playlist
	err = m.executor.Do(ctx, func() error {
		var opErr error
		playlist, opErr = m.catalog.ResolvePlaylist(ctx, ref)
		return opErr
	})
	if err != nil {
		m.runLog.Printf("resolve failed: %v", err)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error resolving %s: %v", ref, err), Level: LevelError})
		return nil, err
	}

	atomic.StoreInt32(&m.totalTracks, int32(len(playlist.Tracks)))
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Found playlist: %s (%d tracks)", playlist.Title, len(playlist.Tracks)),
		Level:   LevelInfo,
	})
	m.runLog.Printf("playlist %q tracks=%d", playlist.Title, len(playlist.Tracks))

	summary := &Summary{PlaylistTitle: playlist.Title, Started: time.Now()}
	pacer := NewPacer(m.settings.TrackInterval())

	for i, track := range playlist.Tracks {
		if err := pacer.Wait(ctx); err != nil {
			return m.finish(summary), err
		}

		outcome := m.processTrack(ctx, track)
		if outcome.Err != nil && ctx.Err() != nil && errors.Is(outcome.Err, ctx.Err()) {
			return m.finish(summary), ctx.Err()
		}
		m.record(summary, i, outcome)
	}

	if m.settings.CreatePlaylist {
		m.writePlaylistFile(playlist.Title, summary)
	}

	return m.finish(summary), nil
}

// resetProgress zeroes the counters so a reused Manager does not carry a
// previous run's numbers into GetProgress.
func (m *Manager) resetProgress() {
	atomic.StoreInt32(&m.totalTracks, 0)
	atomic.StoreInt32(&m.processedTracks, 0)
	atomic.StoreInt32(&m.succeeded, 0)
	atomic.StoreInt32(&m.skipped, 0)
	atomic.StoreInt32(&m.failed, 0)
	atomic.StoreInt64(&m.receivedBytes, 0)
}

// GetProgress returns the current download progress.
func (m *Manager) GetProgress() Progress {
	return Progress{
		Processed:     int(atomic.LoadInt32(&m.processedTracks)),
		Total:         int(atomic.LoadInt32(&m.totalTracks)),
		Succeeded:     int(atomic.LoadInt32(&m.succeeded)),
		Skipped:       int(atomic.LoadInt32(&m.skipped)),
		Failed:        int(atomic.LoadInt32(&m.failed)),
		ReceivedBytes: atomic.LoadInt64(&m.receivedBytes),
	}
}

// processTrack carries one track through the pipeline: list its renditions,
// choose one, skip files that already exist, then fetch and tag.
func (m *Manager) processTrack(ctx context.Context, track model.Track) Outcome {
	var encodings []model.Encoding
	err := m.executor.Do(ctx, func() error {
		var opErr error
		encodings, opErr = m.catalog.DownloadInfos(ctx, track.ID)
		return opErr
	})
	if err != nil {
		return Outcome{Track: track, Kind: OutcomeFailed, ErrKind: Classify(err), Err: err}
	}

	enc := model.ChooseEncoding(encodings, m.settings.Preference())
	if enc == nil {
		return Outcome{Track: track, Kind: OutcomeSkipped, Reason: SkipNoEncodingsAvailable}
	}

	path := track.BuildPath(m.settings.OutputDir, *enc)
	if _, err := os.Stat(path); err == nil {
		return Outcome{Track: track, Kind: OutcomeSkipped, Reason: SkipAlreadyExists, Path: path, Encoding: enc}
	}

	err = m.executor.Do(ctx, func() error {
		return m.downloadTo(ctx, path, *enc)
	})
	if err != nil {
		return Outcome{Track: track, Kind: OutcomeFailed, ErrKind: Classify(err), Err: err}
	}

	if m.settings.ModifyTags && enc.Format == model.FormatMP3 {
		m.tagTrack(ctx, path, track)
	}

	return Outcome{Track: track, Kind: OutcomeSucceeded, Path: path, Encoding: enc}
}

// downloadTo streams one rendition into path. On failure the partial file
// is removed so a retry or a later run starts clean.
func (m *Manager) downloadTo(ctx context.Context, path string, enc model.Encoding) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	var last int64
	err = m.catalog.FetchTrack(ctx, enc, file, func(written, total int64) {
		atomic.AddInt64(&m.receivedBytes, written-last)
		last = written
	})
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// tagTrack writes ID3 metadata and, when configured, embedded cover art.
// Tagging is best effort: the file already holds the audio, so a tagging
// failure only produces a warning.
func (m *Manager) tagTrack(ctx context.Context, path string, track model.Track) {
	var cover []byte
	if m.settings.EmbedCoverArt && track.HasCover() {
		data, err := m.catalog.CoverArt(ctx, track, m.settings.CoverArtSize)
		if err == nil {
			cover, err = m.images.PrepareCover(ctx, data, m.settings.CoverArtSize)
		}
		if err != nil {
			m.progress(ProgressEvent{
				Message: fmt.Sprintf("Error preparing cover art for %s: %v", track.DisplayName(), err),
				Level:   LevelWarning,
			})
			cover = nil
		}
	}

	if err := m.tagger.Tag(path, track, cover); err != nil {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Error tagging %s: %v", filepath.Base(path), err),
			Level:   LevelWarning,
		})
	}
}

// record books one outcome into the summary, the counters, the run log and
// the callbacks.
func (m *Manager) record(summary *Summary, index int, outcome Outcome) {
	summary.record(outcome)
	atomic.AddInt32(&m.processedTracks, 1)

	switch outcome.Kind {
	case OutcomeSucceeded:
		atomic.AddInt32(&m.succeeded, 1)
		m.runLog.Printf("success track=%s path=%s", outcome.Track.ID, outcome.Path)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s", filepath.Base(outcome.Path)), Level: LevelSuccess})
	case OutcomeSkipped:
		atomic.AddInt32(&m.skipped, 1)
		m.runLog.Printf("skip track=%s reason=%s", outcome.Track.ID, outcome.Reason)
		if outcome.Reason == SkipAlreadyExists {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", filepath.Base(outcome.Path)), Level: LevelVerbose})
		} else {
			m.progress(ProgressEvent{Message: fmt.Sprintf("No downloadable audio for %s", outcome.Track.DisplayName()), Level: LevelWarning})
		}
	case OutcomeFailed:
		atomic.AddInt32(&m.failed, 1)
		m.runLog.Printf("failure track=%s kind=%s err=%v", outcome.Track.ID, outcome.ErrKind, outcome.Err)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading %s: %v", outcome.Track.DisplayName(), outcome.Err), Level: LevelError})
	}

	if m.OnOutcome != nil {
		m.OnOutcome(index+1, int(atomic.LoadInt32(&m.totalTracks)), outcome)
	}
}

// writePlaylistFile renders the playlist file over every track that ended
// up with a file on disk, downloaded now or found already present.
func (m *Manager) writePlaylistFile(title string, summary *Summary) {
	entries := make([]audio.Entry, 0, len(summary.Outcomes))
	for _, outcome := range summary.Outcomes {
		if outcome.Path == "" {
			continue
		}
		entries = append(entries, audio.Entry{
			Path:        filepath.Base(outcome.Path),
			Artist:      outcome.Track.ArtistLine(),
			Title:       outcome.Track.DisplayTitle(),
			DurationSec: outcome.Track.DurationSeconds(),
		})
	}
	if len(entries) == 0 {
		return
	}

	name := ioutils.SanitizeFileName(title)
	if name == "" {
		name = "playlist"
	}
	path := filepath.Join(m.settings.OutputDir, name+m.playlist.Extension())
	if err := os.WriteFile(path, []byte(m.playlist.Create(title, entries)), 0644); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist file: %v", err), Level: LevelWarning})
		return
	}
	m.runLog.Printf("playlist file=%s entries=%d", path, len(entries))
	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist: %s", filepath.Base(path)), Level: LevelSuccess})
}

func (m *Manager) finish(summary *Summary) *Summary {
	summary.Finished = time.Now()
	m.runLog.Printf("run finished succeeded=%d skipped=%d failed=%d",
		summary.Succeeded, summary.Skipped, summary.Failed)
	return summary
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
