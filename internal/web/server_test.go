package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/handiism/yamusic-downloader/internal/config"
	"github.com/handiism/yamusic-downloader/internal/download"
	"github.com/handiism/yamusic-downloader/internal/model"
	"github.com/handiism/yamusic-downloader/internal/store"
	"github.com/handiism/yamusic-downloader/internal/yamusic"
)

// stubCatalog serves one tiny playlist so download runs finish instantly.
type stubCatalog struct{}

func (stubCatalog) ResolvePlaylist(ctx context.Context, ref yamusic.Reference) (*model.Playlist, error) {
	return &model.Playlist{Title: "Stub", Tracks: []model.Track{
		{ID: "1", Title: "One", Artists: []string{"A"}},
	}}, nil
}

func (stubCatalog) DownloadInfos(ctx context.Context, trackID string) ([]model.Encoding, error) {
	return []model.Encoding{
		{Format: model.FormatMP3, BitrateKbps: 192, InfoURL: "u-mp3"},
		{Format: model.FormatFLAC, InfoURL: "u-flac"},
	}, nil
}

func (stubCatalog) FetchTrack(ctx context.Context, enc model.Encoding, w io.Writer, onProgress func(written, total int64)) error {
	_, err := w.Write([]byte("bytes"))
	return err
}

func (stubCatalog) CoverArt(ctx context.Context, track model.Track, size int) ([]byte, error) {
	return nil, errors.New("no cover in stub")
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	settings := config.DefaultSettings()
	settings.OutputDir = t.TempDir()
	settings.TrackIntervalSeconds = 0
	settings.ModifyTags = false
	settings.EmbedCoverArt = false

	srv := New(settings, "test-token", nil)
	srv.newCatalog = func(token string) download.Catalog { return stubCatalog{} }
	return srv
}

// startRun POSTs the download form and returns the new run's id.
func startRun(t *testing.T, srv *Server, form url.Values) string {
	t.Helper()
	req := httptest.NewRequest("POST", "/download", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/progress/") {
		t.Fatalf("Location = %q, want /progress/{id}", location)
	}
	return strings.TrimPrefix(location, "/progress/")
}

// awaitRun polls the progress API until the run leaves the running state.
func awaitRun(t *testing.T, srv *Server, id string) progressResponse {
	t.Helper()
	var progress progressResponse
	for i := 0; i < 200; i++ {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/progress/"+id, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("progress API status = %d, want 200", rec.Code)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &progress); err != nil {
			t.Fatalf("progress API returned invalid JSON: %v", err)
		}
		if progress.Status != statusRunning {
			return progress
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("run %s still running after polling, status %q", id, progress.Status)
	return progress
}

func TestServer_Healthz(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestServer_Index(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Download a playlist") {
		t.Error("index page missing the download form")
	}
}

func TestServer_ProgressAPIUnknownRun(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/progress/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["error"] == "" {
		t.Error("404 response missing error field")
	}
}

func TestServer_DownloadRequiresReference(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("POST", "/download", strings.NewReader("reference="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestServer_DownloadFlow(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{"reference": {"alice:1000"}}
	req := httptest.NewRequest("POST", "/download", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/progress/") {
		t.Fatalf("Location = %q, want /progress/{id}", location)
	}
	id := strings.TrimPrefix(location, "/progress/")

	page := httptest.NewRecorder()
	srv.ServeHTTP(page, httptest.NewRequest("GET", location, nil))
	if page.Code != http.StatusOK {
		t.Errorf("progress page status = %d, want 200", page.Code)
	}
	if !strings.Contains(page.Body.String(), "alice:1000") {
		t.Error("progress page missing the reference")
	}

	var progress progressResponse
	for i := 0; i < 200; i++ {
		apiRec := httptest.NewRecorder()
		srv.ServeHTTP(apiRec, httptest.NewRequest("GET", "/api/progress/"+id, nil))
		if apiRec.Code != http.StatusOK {
			t.Fatalf("progress API status = %d, want 200", apiRec.Code)
		}
		if err := json.Unmarshal(apiRec.Body.Bytes(), &progress); err != nil {
			t.Fatalf("progress API returned invalid JSON: %v", err)
		}
		if progress.Status != statusRunning {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if progress.Status != statusComplete {
		t.Fatalf("final status = %q (error %q), want complete", progress.Status, progress.Error)
	}
	if progress.Succeeded != 1 || progress.Total != 1 {
		t.Errorf("progress = %+v, want 1/1 succeeded", progress)
	}
	if len(progress.Messages) == 0 {
		t.Error("progress messages empty, want at least the resolve message")
	}
}

func TestServer_DownloadPerRunOverrides(t *testing.T) {
	srv := newTestServer(t)

	var mu sync.Mutex
	var tokens []string
	srv.newCatalog = func(token string) download.Catalog {
		mu.Lock()
		tokens = append(tokens, token)
		mu.Unlock()
		return stubCatalog{}
	}

	id := startRun(t, srv, url.Values{
		"reference": {"alice:1000"},
		"token":     {"per-run-token"},
		"format":    {"flac"},
	})
	progress := awaitRun(t, srv, id)
	if progress.Status != statusComplete {
		t.Fatalf("final status = %q (error %q), want complete", progress.Status, progress.Error)
	}

	mu.Lock()
	got := append([]string(nil), tokens...)
	mu.Unlock()
	if len(got) != 1 || got[0] != "per-run-token" {
		t.Errorf("catalog tokens = %q, want the form token", got)
	}

	flacPath := filepath.Join(srv.settings.OutputDir, "A - One.flac")
	if _, err := os.Stat(flacPath); err != nil {
		t.Errorf("expected %s from the flac override: %v", flacPath, err)
	}

	id = startRun(t, srv, url.Values{"reference": {"alice:1000"}})
	awaitRun(t, srv, id)

	mu.Lock()
	got = append([]string(nil), tokens...)
	mu.Unlock()
	if len(got) != 2 || got[1] != "test-token" {
		t.Errorf("catalog tokens = %q, want fallback to the server token", got)
	}
	mp3Path := filepath.Join(srv.settings.OutputDir, "A - One.mp3")
	if _, err := os.Stat(mp3Path); err != nil {
		t.Errorf("expected %s from the default format: %v", mp3Path, err)
	}
}

func TestServer_HistorySharesProgressID(t *testing.T) {
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })

	settings := config.DefaultSettings()
	settings.OutputDir = t.TempDir()
	settings.TrackIntervalSeconds = 0
	settings.ModifyTags = false
	settings.EmbedCoverArt = false

	srv := New(settings, "test-token", st)
	srv.newCatalog = func(token string) download.Catalog { return stubCatalog{} }

	id := startRun(t, srv, url.Values{"reference": {"alice:1000"}})
	awaitRun(t, srv, id)

	// SaveRun happens after the status flips, so give it a moment.
	var run *store.Run
	for i := 0; i < 200; i++ {
		run, err = st.RunByID(context.Background(), id)
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("RunByID(progress id) error = %v", err)
	}
	if run.Reference != "alice:1000" {
		t.Errorf("Reference = %q, want %q", run.Reference, "alice:1000")
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/history/"+id, nil))
	if rec.Code != http.StatusOK {
		t.Errorf("history detail status = %d, want 200", rec.Code)
	}
}
