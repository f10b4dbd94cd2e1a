package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/handiism/yamusic-downloader/internal/model"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	defaults := DefaultSettings()
	if settings.PreferredFormat != defaults.PreferredFormat {
		t.Errorf("PreferredFormat = %q, want %q", settings.PreferredFormat, defaults.PreferredFormat)
	}
	if settings.MaxRetries != defaults.MaxRetries {
		t.Errorf("MaxRetries = %d, want %d", settings.MaxRetries, defaults.MaxRetries)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"preferred_format":"flac","max_retries":5}`), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if settings.PreferredFormat != "flac" {
		t.Errorf("PreferredFormat = %q, want %q", settings.PreferredFormat, "flac")
	}
	if settings.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", settings.MaxRetries)
	}
	if settings.TrackIntervalSeconds != 0.5 {
		t.Errorf("TrackIntervalSeconds = %v, want default 0.5", settings.TrackIntervalSeconds)
	}
	if !settings.M3UExtended {
		t.Error("M3UExtended should keep its default true")
	}
}

func TestSettings_SaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	settings := DefaultSettings()
	settings.OutputDir = "/music"
	settings.PreferredFormat = "aac"
	settings.CreatePlaylist = true

	if err := settings.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.OutputDir != "/music" || loaded.PreferredFormat != "aac" || !loaded.CreatePlaylist {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestSettings_Preference(t *testing.T) {
	tests := []struct {
		format string
		want   model.Format
	}{
		{"mp3", model.FormatMP3},
		{"FLAC", model.FormatFLAC},
		{"", model.FormatMP3},
	}

	for _, tt := range tests {
		s := &Settings{PreferredFormat: tt.format}
		if got := s.Preference().Format; got != tt.want {
			t.Errorf("Preference(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestSettings_Durations(t *testing.T) {
	s := &Settings{TrackIntervalSeconds: 0.5, RetryBaseDelaySeconds: 2}

	if got := s.TrackInterval(); got != 500*time.Millisecond {
		t.Errorf("TrackInterval() = %v, want 500ms", got)
	}
	if got := s.RetryBaseDelay(); got != 2*time.Second {
		t.Errorf("RetryBaseDelay() = %v, want 2s", got)
	}
}

func TestLoadToken(t *testing.T) {
	t.Setenv(TokenEnv, "secret-token")

	token, err := LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() error = %v", err)
	}
	if token != "secret-token" {
		t.Errorf("LoadToken() = %q, want %q", token, "secret-token")
	}
}

func TestLoadToken_Missing(t *testing.T) {
	t.Setenv(TokenEnv, "")

	if _, err := LoadToken(); err == nil {
		t.Error("LoadToken() with empty env returned nil error")
	}
}
