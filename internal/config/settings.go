package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/handiism/yamusic-downloader/internal/model"
)

// TokenEnv is the environment variable the OAuth token is read from. The
// token is a credential and never lives in the settings file.
const TokenEnv = "YANDEX_MUSIC_TOKEN"

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	OutputDir             string  `json:"output_dir"`
	PreferredFormat       string  `json:"preferred_format"` // flac, mp3, aac
	TrackIntervalSeconds  float64 `json:"track_interval_seconds"`
	MaxRetries            int     `json:"max_retries"`
	RetryBaseDelaySeconds float64 `json:"retry_base_delay_seconds"`
	RetryJitter           bool    `json:"retry_jitter"`

	// Tag settings
	ModifyTags    bool `json:"modify_tags"`
	EmbedCoverArt bool `json:"embed_cover_art"`
	CoverArtSize  int  `json:"cover_art_size"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistFormat string `json:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended"`

	// Web front-end settings
	DatabasePath string `json:"database_path"`
	ListenAddr   string `json:"listen_addr"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		OutputDir:             filepath.Join(homeDir, "Music", "Yandex Music"),
		PreferredFormat:       "mp3",
		TrackIntervalSeconds:  0.5,
		MaxRetries:            3,
		RetryBaseDelaySeconds: 1.0,
		RetryJitter:           true,

		ModifyTags:    true,
		EmbedCoverArt: true,
		CoverArtSize:  400,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		DatabasePath: filepath.Join(configDir(), "history.db"),
		ListenAddr:   ":8080",
	}
}

// DefaultPath returns where the settings file lives unless overridden.
func DefaultPath() string {
	return filepath.Join(configDir(), "settings.json")
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir, _ = os.UserHomeDir()
	}
	return filepath.Join(dir, "yamusic-downloader")
}

// Load reads settings from a JSON file. A missing file yields the
// defaults; fields absent from the file keep their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Preference returns the encoding preference the settings describe.
func (s *Settings) Preference() model.Preference {
	if s.PreferredFormat == "" {
		return model.DefaultPreference()
	}
	return model.Preference{Format: model.ParseFormat(s.PreferredFormat)}
}

// TrackInterval returns the minimum spacing between track downloads.
func (s *Settings) TrackInterval() time.Duration {
	return time.Duration(s.TrackIntervalSeconds * float64(time.Second))
}

// RetryBaseDelay returns the backoff delay before the first retry.
func (s *Settings) RetryBaseDelay() time.Duration {
	return time.Duration(s.RetryBaseDelaySeconds * float64(time.Second))
}

// LoadToken reads the OAuth token from the environment, loading a .env
// file first when one is present in the working directory.
func LoadToken() (string, error) {
	_ = godotenv.Load()

	token := os.Getenv(TokenEnv)
	if token == "" {
		return "", errors.New(TokenEnv + " is not set")
	}
	return token, nil
}
