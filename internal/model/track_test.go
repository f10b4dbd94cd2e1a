package model

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestTrack_FileName(t *testing.T) {
	tests := []struct {
		name     string
		track    Track
		encoding Encoding
		expected string
	}{
		{
			name:     "artist and title",
			track:    Track{Title: "Song", Artists: []string{"Artist"}},
			encoding: Encoding{Format: FormatMP3},
			expected: "Artist - Song.mp3",
		},
		{
			name:     "multiple artists joined",
			track:    Track{Title: "Song", Artists: []string{"First", "Second"}},
			encoding: Encoding{Format: FormatMP3},
			expected: "First, Second - Song.mp3",
		},
		{
			name:     "flac extension",
			track:    Track{Title: "Song", Artists: []string{"Artist"}},
			encoding: Encoding{Format: FormatFLAC},
			expected: "Artist - Song.flac",
		},
		{
			name:     "aac extension",
			track:    Track{Title: "Song", Artists: []string{"Artist"}},
			encoding: Encoding{Format: FormatAAC},
			expected: "Artist - Song.aac",
		},
		{
			name:     "unknown format falls back to mp3",
			track:    Track{Title: "Song", Artists: []string{"Artist"}},
			encoding: Encoding{Format: Format("opus")},
			expected: "Artist - Song.mp3",
		},
		{
			name:     "missing artists use placeholder",
			track:    Track{Title: "Song"},
			encoding: Encoding{Format: FormatMP3},
			expected: "Unknown Artist - Song.mp3",
		},
		{
			name:     "missing title uses placeholder",
			track:    Track{Artists: []string{"Artist"}},
			encoding: Encoding{Format: FormatMP3},
			expected: "Artist - Unknown Title.mp3",
		},
		{
			name:     "forbidden characters sanitized",
			track:    Track{Title: "One/Two", Artists: []string{"AC: DC"}},
			encoding: Encoding{Format: FormatMP3},
			expected: "AC_ DC - One_Two.mp3",
		},
		{
			name:     "title of dots becomes placeholder",
			track:    Track{Title: "...", Artists: []string{"Artist"}},
			encoding: Encoding{Format: FormatMP3},
			expected: "Artist - Unknown Title.mp3",
		},
		{
			name:     "whitespace-only artists use placeholder",
			track:    Track{Title: "Song", Artists: []string{"  ", ""}},
			encoding: Encoding{Format: FormatMP3},
			expected: "Unknown Artist - Song.mp3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.track.FileName(tt.encoding); got != tt.expected {
				t.Errorf("FileName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTrack_FileNameLength(t *testing.T) {
	track := Track{
		Title:   strings.Repeat("very long title ", 30),
		Artists: []string{"Artist"},
	}

	name := track.FileName(Encoding{Format: FormatFLAC})
	if len(name) > 200 {
		t.Errorf("FileName() length = %d, want <= 200", len(name))
	}
	if !strings.HasSuffix(name, ".flac") {
		t.Errorf("FileName() = %q, truncation must preserve the extension", name)
	}
}

func TestTrack_BuildPath(t *testing.T) {
	track := Track{Title: "Song", Artists: []string{"Artist"}}

	got := track.BuildPath("/music", Encoding{Format: FormatFLAC})
	expected := filepath.Join("/music", "Artist - Song.flac")
	if got != expected {
		t.Errorf("BuildPath() = %q, want %q", got, expected)
	}
}

func TestTrack_ArtistLine(t *testing.T) {
	tests := []struct {
		name     string
		artists  []string
		expected string
	}{
		{"single artist", []string{"Artist"}, "Artist"},
		{"two artists", []string{"First", "Second"}, "First, Second"},
		{"empty entries skipped", []string{"", "Artist", "  "}, "Artist"},
		{"no artists", nil, UnknownArtist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track := Track{Artists: tt.artists}
			if got := track.ArtistLine(); got != tt.expected {
				t.Errorf("ArtistLine() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTrack_DisplayName(t *testing.T) {
	track := Track{Title: "Song", Artists: []string{"Artist"}}
	if got := track.DisplayName(); got != "Artist - Song" {
		t.Errorf("DisplayName() = %q, want %q", got, "Artist - Song")
	}

	empty := Track{}
	if got := empty.DisplayName(); got != "Unknown Artist - Unknown Title" {
		t.Errorf("DisplayName() = %q, want %q", got, "Unknown Artist - Unknown Title")
	}
}
