package audio

import (
	"strings"
	"testing"
)

func testEntries() []Entry {
	return []Entry{
		{Path: "Artist A - track1.mp3", Artist: "Artist A", Title: "track1", DurationSec: 180},
		{Path: "Artist B - track2.mp3", Artist: "Artist B", Title: "track2", DurationSec: 200},
	}
}

func TestPlaylistWriter_M3U(t *testing.T) {
	writer := NewPlaylistWriter(FormatM3U, false)

	content := writer.Create("Test Playlist", testEntries())

	if strings.Contains(content, "#EXTM3U") {
		t.Error("plain M3U should not contain #EXTM3U")
	}
	if !strings.Contains(content, "Artist A - track1.mp3") {
		t.Error("M3U should contain track filename")
	}
}

func TestPlaylistWriter_M3UExtended(t *testing.T) {
	writer := NewPlaylistWriter(FormatM3U, true)

	content := writer.Create("Test Playlist", testEntries())

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:180,Artist A - track1") {
		t.Errorf("Extended M3U should contain EXTINF line, got:\n%s", content)
	}
}

func TestPlaylistWriter_PLS(t *testing.T) {
	writer := NewPlaylistWriter(FormatPLS, false)

	content := writer.Create("Test Playlist", testEntries())

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File1=Artist A - track1.mp3") {
		t.Error("PLS should contain File1=")
	}
	if !strings.Contains(content, "NumberOfEntries=2") {
		t.Error("PLS should contain NumberOfEntries")
	}
}

func TestPlaylistWriter_WPL(t *testing.T) {
	writer := NewPlaylistWriter(FormatWPL, false)

	content := writer.Create("Test Playlist", testEntries())

	if !strings.Contains(content, "<?wpl") {
		t.Error("WPL should contain XML declaration")
	}
	if !strings.Contains(content, "<smil>") {
		t.Error("WPL should contain smil element")
	}
	if !strings.Contains(content, "<media src=") {
		t.Error("WPL should contain media elements")
	}
	if !strings.Contains(content, "<title>Test Playlist</title>") {
		t.Error("WPL should carry the playlist title")
	}
}

func TestPlaylistWriter_ZPL(t *testing.T) {
	writer := NewPlaylistWriter(FormatZPL, false)

	content := writer.Create("Test Playlist", testEntries())

	if !strings.Contains(content, "<?zpl") {
		t.Error("ZPL should contain XML declaration")
	}
	if !strings.Contains(content, "trackTitle=") {
		t.Error("ZPL should contain trackTitle attribute")
	}
	if !strings.Contains(content, "duration=\"180000\"") {
		t.Error("ZPL duration should be in milliseconds")
	}
}

func TestPlaylistWriter_XMLEscape(t *testing.T) {
	entries := []Entry{
		{Path: "AC & DC - Track <1>.mp3", Artist: "AC & DC", Title: "Track <1>", DurationSec: 60},
	}

	writer := NewPlaylistWriter(FormatWPL, false)
	content := writer.Create("Mix & Match", entries)

	if !strings.Contains(content, "&amp;") {
		t.Error("WPL should escape & as &amp;")
	}
	if strings.Contains(content, "<1>") {
		t.Error("WPL should escape < and >")
	}
}

func TestPlaylistWriter_Extension(t *testing.T) {
	tests := []struct {
		format PlaylistFormat
		want   string
	}{
		{FormatM3U, ".m3u"},
		{FormatPLS, ".pls"},
		{FormatWPL, ".wpl"},
		{FormatZPL, ".zpl"},
	}

	for _, tt := range tests {
		if got := NewPlaylistWriter(tt.format, false).Extension(); got != tt.want {
			t.Errorf("Extension(%d) = %q, want %q", tt.format, got, tt.want)
		}
	}
}
