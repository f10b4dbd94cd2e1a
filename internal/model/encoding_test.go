package model

import "testing"

func TestChooseEncoding(t *testing.T) {
	tests := []struct {
		name      string
		available []Encoding
		pref      Preference
		want      Encoding
	}{
		{
			name: "preferred format wins over better class",
			available: []Encoding{
				{Format: FormatFLAC},
				{Format: FormatMP3, BitrateKbps: 192},
			},
			pref: Preference{Format: FormatMP3},
			want: Encoding{Format: FormatMP3, BitrateKbps: 192},
		},
		{
			name: "highest bitrate within preferred format",
			available: []Encoding{
				{Format: FormatMP3, BitrateKbps: 128},
				{Format: FormatMP3, BitrateKbps: 320},
				{Format: FormatMP3, BitrateKbps: 192},
			},
			pref: Preference{Format: FormatMP3},
			want: Encoding{Format: FormatMP3, BitrateKbps: 320},
		},
		{
			name: "fallback ranking prefers flac",
			available: []Encoding{
				{Format: FormatAAC, BitrateKbps: 256},
				{Format: FormatFLAC},
				{Format: FormatMP3, BitrateKbps: 320},
			},
			pref: Preference{Format: Format("ogg")},
			want: Encoding{Format: FormatFLAC},
		},
		{
			name: "fallback to aac when nothing better offered",
			available: []Encoding{
				{Format: Format("opus"), BitrateKbps: 510},
				{Format: FormatAAC, BitrateKbps: 64},
			},
			pref: Preference{Format: FormatMP3},
			want: Encoding{Format: FormatAAC, BitrateKbps: 64},
		},
		{
			name: "zero bitrate outranks explicit bitrate",
			available: []Encoding{
				{Format: FormatMP3, BitrateKbps: 320},
				{Format: FormatMP3},
			},
			pref: Preference{Format: FormatMP3},
			want: Encoding{Format: FormatMP3},
		},
		{
			name: "tie keeps the first encountered",
			available: []Encoding{
				{Format: FormatMP3, BitrateKbps: 192, InfoURL: "first"},
				{Format: FormatMP3, BitrateKbps: 192, InfoURL: "second"},
			},
			pref: Preference{Format: FormatMP3},
			want: Encoding{Format: FormatMP3, BitrateKbps: 192, InfoURL: "first"},
		},
		{
			name: "unknown formats compete in the other bucket",
			available: []Encoding{
				{Format: Format("opus"), BitrateKbps: 160},
				{Format: Format("ogg"), BitrateKbps: 320},
			},
			pref: Preference{Format: FormatMP3},
			want: Encoding{Format: Format("ogg"), BitrateKbps: 320},
		},
		{
			name: "single entry is selected regardless of preference",
			available: []Encoding{
				{Format: FormatAAC, BitrateKbps: 128},
			},
			pref: Preference{Format: FormatFLAC},
			want: Encoding{Format: FormatAAC, BitrateKbps: 128},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChooseEncoding(tt.available, tt.pref)
			if got == nil {
				t.Fatalf("ChooseEncoding() = nil, want %v", tt.want)
			}
			if *got != tt.want {
				t.Errorf("ChooseEncoding() = %v, want %v", *got, tt.want)
			}
		})
	}
}

func TestChooseEncoding_Empty(t *testing.T) {
	if got := ChooseEncoding(nil, DefaultPreference()); got != nil {
		t.Errorf("ChooseEncoding(nil) = %v, want nil", got)
	}
	if got := ChooseEncoding([]Encoding{}, DefaultPreference()); got != nil {
		t.Errorf("ChooseEncoding(empty) = %v, want nil", got)
	}
}

func TestChooseEncoding_ElementOfInput(t *testing.T) {
	available := []Encoding{
		{Format: FormatMP3, BitrateKbps: 128},
		{Format: FormatFLAC},
		{Format: FormatAAC, BitrateKbps: 256},
	}

	got := ChooseEncoding(available, DefaultPreference())
	if got == nil {
		t.Fatal("ChooseEncoding() = nil, want an element of the input")
	}

	found := false
	for i := range available {
		if got == &available[i] {
			found = true
		}
	}
	if !found {
		t.Errorf("ChooseEncoding() = %v, not a pointer into the input slice", *got)
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format   Format
		expected string
	}{
		{FormatFLAC, ".flac"},
		{FormatMP3, ".mp3"},
		{FormatAAC, ".aac"},
		{Format("opus"), ".mp3"},
		{Format(""), ".mp3"},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.expected {
			t.Errorf("Format(%q).Extension() = %q, want %q", string(tt.format), got, tt.expected)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"mp3", FormatMP3},
		{"MP3", FormatMP3},
		{" flac ", FormatFLAC},
		{"AAC", FormatAAC},
		{"Opus", Format("opus")},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.expected {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
