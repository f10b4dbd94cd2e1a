package ioutils

import (
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"normal filename", "normal filename"},
		{"file/with/slashes", "file_with_slashes"},
		{`file\with\backslashes`, "file_with_backslashes"},
		{"file:with:colons", "file_with_colons"},
		{"file*with?wildcards", "file_with_wildcards"},
		{`file"quoted"<angle>|pipe`, "file_quoted__angle__pipe"},
		{"file\x00with\x1fcontrols", "file_with_controls"},
		{"tabs\tand\nnewlines", "tabs_and_newlines"},
		{"file   with    spaces", "file with spaces"},
		{"trailing dots...", "trailing dots"},
		{"...leading dots", "leading dots"},
		{"  surrounded by space  ", "surrounded by space"},
		{"Song: Part 1/2", "Song_ Part 1_2"},
		{". . .", ""},
		{"...", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.expected {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeFileNameIdempotent(t *testing.T) {
	inputs := []string{
		"Song: Part 1/2",
		"  ..weird\x01name..  ",
		"многие   артисты - трек",
		"a   b...",
		"already clean",
	}

	for _, input := range inputs {
		once := SanitizeFileName(input)
		twice := SanitizeFileName(once)
		if once != twice {
			t.Errorf("SanitizeFileName(%q) not idempotent: first %q, second %q", input, once, twice)
		}
	}
}

func TestSanitizeFileNameNoForbiddenChars(t *testing.T) {
	inputs := []string{
		`a<b>c:d"e/f\g|h?i*j`,
		"control\x00\x01\x02chars",
		"mixed: every/bad\\char|in?one*string<here>",
	}

	for _, input := range inputs {
		got := SanitizeFileName(input)
		if strings.ContainsAny(got, `<>:"/\|?*`) {
			t.Errorf("SanitizeFileName(%q) = %q, still contains forbidden characters", input, got)
		}
		for _, r := range got {
			if r < 0x20 {
				t.Errorf("SanitizeFileName(%q) = %q, still contains control character %q", input, got, r)
			}
		}
	}
}
