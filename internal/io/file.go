package ioutils

import (
	"os"
	"regexp"
	"strings"
)

var (
	// Characters: < > : " / \ | ? * and control characters (0x00-0x1f)
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// SanitizeFileName removes or replaces characters that are invalid in
// file/folder names.
//
// This function ensures filenames are valid across different operating
// systems, particularly Windows which has the most restrictive naming rules.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Multiple whitespace → single space
//   - Leading and trailing whitespace and dots → removed
//
// The function is idempotent: sanitizing an already sanitized name returns
// it unchanged. An input consisting only of invalid material can sanitize
// to the empty string; callers substitute their own placeholder.
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2")      // Returns "Song_ Part 1_2"
//	SanitizeFileName("..Track...")          // Returns "Track"
//	SanitizeFileName("Name   with  spaces") // Returns "Name with spaces"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = whitespace.ReplaceAllString(name, " ")
	name = strings.Trim(name, " .")
	return name
}

// EnsureDir creates a directory and all parent directories if they don't
// exist. Directories are created with mode 0755. An existing directory is
// not an error.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
