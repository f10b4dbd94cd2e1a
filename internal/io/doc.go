// Package ioutils provides file system and image processing utilities.
//
// # File Operations
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/music/downloads")
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove characters that are invalid in filenames:
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
//
// Sanitization is idempotent and never panics; an input made entirely of
// invalid material sanitizes to the empty string, and callers substitute
// their own placeholder.
//
// # Cover Art
//
// The ImageService normalizes downloaded artwork for ID3 embedding:
//
//	svc := ioutils.NewImageService()
//	cover, _ := svc.PrepareCover(ctx, imageData, 400)
package ioutils
