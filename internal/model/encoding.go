package model

import (
	"fmt"
	"math"
	"strings"
)

// Format identifies an audio codec offered by the streaming service.
//
// Known values are FormatFLAC (lossless), FormatMP3 and FormatAAC (lossy).
// The service may report codecs this tool has never heard of; those are
// carried through verbatim and rank below the known formats during
// selection. An unknown format is never an error.
type Format string

const (
	// FormatFLAC is the lossless codec.
	FormatFLAC Format = "flac"

	// FormatMP3 is the primary lossy codec and the stock preference.
	FormatMP3 Format = "mp3"

	// FormatAAC is the secondary lossy codec.
	FormatAAC Format = "aac"
)

// ParseFormat normalizes a codec string reported by the service.
// Unknown codecs are preserved (lowercased) rather than rejected.
func ParseFormat(codec string) Format {
	return Format(strings.ToLower(strings.TrimSpace(codec)))
}

// Extension returns the file extension for the format, including the dot.
//
// Returns:
//   - ".flac" for FormatFLAC
//   - ".mp3" for FormatMP3
//   - ".aac" for FormatAAC
//   - ".mp3" for anything else (generic fallback)
func (f Format) Extension() string {
	switch f {
	case FormatFLAC:
		return ".flac"
	case FormatMP3:
		return ".mp3"
	case FormatAAC:
		return ".aac"
	default:
		return ".mp3"
	}
}

// Lossless reports whether the format is a lossless codec.
func (f Format) Lossless() bool {
	return f == FormatFLAC
}

// priority is the fixed ranking used when the preferred format is not on
// offer: flac > mp3 > aac > everything else.
func (f Format) priority() int {
	switch f {
	case FormatFLAC:
		return 3
	case FormatMP3:
		return 2
	case FormatAAC:
		return 1
	default:
		return 0
	}
}

// Encoding describes one downloadable rendition of a track as reported by
// the download-info endpoint.
//
// Example:
//
//	enc := model.Encoding{Format: model.FormatMP3, BitrateKbps: 320, InfoURL: url}
//	fmt.Println(enc.Format.Extension()) // ".mp3"
type Encoding struct {
	// Format is the codec tag reported by the service.
	Format Format

	// BitrateKbps is the bitrate in kilobits per second. Zero means the
	// service did not report one, which is typical for lossless entries;
	// selection treats it as higher than any explicit bitrate.
	BitrateKbps int

	// InfoURL is the opaque descriptor URL later exchanged for the actual
	// byte stream. Selection never dereferences it.
	InfoURL string
}

// effectiveBitrate orders encodings within one format partition. Absent or
// zero bitrates rank above every explicit value.
func (e Encoding) effectiveBitrate() int {
	if e.BitrateKbps <= 0 {
		return math.MaxInt
	}
	return e.BitrateKbps
}

// String renders the encoding for logs, e.g. "mp3 320kbps" or "flac".
func (e Encoding) String() string {
	if e.BitrateKbps <= 0 {
		return string(e.Format)
	}
	return fmt.Sprintf("%s %dkbps", e.Format, e.BitrateKbps)
}

// Preference states which format the user wants when the service offers it.
type Preference struct {
	Format Format
}

// DefaultPreference returns the stock preference, MP3.
func DefaultPreference() Preference {
	return Preference{Format: FormatMP3}
}

// ChooseEncoding picks which rendition of a track to download.
//
// The rules, applied in order:
//  1. An empty list selects nothing and returns nil.
//  2. If any encoding carries the preferred format, only those compete.
//  3. Otherwise only the best format class on offer competes, using the
//     fixed ranking flac > mp3 > aac > other.
//  4. Among the competitors the highest bitrate wins, where a missing or
//     zero bitrate counts as higher than any explicit value.
//
// Ties keep the earliest competitor, so callers should hand over the
// encodings in the stable order the service reported them. The result is
// always an element of available, never a synthesized value, and the
// function performs no I/O.
//
// Example:
//
//	encs := []model.Encoding{
//	    {Format: model.FormatMP3, BitrateKbps: 128},
//	    {Format: model.FormatMP3, BitrateKbps: 320},
//	}
//	best := model.ChooseEncoding(encs, model.DefaultPreference())
//	// best.BitrateKbps == 320
func ChooseEncoding(available []Encoding, pref Preference) *Encoding {
	if len(available) == 0 {
		return nil
	}

	preferred := false
	for _, e := range available {
		if e.Format == pref.Format {
			preferred = true
			break
		}
	}

	// Preferred format absent: fall back to the best format class present.
	top := -1
	if !preferred {
		for _, e := range available {
			if p := e.Format.priority(); p > top {
				top = p
			}
		}
	}

	var best *Encoding
	for i := range available {
		e := &available[i]
		if preferred {
			if e.Format != pref.Format {
				continue
			}
		} else if e.Format.priority() != top {
			continue
		}
		if best == nil || e.effectiveBitrate() > best.effectiveBitrate() {
			best = e
		}
	}

	return best
}
