package download

import (
	"time"

	"github.com/handiism/yamusic-downloader/internal/model"
)

// OutcomeKind says how a track's processing ended.
type OutcomeKind string

const (
	OutcomeSucceeded OutcomeKind = "succeeded"
	OutcomeSkipped   OutcomeKind = "skipped"
	OutcomeFailed    OutcomeKind = "failed"
)

// SkipReason says why a track was skipped.
type SkipReason string

const (
	SkipAlreadyExists        SkipReason = "already-exists"
	SkipNoEncodingsAvailable SkipReason = "no-encodings-available"
)

// Outcome records how one playlist track was handled. Every track of a run
// produces exactly one Outcome; a failed track never stops the run.
type Outcome struct {
	Track model.Track
	Kind  OutcomeKind

	// Path is the file the track lives at. Set for succeeded tracks and
	// for tracks skipped because the file already exists.
	Path string

	// Encoding is the rendition that was (or would have been) downloaded.
	// Nil when no encoding was chosen.
	Encoding *model.Encoding

	// Reason is set when Kind is OutcomeSkipped.
	Reason SkipReason

	// ErrKind and Err are set when Kind is OutcomeFailed.
	ErrKind Kind
	Err     error
}

// Summary is the result of one playlist run.
type Summary struct {
	PlaylistTitle string
	Outcomes      []Outcome
	Succeeded     int
	Skipped       int
	Failed        int
	Started       time.Time
	Finished      time.Time
}

// Total returns the number of tracks the run processed.
func (s *Summary) Total() int {
	return len(s.Outcomes)
}

func (s *Summary) record(outcome Outcome) {
	s.Outcomes = append(s.Outcomes, outcome)
	switch outcome.Kind {
	case OutcomeSucceeded:
		s.Succeeded++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}
