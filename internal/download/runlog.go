package download

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RunLogName is the audit log file kept next to the downloaded tracks.
const RunLogName = "download.log"

// RunLog appends timestamped lines to the audit log in the output
// directory. A nil RunLog discards everything, so callers never have to
// guard their log calls.
type RunLog struct {
	mu   sync.Mutex
	file *os.File
}

// OpenRunLog opens (or creates) the audit log inside dir for appending.
func OpenRunLog(dir string) (*RunLog, error) {
	file, err := os.OpenFile(filepath.Join(dir, RunLogName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	return &RunLog{file: file}, nil
}

// Printf writes one timestamped line.
func (l *RunLog) Printf(format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.file, "%s %s\n", time.Now().Format(time.RFC3339), fmt.Sprintf(format, args...))
}

// Close flushes and closes the log file.
func (l *RunLog) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
