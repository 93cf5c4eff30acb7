// Package actionlog provides the append-only, timestamped record of every
// cleanup decision and outcome.
package actionlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

// Log is an append-only sink for single-line action records. Records are
// never mutated after being written; Clear is the only destructive
// operation and must be user-initiated.
type Log struct {
	mu   sync.Mutex
	w    io.Writer
	file *os.File // non-nil when file-backed
	path string
	now  func() time.Time
}

// Open opens (or creates) a file-backed log at path in append mode.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open action log: %w", err)
	}
	return &Log{w: f, file: f, path: path, now: time.Now}, nil
}

// New returns a log writing to w. Used by tests and for discarding sinks.
func New(w io.Writer) *Log {
	return &Log{w: w, now: time.Now}
}

// Discard returns a log that drops all records.
func Discard() *Log {
	return New(io.Discard)
}

// Printf appends one timestamped record. Newlines in the message are
// replaced so each record stays on a single line.
func (l *Log) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.w, "%s - %s\n", l.now().Format(timeLayout), sanitize(msg))
}

// Path returns the backing file path, or "" for writer-backed logs.
func (l *Log) Path() string {
	return l.path
}

// Clear truncates a file-backed log. It is a no-op for writer-backed logs.
func (l *Log) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	if err := l.file.Truncate(0); err != nil {
		return fmt.Errorf("failed to clear action log: %w", err)
	}
	_, err := l.file.Seek(0, io.SeekStart)
	return err
}

// Close closes a file-backed log.
func (l *Log) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func sanitize(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			out = append(out, ' ')
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
