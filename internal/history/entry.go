// Package history provides cleanup run history tracking with BoltDB.
package history

import (
	"fmt"
	"time"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
)

// Entry represents one executed cleanup step in the history.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Step      string    `json:"step"` // cleanup step name, e.g. "kernels"

	Attempted      int   `json:"attempted"`
	Succeeded      int   `json:"succeeded"`
	Failed         int   `json:"failed"`
	BytesReclaimed int64 `json:"bytes_reclaimed"`
	SpaceDelta     int64 `json:"space_delta"`

	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// NewEntry creates a new history entry for a cleanup step.
func NewEntry(step string) *Entry {
	return &Entry{
		ID:        generateID(),
		Timestamp: time.Now(),
		Step:      step,
	}
}

// RecordBatch copies the batch counters into the entry.
func (e *Entry) RecordBatch(res cleaner.BatchResult) {
	e.Attempted = res.Attempted
	e.Succeeded = res.Succeeded
	e.Failed = res.Failed
	e.BytesReclaimed = res.BytesReclaimed
	e.Success = res.Failed == 0
}

// MarkSuccess marks the entry as successful.
func (e *Entry) MarkSuccess() {
	e.Success = true
}

// MarkFailed marks the entry as failed with an error message.
func (e *Entry) MarkFailed(err error) {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
}

// generateID generates a unique ID for the entry.
func generateID() string {
	return time.Now().Format("20060102150405.000000")
}

// FormatTime returns a human-readable timestamp.
func (e *Entry) FormatTime() string {
	return e.Timestamp.Format("2006-01-02 15:04:05")
}

// Summary returns a brief summary of the run.
func (e *Entry) Summary() string {
	status := "success"
	if !e.Success {
		status = "failed"
	}
	return fmt.Sprintf("%d/%d removed, %s reclaimed (%s)",
		e.Succeeded, e.Attempted,
		cleaner.FormatBytes(e.BytesReclaimed), status)
}
