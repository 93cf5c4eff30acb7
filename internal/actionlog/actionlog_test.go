package actionlog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPrintfFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)
	log.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
	}

	log.Printf("removed %d packages", 3)

	got := buf.String()
	want := "2024-03-01 12:30:45 - removed 3 packages\n"
	if got != want {
		t.Errorf("Printf() wrote %q, want %q", got, want)
	}
}

func TestPrintfSingleLine(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)

	log.Printf("broken\nmessage\r")

	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("record should stay on a single line, got %q", buf.String())
	}
}

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.log")

	for i := 0; i < 2; i++ {
		log, err := Open(path)
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		log.Printf("entry %d", i)
		log.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 records after reopen, got %d: %q", len(lines), data)
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.log")

	log, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer log.Close()

	log.Printf("something happened")
	if err := log.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	log.Printf("after clear")

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "after clear") {
		t.Errorf("Clear() should truncate previous records, got %q", data)
	}
}

func TestClearWriterBacked(t *testing.T) {
	log := New(&bytes.Buffer{})
	if err := log.Clear(); err != nil {
		t.Errorf("Clear() on writer-backed log should be a no-op, got %v", err)
	}
}
