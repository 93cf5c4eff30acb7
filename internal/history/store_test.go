package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenAt(filepath.Join(t.TempDir(), "test_history.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestOpenAt(t *testing.T) {
	store := setupTestStore(t)
	if store == nil {
		t.Fatal("OpenAt() returned nil")
	}
}

func TestRecord(t *testing.T) {
	store := setupTestStore(t)

	entry := NewEntry("kernels")
	entry.RecordBatch(cleaner.BatchResult{Attempted: 2, Succeeded: 2, BytesReclaimed: 1 << 20})

	if err := store.Record(entry); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

func TestList(t *testing.T) {
	store := setupTestStore(t)

	steps := []string{"apt", "kernels", "trash", "journal", "docker"}
	for _, step := range steps {
		entry := NewEntry(step)
		entry.MarkSuccess()
		store.Record(entry)
		time.Sleep(1 * time.Millisecond) // Ensure different timestamps
	}

	entries, err := store.List(0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("expected 5 entries, got %d", len(entries))
	}

	limited, err := store.List(3)
	if err != nil {
		t.Fatalf("List(3) error: %v", err)
	}
	if len(limited) != 3 {
		t.Errorf("expected 3 entries with limit, got %d", len(limited))
	}

	// Entries should be in reverse chronological order (newest first)
	if len(entries) >= 2 && entries[0].Timestamp.Before(entries[1].Timestamp) {
		t.Error("List() should return entries in reverse chronological order")
	}
	if entries[0].Step != "docker" {
		t.Errorf("newest entry should be docker, got %s", entries[0].Step)
	}
}

func TestLast(t *testing.T) {
	store := setupTestStore(t)

	if last, err := store.Last(); err != nil || last != nil {
		t.Errorf("Last() on empty store = (%v, %v), want (nil, nil)", last, err)
	}

	entry := NewEntry("trash")
	entry.MarkFailed(errors.New("device busy"))
	store.Record(entry)

	last, err := store.Last()
	if err != nil {
		t.Fatalf("Last() error: %v", err)
	}
	if last == nil || last.Step != "trash" || last.Success {
		t.Errorf("Last() = %+v", last)
	}
	if last.Error != "device busy" {
		t.Errorf("Last().Error = %q", last.Error)
	}
}

func TestTotalReclaimed(t *testing.T) {
	store := setupTestStore(t)

	for i, n := range []int64{100, 250, 0} {
		entry := NewEntry("apt")
		entry.BytesReclaimed = n
		entry.Timestamp = entry.Timestamp.Add(time.Duration(i) * time.Second)
		store.Record(entry)
	}

	total, err := store.TotalReclaimed()
	if err != nil {
		t.Fatalf("TotalReclaimed() error: %v", err)
	}
	if total != 350 {
		t.Errorf("TotalReclaimed() = %d, want 350", total)
	}
}

func TestClear(t *testing.T) {
	store := setupTestStore(t)

	store.Record(NewEntry("apt"))
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	count, _ := store.Count()
	if count != 0 {
		t.Errorf("expected empty history after Clear(), got %d entries", count)
	}
}

func TestRecordBatch(t *testing.T) {
	entry := NewEntry("appimages")
	entry.RecordBatch(cleaner.BatchResult{Attempted: 3, Succeeded: 2, Failed: 1, BytesReclaimed: 42})

	if entry.Attempted != 3 || entry.Succeeded != 2 || entry.Failed != 1 {
		t.Errorf("counters not copied: %+v", entry)
	}
	if entry.Success {
		t.Error("a batch with failures should not be marked success")
	}
	if entry.BytesReclaimed != 42 {
		t.Errorf("BytesReclaimed = %d, want 42", entry.BytesReclaimed)
	}
}
