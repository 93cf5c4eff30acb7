package cleaner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/actionlog"
)

func TestRunBatchAllSucceed(t *testing.T) {
	items := []Item{
		{ID: "/tmp/a", Size: 100},
		{ID: "/tmp/b", Size: 250},
	}

	res := RunBatch(context.Background(), items, func(ctx context.Context, item Item) error {
		return nil
	}, nil)

	if res.Attempted != 2 || res.Succeeded != 2 || res.Failed != 0 {
		t.Errorf("counts = %d/%d/%d, want 2/2/0", res.Attempted, res.Succeeded, res.Failed)
	}
	if res.BytesReclaimed != 350 {
		t.Errorf("BytesReclaimed = %d, want 350", res.BytesReclaimed)
	}
}

func TestRunBatchContinuesPastFailures(t *testing.T) {
	items := []Item{
		{ID: "a", Size: 10},
		{ID: "b", Size: 20},
		{ID: "c", Size: 40},
	}
	boom := errors.New("permission denied")

	res := RunBatch(context.Background(), items, func(ctx context.Context, item Item) error {
		if item.ID == "b" {
			return boom
		}
		return nil
	}, nil)

	if res.Attempted != 3 || res.Succeeded != 2 || res.Failed != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1", res.Attempted, res.Succeeded, res.Failed)
	}
	// Reclaimed bytes are exactly the sizes of the succeeded items.
	if res.BytesReclaimed != 50 {
		t.Errorf("BytesReclaimed = %d, want 50", res.BytesReclaimed)
	}
	if len(res.Outcomes) != 3 {
		t.Fatalf("outcomes = %d, want 3", len(res.Outcomes))
	}
	if res.Outcomes[1].Success() || !errors.Is(res.Outcomes[1].Err, boom) {
		t.Errorf("outcome for b = %+v, want the underlying failure", res.Outcomes[1])
	}
}

func TestRunBatchEmpty(t *testing.T) {
	res := RunBatch(context.Background(), nil, func(ctx context.Context, item Item) error {
		t.Fatal("remove must not be called for an empty batch")
		return nil
	}, nil)

	if res.Attempted != 0 || res.BytesReclaimed != 0 {
		t.Errorf("empty batch result = %+v", res)
	}
}

func TestRunBatchLogsOutcomes(t *testing.T) {
	var buf bytes.Buffer
	log := actionlog.New(&buf)

	items := []Item{{ID: "x", Size: 5}, {ID: "y", Size: 5}}
	RunBatch(context.Background(), items, func(ctx context.Context, item Item) error {
		if item.ID == "y" {
			return errors.New("busy")
		}
		return nil
	}, log)

	out := buf.String()
	if !strings.Contains(out, "removed: x") {
		t.Errorf("log missing success record: %q", out)
	}
	if !strings.Contains(out, "remove failed: y") {
		t.Errorf("log missing failure record: %q", out)
	}
}
