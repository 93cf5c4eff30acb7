package sysadapter

import (
	"context"
	"testing"
)

const snapListOutput = `Name      Version         Rev    Tracking       Publisher   Notes
core20    20231123        2105   latest/stable  canonical✓  base
core20    20231030        2015   latest/stable  canonical✓  disabled
firefox   120.0.1-1       3416   latest/stable  mozilla✓    -
firefox   119.0-1         3358   latest/stable  mozilla✓    disabled
`

func TestParseDisabledSnaps(t *testing.T) {
	items := parseDisabledSnaps(snapListOutput)

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(items), items)
	}
	if items[0].ID != "core20/2015" {
		t.Errorf("items[0].ID = %q, want core20/2015", items[0].ID)
	}
	if items[1].ID != "firefox/3358" {
		t.Errorf("items[1].ID = %q, want firefox/3358", items[1].ID)
	}
	for _, item := range items {
		if !item.Removable {
			t.Errorf("disabled revision %s should be removable", item.ID)
		}
	}
}

func TestDisabledRevisions(t *testing.T) {
	run := newFakeRunner()
	run.on("snap list --all", snapListOutput)

	s := NewSnapd(run)
	items, err := s.DisabledRevisions(context.Background())
	if err != nil {
		t.Fatalf("DisabledRevisions() error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
}

func TestRemoveRevision(t *testing.T) {
	run := newFakeRunner()
	run.on("snap remove core20 --revision=2015", "")

	s := NewSnapd(run)
	if err := s.RemoveRevision(context.Background(), "core20/2015"); err != nil {
		t.Fatalf("RemoveRevision() error: %v", err)
	}
	if !run.called("sudo snap remove core20 --revision=2015") {
		t.Errorf("remove not executed: %v", run.calls)
	}
}

func TestRemoveRevisionMalformedID(t *testing.T) {
	s := NewSnapd(newFakeRunner())
	if err := s.RemoveRevision(context.Background(), "no-revision"); err == nil {
		t.Error("RemoveRevision() should reject IDs without a revision")
	}
}
