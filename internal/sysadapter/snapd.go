package sysadapter

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
)

// snapDir holds the revision blobs snapd keeps on disk.
const snapDir = "/var/lib/snapd/snaps"

// Snapd wraps the snap CLI for the disabled-revision step.
type Snapd struct {
	*Base
}

// NewSnapd creates the snapd adapter.
func NewSnapd(run Runner) *Snapd {
	return &Snapd{Base: NewBase("snap", "snapd", "snap", run)}
}

// DisabledRevisions lists old snap revisions kept after refreshes. Sizes
// come from the revision blob under /var/lib/snapd/snaps when readable.
func (s *Snapd) DisabledRevisions(ctx context.Context) ([]cleaner.Item, error) {
	out, err := s.run.Output(ctx, s.Binary(), "list", "--all")
	if err != nil {
		return nil, fmt.Errorf("failed to list snap revisions: %w", err)
	}
	return parseDisabledSnaps(out), nil
}

// RemoveRevision drops one disabled revision. Item IDs are
// "name/revision" as produced by DisabledRevisions.
func (s *Snapd) RemoveRevision(ctx context.Context, id string) error {
	name, rev, ok := strings.Cut(id, "/")
	if !ok {
		return fmt.Errorf("malformed snap revision id %q", id)
	}
	return s.run.RunSudo(ctx, s.Binary(), "remove", name, "--revision="+rev)
}

// parseDisabledSnaps parses `snap list --all` rows whose Notes column
// contains "disabled". Columns: Name Version Rev Tracking Publisher Notes.
func parseDisabledSnaps(output string) []cleaner.Item {
	var items []cleaner.Item

	scanner := bufio.NewScanner(strings.NewReader(output))
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first { // header row
			first = false
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 6 || !strings.Contains(fields[5], "disabled") {
			continue
		}

		name, rev := fields[0], fields[2]
		item := cleaner.Item{
			ID:        name + "/" + rev,
			Label:     fmt.Sprintf("snap %s (revision %s)", name, rev),
			Removable: true,
		}
		if info, err := os.Stat(filepath.Join(snapDir, fmt.Sprintf("%s_%s.snap", name, rev))); err == nil {
			item.Size = info.Size()
		}
		items = append(items, item)
	}
	return items
}
