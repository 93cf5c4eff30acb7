package sysadapter

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Journal wraps journalctl for the systemd journal step.
type Journal struct {
	*Base
}

// NewJournal creates the journal adapter.
func NewJournal(run Runner) *Journal {
	return &Journal{Base: NewBase("journal", "systemd journal", "journalctl", run)}
}

// DiskUsage returns the bytes occupied by archived and active journals.
// Combined output is read because some journalctl versions print the
// usage line to stderr.
func (j *Journal) DiskUsage(ctx context.Context) (int64, error) {
	out, err := j.run.OutputCombined(ctx, j.Binary(), "--disk-usage")
	if err != nil {
		return 0, fmt.Errorf("failed to query journal disk usage: %w", err)
	}

	size, ok := parseJournalUsage(out)
	if !ok {
		return 0, fmt.Errorf("unrecognized journal usage output: %q", strings.TrimSpace(out))
	}
	return size, nil
}

// Vacuum drops journal entries older than the retention window
// (journalctl --vacuum-time syntax, e.g. "7d").
func (j *Journal) Vacuum(ctx context.Context, window string) error {
	return j.run.RunSudo(ctx, j.Binary(), "--vacuum-time="+window)
}

var journalSizeRe = regexp.MustCompile(`take up ([0-9.]+)([KMGT]?)i?B? `)

// parseJournalUsage extracts the size from lines like "Archived and
// active journals take up 1.6G in the file system."
func parseJournalUsage(output string) (int64, bool) {
	m := journalSizeRe.FindStringSubmatch(output)
	if m == nil {
		return 0, false
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	factor := float64(1)
	switch m[2] {
	case "K":
		factor = 1 << 10
	case "M":
		factor = 1 << 20
	case "G":
		factor = 1 << 30
	case "T":
		factor = 1 << 40
	}
	return int64(value * factor), true
}
