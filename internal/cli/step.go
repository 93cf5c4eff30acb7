package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/history"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/tui"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/ui"
)

// askGate is the interactive Prompter wired into the confirmation gates.
func askGate(question string, warning bool) (string, error) {
	if warning {
		ui.WarningMsg("This operation exceeds the configured size threshold.")
	}
	ok, err := ui.Confirm(question, false)
	if err != nil {
		return "", err
	}
	if ok {
		return "yes", nil
	}
	return "", nil
}

// confirmRemoval runs the confirmation gate for a pending removal,
// escalating to a second gate when the aggregate size crosses the
// configured threshold. Destructive operations always get the second
// gate: their items cannot be rebuilt or reinstalled afterwards.
func confirmRemoval(question string, size int64, destructive bool) (bool, error) {
	if cfg.General.AutoConfirm {
		alog.Printf("gate auto-approved: %s", question)
		return true, nil
	}

	threshold := cfg.LargeOpThreshold()
	if destructive && size > 0 && (threshold <= 0 || size < threshold) {
		threshold = size
	}

	amplified := fmt.Sprintf("This will remove %s of data. Are you sure?", cleaner.FormatBytes(size))
	if destructive {
		amplified = fmt.Sprintf("This permanently removes %s of data that cannot be restored. Are you sure?", cleaner.FormatBytes(size))
	}
	approved, err := cleaner.ApproveLarge(question, amplified, size, threshold, askGate)
	if err != nil {
		return false, err
	}
	if approved {
		alog.Printf("gate approved: %s", question)
	} else {
		alog.Printf("gate rejected: %s", question)
	}
	return approved, nil
}

// chooseFromCatalog presents a catalog and returns the items the user
// picked. With --interactive the bubbletea picker is used; otherwise the
// catalog is printed and a comma-separated index line is parsed. With
// --yes everything removable is selected.
func chooseFromCatalog(cat *cleaner.Catalog) ([]cleaner.Item, error) {
	if cat.Empty() {
		return nil, nil
	}

	if cfg.General.AutoConfirm {
		return cat.Pick(cleaner.SelectAll(cat.Len())), nil
	}

	if interactive {
		sel, err := tui.Pick(cat)
		if err != nil {
			return nil, fmt.Errorf("interactive selection failed: %w", err)
		}
		return cat.Pick(sel), nil
	}

	ui.PrintCatalog(cat)
	line, err := ui.ReadLine("Select items to remove (e.g. 1,3,5), 'all', or press Enter to skip:")
	if err != nil {
		return nil, err
	}
	if line == "" {
		return nil, nil
	}

	var sel cleaner.Selection
	if strings.EqualFold(line, "all") {
		sel = cleaner.SelectAll(cat.Len())
	} else {
		sel = cleaner.ParseSelection(line, cat.Len())
		ui.PrintRejected(sel.Rejected)
		for _, tok := range sel.Rejected {
			alog.Printf("selection rejected: %q", tok)
		}
	}
	return cat.Pick(sel), nil
}

// itemsSize sums the pre-removal sizes of a picked item slice.
func itemsSize(items []cleaner.Item) int64 {
	var total int64
	for _, item := range items {
		total += item.Size
	}
	return total
}

// removePath is the RemoveFunc for filesystem-backed steps.
func removePath(ctx context.Context, item cleaner.Item) error {
	if exe.DryRun() {
		ui.MutedMsg("[dry-run] Would remove %s", item.ID)
		return nil
	}
	return os.RemoveAll(item.ID)
}

// reportStep prints the batch summary and the measured space delta, and
// records the run in history. The original runErr is passed through so
// callers can keep their error flow.
func reportStep(step string, acct *cleaner.Accountant, before cleaner.SpaceSample, res cleaner.BatchResult, runErr error) error {
	after, sampleErr := acct.Sample()

	var delta int64
	if sampleErr == nil {
		delta = cleaner.Delta(before, after)
	} else {
		ui.WarningMsg("Could not measure free space: %v", sampleErr)
	}

	ui.PrintBatchResult(res)
	ui.InfoMsg("%s", cleaner.DescribeDelta(delta))

	entry := history.NewEntry(step)
	entry.RecordBatch(res)
	entry.SpaceDelta = delta
	if runErr != nil {
		entry.MarkFailed(runErr)
	}
	if store, err := history.Open(); err == nil {
		store.Record(entry)
		store.Close()
	}
	alog.Printf("step %s finished: %s", step, entry.Summary())

	return runErr
}

// runScanStep is the shared driver for the filesystem-backed steps:
// scan the descriptor, let the user pick, gate, remove, report.
func runScanStep(ctx context.Context, step, title string, desc cleaner.Descriptor, destructive bool) error {
	acct := cleaner.NewAccountant(cfg.General.ReclaimPath)
	before, _ := acct.Sample()

	var cat *cleaner.Catalog
	ui.WithSpinner("Scanning "+title, func() error {
		cat = scan.Scan(desc)
		return nil
	})

	if cat.Empty() {
		ui.SuccessMsg("Nothing to clean up for %s", title)
		return nil
	}
	ui.InfoMsg("Found %d item(s), %s total", cat.Len(), cleaner.FormatBytes(cat.TotalSize()))

	items, err := chooseFromCatalog(cat)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		ui.MutedMsg("Nothing selected, skipping")
		return nil
	}

	size := itemsSize(items)
	question := fmt.Sprintf("Remove %d item(s) (%s)?", len(items), cleaner.FormatBytes(size))
	ok, err := confirmRemoval(question, size, destructive)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	res := cleaner.RunBatch(ctx, items, removePath, alog)
	return reportStep(step, acct, before, res, nil)
}

// stepRoots returns the scan roots for a step, preferring the per-step
// config override and expanding a leading ~/ against the home dir.
func stepRoots(step string, defaults ...string) []string {
	roots := cfg.StepRoots(step)
	if len(roots) == 0 {
		roots = defaults
	}

	home, err := os.UserHomeDir()
	expanded := make([]string, 0, len(roots))
	for _, root := range roots {
		if strings.HasPrefix(root, "~/") {
			if err != nil {
				continue
			}
			root = filepath.Join(home, root[2:])
		}
		expanded = append(expanded, root)
	}
	return expanded
}
