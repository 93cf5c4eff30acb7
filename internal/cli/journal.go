package cli

import (
	"context"
	"fmt"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/sysadapter"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/ui"

	"github.com/spf13/cobra"
)

var journalWindow string

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Vacuum the systemd journal",
	Long: `Show how much disk the systemd journal occupies and vacuum entries
older than the retention window.

Examples:
  ucleaner journal              # Vacuum with the configured window
  ucleaner journal -w 3d        # Keep only the last three days`,
	RunE: runJournal,
}

func init() {
	journalCmd.Flags().StringVarP(&journalWindow, "window", "w", "", "retention window passed to journalctl (default from config)")
}

func runJournal(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	journal := sysadapter.NewJournal(exe)
	if !journal.IsAvailable() {
		ui.WarningMsg("journalctl not found, step is not applicable")
		return nil
	}

	window := journalWindow
	if window == "" {
		window = cfg.Retention.JournalWindow
	}

	acct := cleaner.NewAccountant(cfg.General.ReclaimPath)
	before, _ := acct.Sample()

	usage, err := journal.DiskUsage(ctx)
	if err != nil {
		return fmt.Errorf("failed to read journal usage: %w", err)
	}
	ui.InfoMsg("Journal occupies %s", cleaner.FormatBytes(usage))

	question := fmt.Sprintf("Vacuum journal entries older than %s?", window)
	ok, err := confirmRemoval(question, usage, false)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	var res cleaner.BatchResult
	res.Attempted = 1
	if err := journal.Vacuum(ctx, window); err != nil {
		res.Failed = 1
		res.Outcomes = append(res.Outcomes, cleaner.Outcome{ID: "journal", Err: err})
		ui.ErrorMsg("Journal vacuum failed: %v", err)
	} else {
		res.Succeeded = 1
		res.Outcomes = append(res.Outcomes, cleaner.Outcome{ID: "journal"})
	}

	return reportStep("journal", acct, before, res, nil)
}
