package cli

import (
	"fmt"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/history"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/ui"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past cleanup runs",
	Long: `Display the recorded cleanup runs with their per-step counts and the
space reclaimed.

Examples:
  ucleaner history          # Show recent runs
  ucleaner history -l 20    # Show last 20 runs
  ucleaner history clear    # Drop all recorded runs`,
	RunE: runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the run history",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 10, "number of entries to show")
	historyCmd.AddCommand(historyClearCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.Open()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	entries, err := store.List(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		ui.MutedMsg("No history entries found")
		return nil
	}

	ui.HeaderMsg("Cleanup History")

	for i, entry := range entries {
		status := ui.Green("success")
		if !entry.Success {
			status = ui.Red("failed")
		}

		fmt.Printf("%2d. %s %s %d/%d removed, %s freed (%s)\n",
			i+1,
			ui.Muted.Sprint(entry.FormatTime()),
			ui.Bold(entry.Step),
			entry.Succeeded,
			entry.Attempted,
			cleaner.FormatBytes(entry.BytesReclaimed),
			status,
		)

		if entry.Error != "" {
			ui.MutedMsg("    Error: %s", entry.Error)
		}
	}

	total, _ := store.Count()
	reclaimed, _ := store.TotalReclaimed()
	ui.MutedMsg("\nShowing %d of %d runs, %s reclaimed in total",
		len(entries), total, cleaner.FormatBytes(reclaimed))

	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	if !cfg.General.AutoConfirm {
		ok, err := ui.Confirm("Clear all recorded cleanup runs?", false)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	store, err := history.Open()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	ui.SuccessMsg("History cleared")
	return nil
}
