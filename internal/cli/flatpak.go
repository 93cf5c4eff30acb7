package cli

import (
	"context"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/sysadapter"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/ui"

	"github.com/spf13/cobra"
)

var flatpakCmd = &cobra.Command{
	Use:   "flatpak",
	Short: "Remove unused flatpak runtimes",
	Long: `Uninstall flatpak runtimes that no installed application references.

Examples:
  ucleaner flatpak          # Remove unused runtimes`,
	RunE: runFlatpak,
}

func runFlatpak(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	flatpak := sysadapter.NewFlatpak(exe)
	if !flatpak.IsAvailable() {
		ui.WarningMsg("flatpak not found, step is not applicable")
		return nil
	}

	acct := cleaner.NewAccountant(cfg.General.ReclaimPath)
	before, _ := acct.Sample()

	runtimes, err := flatpak.InstalledRuntimes(ctx)
	if err != nil {
		ui.WarningMsg("Could not list flatpak runtimes: %v", err)
	} else {
		ui.InfoMsg("Installed runtimes: %d", len(runtimes))
	}

	ok, err := confirmRemoval("Remove unused flatpak runtimes?", 0, false)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	var res cleaner.BatchResult
	res.Attempted = 1
	if err := flatpak.RemoveUnused(ctx); err != nil {
		res.Failed = 1
		res.Outcomes = append(res.Outcomes, cleaner.Outcome{ID: "flatpak", Err: err})
		ui.ErrorMsg("Flatpak cleanup failed: %v", err)
	} else {
		res.Succeeded = 1
		res.Outcomes = append(res.Outcomes, cleaner.Outcome{ID: "flatpak"})
	}

	return reportStep("flatpak", acct, before, res, nil)
}
