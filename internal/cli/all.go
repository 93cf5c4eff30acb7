package cli

import (
	"errors"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/history"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/ui"

	"github.com/spf13/cobra"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every cleanup step in sequence",
	Long: `Run every applicable cleanup step one after another. Steps whose
tool is not installed are skipped, and a failing step does not stop
the remaining ones. Each step still asks its own confirmation unless
--yes is given.

Examples:
  ucleaner all              # Walk through every step interactively
  ucleaner all -y -n        # Preview a full unattended run`,
	RunE: runAll,
}

func runAll(cmd *cobra.Command, args []string) error {
	if !cfg.General.AutoConfirm {
		// The full run gets the amplified gate up front regardless of
		// individual step sizes.
		threshold := cfg.LargeOpThreshold()
		approved, err := cleaner.ApproveLarge(
			"Run every cleanup step?",
			"A full run can remove a large amount of data across the whole system. Continue?",
			threshold, threshold, askGate)
		if err != nil {
			return err
		}
		if !approved {
			return ErrAborted
		}
	}

	steps := []struct {
		name string
		run  func(*cobra.Command, []string) error
	}{
		{"apt", runApt},
		{"kernels", runKernels},
		{"docker", runDocker},
		{"journal", runJournal},
		{"snap", runSnap},
		{"flatpak", runFlatpak},
		{"browser", browserCmd.RunE},
		{"thumbnails", thumbnailsCmd.RunE},
		{"trash", trashCmd.RunE},
		{"coredumps", coredumpsCmd.RunE},
		{"appimages", appimagesCmd.RunE},
		{"tmpfiles", tmpfilesCmd.RunE},
	}

	failed := 0
	for _, step := range steps {
		ui.HeaderMsg("Step: %s", step.name)

		err := step.run(cmd, args)
		switch {
		case err == nil:
		case errors.Is(err, ErrAborted):
			ui.MutedMsg("Step %s skipped", step.name)
		case errors.Is(err, ErrLockHeld):
			ui.WarningMsg("Step %s skipped: %v", step.name, err)
		default:
			failed++
			ui.ErrorMsg("Step %s failed: %v", step.name, err)
			alog.Printf("step %s failed: %v", step.name, err)
		}
	}

	if failed > 0 {
		ui.WarningMsg("Finished with %d failed step(s)", failed)
	} else {
		ui.SuccessMsg("All steps finished")
	}

	if store, err := history.Open(); err == nil {
		if total, err := store.TotalReclaimed(); err == nil {
			ui.InfoMsg("Total reclaimed to date: %s", cleaner.FormatBytes(total))
		}
		store.Close()
	}

	return nil
}
