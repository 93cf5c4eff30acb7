package cli

import (
	"context"
	"fmt"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/executor"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/sysadapter"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/ui"

	"github.com/spf13/cobra"
)

var aptAll bool

var aptCmd = &cobra.Command{
	Use:   "apt",
	Short: "Clean the apt cache and remove orphaned packages",
	Long: `Remove downloaded package archives from the apt cache and purge
packages that were installed as dependencies but are no longer needed.

Examples:
  ucleaner apt              # Clean outdated cache + autoremove
  ucleaner apt --all        # Drop the whole package cache`,
	RunE: runApt,
}

func init() {
	aptCmd.Flags().BoolVar(&aptAll, "all", false, "clean all cached archives, not just outdated ones")
}

func runApt(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	apt := sysadapter.NewAPT(exe)
	if !apt.IsAvailable() {
		ui.WarningMsg("apt-get not found, step is not applicable")
		return nil
	}
	if apt.LockActive(ctx) {
		return ErrLockHeld
	}
	if !exe.DryRun() {
		if err := executor.CheckPrivileges(true); err != nil {
			return err
		}
	}

	acct := cleaner.NewAccountant(cfg.General.ReclaimPath)
	before, _ := acct.Sample()

	// Estimate the cache on disk before asking anything.
	cacheCat := scan.Scan(cleaner.Descriptor{
		Class: "apt cache",
		Roots: []string{"/var/cache/apt/archives"},
		Mode:  cleaner.ModeDirAsItem,
	})
	cacheSize := cacheCat.TotalSize()
	ui.InfoMsg("Package cache: %s", cleaner.FormatBytes(cacheSize))

	orphans, err := apt.SimulateAutoremove(ctx)
	if err != nil {
		ui.WarningMsg("Could not simulate autoremove: %v", err)
	}
	if len(orphans) > 0 {
		ui.InfoMsg("Orphaned packages (%d):", len(orphans))
		for _, pkg := range orphans {
			ui.MutedMsg("  - %s", pkg)
		}
	} else {
		ui.MutedMsg("No orphaned packages")
	}

	question := fmt.Sprintf("Clean the apt cache and remove %d orphaned package(s)?", len(orphans))
	ok, err := confirmRemoval(question, cacheSize, false)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	var res cleaner.BatchResult

	res.Attempted++
	if err := apt.Clean(ctx, aptAll); err != nil {
		res.Failed++
		res.Outcomes = append(res.Outcomes, cleaner.Outcome{ID: "cache", Err: err})
		ui.ErrorMsg("Cache clean failed: %v", err)
	} else {
		res.Succeeded++
		res.BytesReclaimed += cacheSize
		res.Outcomes = append(res.Outcomes, cleaner.Outcome{ID: "cache"})
	}

	if len(orphans) > 0 {
		res.Attempted++
		if err := apt.Autoremove(ctx); err != nil {
			res.Failed++
			res.Outcomes = append(res.Outcomes, cleaner.Outcome{ID: "autoremove", Err: err})
			ui.ErrorMsg("Autoremove failed: %v", err)
		} else {
			res.Succeeded++
			res.Outcomes = append(res.Outcomes, cleaner.Outcome{ID: "autoremove"})
		}
	}

	return reportStep("apt", acct, before, res, nil)
}
