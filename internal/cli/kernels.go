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

var kernelsCmd = &cobra.Command{
	Use:   "kernels",
	Short: "Remove old kernel versions",
	Long: `Remove old kernel package families. The running kernel and the most
recent non-running kernel are always kept; everything older is offered
for selective removal together with its headers and modules packages.

Examples:
  ucleaner kernels          # Pick old kernels to purge
  ucleaner kernels -n       # Preview which kernels would go`,
	RunE: runKernels,
}

func runKernels(cmd *cobra.Command, args []string) error {
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

	running, err := apt.RunningKernel(ctx)
	if err != nil {
		// Fail closed: without a trusted running version nothing is
		// ever a candidate.
		return fmt.Errorf("%w: %v", cleaner.ErrRunningKernelUnknown, err)
	}
	ui.InfoMsg("Running kernel: %s", running)

	var entries []cleaner.KernelEntry
	err = ui.WithSpinner("Listing installed kernels", func() error {
		var lerr error
		entries, lerr = apt.InstalledKernels(ctx)
		return lerr
	})
	if err != nil {
		return fmt.Errorf("failed to list installed kernels: %w", err)
	}

	plan, err := cleaner.PlanRetention(entries, running)
	if err != nil {
		return err
	}
	if len(plan.Candidates) == 0 {
		ui.SuccessMsg("Retention policy keeps all %d installed kernel(s)", len(entries))
		return nil
	}

	acct := cleaner.NewAccountant(cfg.General.ReclaimPath)
	before, _ := acct.Sample()

	byVersion := make(map[string]cleaner.KernelEntry, len(plan.Candidates))
	cat := cleaner.NewCatalog("old kernels")
	for _, entry := range plan.Candidates {
		byVersion[entry.Version.Raw] = entry
		cat.Add(cleaner.Item{
			ID:        entry.Version.Raw,
			Label:     fmt.Sprintf("%s (+%d related packages)", entry.Package, len(entry.Related)),
			Size:      entry.Size,
			Tags:      []string{cleaner.TagCritical},
			Removable: true,
		})
	}

	items, err := chooseFromCatalog(cat)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		ui.MutedMsg("Nothing selected, skipping")
		return nil
	}

	size := itemsSize(items)
	question := fmt.Sprintf("Purge %d old kernel version(s) (%s)?", len(items), cleaner.FormatBytes(size))
	ok, err := confirmRemoval(question, size, false)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	res := purgeKernels(ctx, apt, items, byVersion)

	return reportStep("kernels", acct, before, res, nil)
}

// purgeKernels removes the picked kernel families and then runs the
// best-effort dependency cleanup pass. The cleanup runs regardless of
// per-item outcomes: even an all-failed batch can leave half-configured
// packages for apt to sweep up.
func purgeKernels(ctx context.Context, apt *sysadapter.APT, items []cleaner.Item, byVersion map[string]cleaner.KernelEntry) cleaner.BatchResult {
	res := cleaner.RunBatch(ctx, items, func(ctx context.Context, item cleaner.Item) error {
		return apt.PurgeKernel(ctx, byVersion[item.ID])
	}, alog)

	if res.Attempted > 0 {
		if err := apt.Autoremove(ctx); err != nil {
			ui.WarningMsg("Dependency cleanup failed: %v", err)
		}
	}
	return res
}
