package cli

import (
	"context"
	"fmt"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/sysadapter"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/ui"

	"github.com/spf13/cobra"
)

var snapCmd = &cobra.Command{
	Use:   "snap",
	Short: "Remove disabled snap revisions",
	Long: `Snapd keeps old revisions of every installed snap on disk. This step
lists the disabled revisions and removes the ones you pick.

Examples:
  ucleaner snap             # Pick disabled revisions to remove`,
	RunE: runSnap,
}

func runSnap(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	snapd := sysadapter.NewSnapd(exe)
	if !snapd.IsAvailable() {
		ui.WarningMsg("snap not found, step is not applicable")
		return nil
	}

	acct := cleaner.NewAccountant(cfg.General.ReclaimPath)
	before, _ := acct.Sample()

	cat := cleaner.NewCatalog("disabled snap revisions")
	err := ui.WithSpinner("Listing snap revisions", func() error {
		revisions, err := snapd.DisabledRevisions(ctx)
		if err != nil {
			return err
		}
		for _, item := range revisions {
			cat.Add(item)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to list snap revisions: %w", err)
	}

	if cat.Empty() {
		ui.SuccessMsg("No disabled snap revisions found")
		return nil
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
	question := fmt.Sprintf("Remove %d snap revision(s) (%s)?", len(items), cleaner.FormatBytes(size))
	ok, err := confirmRemoval(question, size, false)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	res := cleaner.RunBatch(ctx, items, func(ctx context.Context, item cleaner.Item) error {
		return snapd.RemoveRevision(ctx, item.ID)
	}, alog)

	return reportStep("snap", acct, before, res, nil)
}
