package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/sysadapter"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/ui"

	"github.com/spf13/cobra"
)

var dockerBuildCache bool

var dockerCmd = &cobra.Command{
	Use:   "docker",
	Short: "Remove dangling docker images, stopped containers and unused volumes",
	Long: `Catalog reclaimable docker resources and remove the ones you pick:
dangling images, exited containers and volumes no container references.

Examples:
  ucleaner docker                  # Pick docker resources to remove
  ucleaner docker --build-cache    # Also prune the builder cache`,
	RunE: runDocker,
}

func init() {
	dockerCmd.Flags().BoolVar(&dockerBuildCache, "build-cache", false, "also prune the docker build cache")
}

func runDocker(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	docker := sysadapter.NewDocker(exe)
	if !docker.IsAvailable() {
		ui.WarningMsg("docker not found, step is not applicable")
		return nil
	}
	if err := docker.Ping(ctx); err != nil {
		if errors.Is(err, sysadapter.ErrDaemonUnreachable) {
			ui.WarningMsg("Docker daemon is not reachable, skipping step")
			alog.Printf("step docker skipped: daemon unreachable")
			return nil
		}
		return err
	}

	acct := cleaner.NewAccountant(cfg.General.ReclaimPath)
	before, _ := acct.Sample()

	cat := cleaner.NewCatalog("docker resources")
	err := ui.WithSpinner("Scanning docker resources", func() error {
		images, err := docker.DanglingImages(ctx)
		if err != nil {
			return err
		}
		addTagged(cat, images, "image")

		containers, err := docker.StoppedContainers(ctx)
		if err != nil {
			return err
		}
		addTagged(cat, containers, "container")

		volumes, err := docker.UnusedVolumes(ctx)
		if err != nil {
			return err
		}
		addTagged(cat, volumes, "volume")
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to catalog docker resources: %w", err)
	}

	if cat.Empty() && !dockerBuildCache {
		ui.SuccessMsg("No reclaimable docker resources found")
		return nil
	}

	var items []cleaner.Item
	if !cat.Empty() {
		items, err = chooseFromCatalog(cat)
		if err != nil {
			return err
		}
	}
	if len(items) == 0 && !dockerBuildCache {
		ui.MutedMsg("Nothing selected, skipping")
		return nil
	}

	size := itemsSize(items)
	question := fmt.Sprintf("Remove %d docker resource(s) (%s)?", len(items), cleaner.FormatBytes(size))
	if dockerBuildCache {
		question = fmt.Sprintf("Remove %d docker resource(s) (%s) and prune the build cache?", len(items), cleaner.FormatBytes(size))
	}
	ok, err := confirmRemoval(question, size, false)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	res := cleaner.RunBatch(ctx, items, func(ctx context.Context, item cleaner.Item) error {
		switch {
		case item.HasTag("container"):
			return docker.RemoveContainer(ctx, item.ID)
		case item.HasTag("volume"):
			return docker.RemoveVolume(ctx, item.ID)
		default:
			return docker.RemoveImage(ctx, item.ID)
		}
	}, alog)

	if dockerBuildCache {
		if err := docker.PruneBuildCache(ctx); err != nil {
			ui.ErrorMsg("Build cache prune failed: %v", err)
		} else {
			ui.SuccessMsg("Build cache pruned")
		}
	}

	return reportStep("docker", acct, before, res, nil)
}

// addTagged adds adapter items to the catalog with their resource kind
// as a tag so the remover can dispatch on it.
func addTagged(cat *cleaner.Catalog, items []cleaner.Item, kind string) {
	for _, item := range items {
		item.Tags = append(item.Tags, kind)
		cat.Add(item)
	}
}
