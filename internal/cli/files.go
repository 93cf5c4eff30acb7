package cli

import (
	"context"
	"time"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"

	"github.com/spf13/cobra"
)

// The filesystem-backed steps share one driver (runScanStep); each
// command only supplies its resource-class descriptor.

var browserCmd = &cobra.Command{
	Use:   "browser",
	Short: "Remove browser cache directories",
	Long: `Remove the on-disk caches of Firefox, Chromium and Chrome. Browsers
rebuild these automatically, at the cost of slower first page loads.

Examples:
  ucleaner browser          # Pick browser caches to remove`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScanStep(context.Background(), "browser", "browser caches", cleaner.Descriptor{
			Class: "browser caches",
			Roots: stepRoots("browser",
				"~/.cache/mozilla",
				"~/.cache/chromium",
				"~/.cache/google-chrome",
			),
			Mode: cleaner.ModeDirAsItem,
		}, false)
	},
}

var thumbnailsCmd = &cobra.Command{
	Use:   "thumbnails",
	Short: "Remove the thumbnail cache",
	Long: `Remove cached image thumbnails. The desktop regenerates them on
demand.

Examples:
  ucleaner thumbnails       # Remove ~/.cache/thumbnails`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScanStep(context.Background(), "thumbnails", "thumbnail cache", cleaner.Descriptor{
			Class: "thumbnail cache",
			Roots: stepRoots("thumbnails", "~/.cache/thumbnails"),
			Mode:  cleaner.ModeDirAsItem,
		}, false)
	},
}

var trashCmd = &cobra.Command{
	Use:   "trash",
	Short: "Empty the trash",
	Long: `Remove everything in the user trash. Unlike the other cache steps
this is destructive: trashed files cannot be restored afterwards.

Examples:
  ucleaner trash            # Empty ~/.local/share/Trash`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScanStep(context.Background(), "trash", "trash", cleaner.Descriptor{
			Class: "trash",
			Roots: stepRoots("trash", "~/.local/share/Trash/files"),
			Mode:  cleaner.ModeEntries,
		}, true)
	},
}

var coredumpsCmd = &cobra.Command{
	Use:   "coredumps",
	Short: "Remove crash dumps and core files",
	Long: `Remove systemd coredumps and apport crash reports.

Examples:
  ucleaner coredumps        # Remove collected crash dumps`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScanStep(context.Background(), "coredumps", "crash dumps", cleaner.Descriptor{
			Class: "crash dumps",
			Roots: stepRoots("coredumps",
				"/var/lib/systemd/coredump",
				"/var/crash",
			),
			Mode: cleaner.ModeEntries,
		}, false)
	},
}

var appimagesCmd = &cobra.Command{
	Use:   "appimages",
	Short: "Find and remove AppImage files",
	Long: `Find *.AppImage files under the configured roots and remove the ones
you pick. AppImages are standalone executables, so each removal
uninstalls that application.

Examples:
  ucleaner appimages        # Pick AppImages to remove`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScanStep(context.Background(), "appimages", "AppImage files", cleaner.Descriptor{
			Class: "AppImage files",
			Roots: stepRoots("appimages",
				"~/Downloads",
				"~/Applications",
				"~/.local/bin",
			),
			Mode:    cleaner.ModeGlob,
			Pattern: "*.AppImage",
		}, true)
	},
}

var tmpfilesCmd = &cobra.Command{
	Use:   "tmpfiles",
	Short: "Remove stale temporary files",
	Long: `Remove entries under /tmp and /var/tmp that have not been touched
for the configured number of days.

Examples:
  ucleaner tmpfiles         # Remove stale temp entries`,
	RunE: func(cmd *cobra.Command, args []string) error {
		maxAge := time.Duration(cfg.Retention.TmpFileAgeDays) * 24 * time.Hour
		return runScanStep(context.Background(), "tmpfiles", "temporary files", cleaner.Descriptor{
			Class:  "temporary files",
			Roots:  stepRoots("tmpfiles", "/tmp", "/var/tmp"),
			Mode:   cleaner.ModeEntries,
			MaxAge: maxAge,
		}, false)
	},
}
