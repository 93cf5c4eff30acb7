// Package cli implements the command-line interface for ucleaner.
package cli

import (
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/actionlog"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/config"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/executor"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/ui"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile     string
	dryRun      bool
	yes         bool
	verbose     bool
	noColor     bool
	interactive bool

	// Global state
	cfg  *config.Config
	exe  *executor.Executor
	alog *actionlog.Log
	scan *cleaner.Scanner
)

// Build metadata - set at build time via ldflags
var (
	Version   = "0.1.0-dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ucleaner",
	Short: "Selective disk space reclamation for Ubuntu hosts",
	Long: `ucleaner scans the usual disk space sinks on an Ubuntu system,
shows what it found, and removes only what you confirm. Every removal
is gated behind an explicit prompt and recorded in an action log.

Cleanup steps:
  apt, kernels, docker, journal, snap, flatpak, browser, thumbnails,
  trash, coredumps, appimages, tmpfiles

Examples:
  ucleaner apt                  # Clean the apt cache and orphans
  ucleaner kernels              # Remove old kernels (keeps current + 1)
  ucleaner docker -n            # Preview docker cleanup without removing
  ucleaner all -y               # Run every step without prompting`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeApp()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would happen without executing")
	rootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "assume yes to all prompts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&interactive, "interactive", "i", false, "pick items in an interactive list instead of typing indices")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(aptCmd)
	rootCmd.AddCommand(kernelsCmd)
	rootCmd.AddCommand(dockerCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(snapCmd)
	rootCmd.AddCommand(flatpakCmd)
	rootCmd.AddCommand(browserCmd)
	rootCmd.AddCommand(thumbnailsCmd)
	rootCmd.AddCommand(trashCmd)
	rootCmd.AddCommand(coredumpsCmd)
	rootCmd.AddCommand(appimagesCmd)
	rootCmd.AddCommand(tmpfilesCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(logCmd)
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		ui.ErrorMsg("%v", err)
	}
	if alog != nil {
		alog.Close()
	}
	return err
}

// initializeApp sets up the application state.
func initializeApp() error {
	// Load configuration
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	// Apply global flag overrides
	if yes {
		cfg.General.AutoConfirm = true
	}
	if dryRun {
		cfg.General.DryRun = true
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.Color = false
	}

	// Initialize UI
	ui.Init(cfg.ShouldUseColor(), cfg.Output.Unicode)

	// Open the action log; fall back to a discarding sink so a broken
	// data dir never blocks cleanup.
	if err := config.EnsureDataDir(); err == nil {
		alog, err = actionlog.Open(config.ActionLogPath())
		if err != nil {
			alog = nil
		}
	}
	if alog == nil {
		ui.WarningMsg("Action log unavailable; actions will not be recorded")
		alog = actionlog.Discard()
	}

	exe = executor.New(cfg.General.DryRun, cfg.Output.Verbose, alog)
	scan = cleaner.NewScanner(alog)

	return nil
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print ucleaner version",
	Run: func(cmd *cobra.Command, args []string) {
		ui.InfoMsg("ucleaner version %s", Version)
		if Commit != "unknown" {
			ui.MutedMsg("  Commit: %s", Commit)
		}
		if BuildTime != "unknown" {
			ui.MutedMsg("  Built:  %s", BuildTime)
		}
	},
}
