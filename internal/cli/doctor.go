package cli

import (
	"context"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/config"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/executor"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/sysadapter"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/ui"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose cleanup preconditions",
	Long: `Check which cleanup tools are installed, whether the package manager
lock is free, and whether removals can be elevated.

Examples:
  ucleaner doctor           # Run diagnostics`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	issues := 0

	ui.HeaderMsg("Running diagnostics...")

	// Privileges
	if err := executor.CheckPrivileges(true); err != nil {
		ui.WarningMsg("%v", err)
		issues++
	} else if executor.IsRoot() {
		ui.SuccessMsg("Running as root")
	} else {
		ui.SuccessMsg("sudo is available for elevated removals")
	}

	// Tool availability per step
	ui.HeaderMsg("Cleanup Tools")

	apt := sysadapter.NewAPT(exe)
	checks := []struct {
		steps string
		ok    bool
		name  string
	}{
		{"apt, kernels", apt.IsAvailable(), apt.DisplayName()},
		{"docker", sysadapter.NewDocker(exe).IsAvailable(), "Docker"},
		{"journal", sysadapter.NewJournal(exe).IsAvailable(), "journalctl"},
		{"snap", sysadapter.NewSnapd(exe).IsAvailable(), "snapd"},
		{"flatpak", sysadapter.NewFlatpak(exe).IsAvailable(), "Flatpak"},
	}
	for _, check := range checks {
		if check.ok {
			ui.SuccessMsg("%s is available (%s)", check.name, check.steps)
		} else {
			ui.MutedMsg("%s is not installed (%s skipped)", check.name, check.steps)
		}
	}

	// Package manager lock
	if apt.IsAvailable() {
		if apt.LockActive(ctx) {
			ui.ErrorMsg("dpkg/apt lock is held; package steps would fail")
			issues++
		} else {
			ui.SuccessMsg("dpkg/apt lock is free")
		}
	}

	// Docker daemon
	docker := sysadapter.NewDocker(exe)
	if docker.IsAvailable() {
		if err := docker.Ping(ctx); err != nil {
			ui.WarningMsg("Docker daemon not reachable: %v", err)
		} else {
			ui.SuccessMsg("Docker daemon is reachable")
		}
	}

	// Space measurement
	ui.HeaderMsg("Disk")
	acct := cleaner.NewAccountant(cfg.General.ReclaimPath)
	if sample, err := acct.Sample(); err != nil {
		ui.ErrorMsg("Cannot measure free space on %s: %v", cfg.General.ReclaimPath, err)
		issues++
	} else {
		ui.SuccessMsg("Free space on %s: %s", cfg.General.ReclaimPath, cleaner.FormatBytes(int64(sample.AvailableBytes)))
	}

	// Data locations
	ui.HeaderMsg("Configuration")
	ui.InfoMsg("Config file: %s", config.ConfigPath())
	ui.InfoMsg("History db:  %s", config.HistoryPath())
	ui.InfoMsg("Action log:  %s", config.ActionLogPath())

	// Summary
	ui.HeaderMsg("Summary")
	if issues == 0 {
		ui.SuccessMsg("No issues found. ucleaner is ready to use.")
	} else {
		ui.WarningMsg("Found %d issue(s). Some steps may not work correctly.", issues)
	}

	return nil
}
