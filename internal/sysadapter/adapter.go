// Package sysadapter isolates the external cleanup tools (apt, docker,
// journalctl, snap, flatpak) behind narrow adapters. All text-output
// scraping lives here; the reclamation core never sees a tool's output
// format.
package sysadapter

import (
	"context"
	"errors"
	"os/exec"
)

// ErrToolUnavailable is returned when an adapter's binary is not
// installed. The dependent cleanup step degrades to "not applicable".
var ErrToolUnavailable = errors.New("required tool is not installed")

// ErrDaemonUnreachable is returned when a tool is installed but its
// daemon does not answer. A recoverable condition, not fatal.
var ErrDaemonUnreachable = errors.New("service daemon is not reachable")

// Runner abstracts command execution so adapter parsing can be tested
// against canned output. *executor.Executor is the production Runner.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
	RunSudo(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) (string, error)
	OutputQuiet(ctx context.Context, name string, args ...string) (string, error)
	OutputSudo(ctx context.Context, name string, args ...string) (string, error)
	OutputCombined(ctx context.Context, name string, args ...string) (string, error)
}

// Base provides the common adapter plumbing.
type Base struct {
	name        string
	displayName string
	binary      string
	run         Runner
}

// NewBase creates a Base for one external tool.
func NewBase(name, displayName, binary string, run Runner) *Base {
	return &Base{
		name:        name,
		displayName: displayName,
		binary:      binary,
		run:         run,
	}
}

// Name returns the short identifier for this adapter.
func (b *Base) Name() string {
	return b.name
}

// DisplayName returns the human-readable tool name.
func (b *Base) DisplayName() string {
	return b.displayName
}

// Binary returns the tool's primary binary name.
func (b *Base) Binary() string {
	return b.binary
}

// IsAvailable returns true if the tool is installed.
func (b *Base) IsAvailable() bool {
	_, err := exec.LookPath(b.binary)
	return err == nil
}

// Runner returns the command runner.
func (b *Base) Runner() Runner {
	return b.run
}
