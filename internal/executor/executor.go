// Package executor handles external command execution with privilege
// escalation support. Every cleanup adapter funnels its tool invocations
// through one Executor so dry-run mode and action logging apply uniformly.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/actionlog"
)

// Executor runs external commands with optional sudo elevation.
type Executor struct {
	dryRun  bool
	verbose bool
	log     *actionlog.Log
}

// New creates a new Executor with the given options. Commands run through
// it are recorded in log; pass actionlog.Discard() to disable.
func New(dryRun, verbose bool, log *actionlog.Log) *Executor {
	if log == nil {
		log = actionlog.Discard()
	}
	return &Executor{
		dryRun:  dryRun,
		verbose: verbose,
		log:     log,
	}
}

// SetDryRun enables or disables dry-run mode.
func (e *Executor) SetDryRun(dryRun bool) {
	e.dryRun = dryRun
}

// DryRun reports whether dry-run mode is active.
func (e *Executor) DryRun() bool {
	return e.dryRun
}

// Run executes a mutating command without sudo, streaming output to the
// terminal.
func (e *Executor) Run(ctx context.Context, name string, args ...string) error {
	if e.dryRun {
		e.printDryRun(name, args)
		return nil
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if e.verbose {
		fmt.Printf("Executing: %s %s\n", name, strings.Join(args, " "))
	}
	e.log.Printf("exec: %s %s", name, strings.Join(args, " "))

	return cmd.Run()
}

// RunSudo executes a mutating command with sudo if not already root.
func (e *Executor) RunSudo(ctx context.Context, name string, args ...string) error {
	if e.dryRun {
		e.printDryRunSudo(name, args)
		return nil
	}

	cmd, err := e.elevated(ctx, name, args)
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if e.verbose {
		fmt.Printf("Executing (elevated): %s %s\n", name, strings.Join(args, " "))
	}
	e.log.Printf("exec (elevated): %s %s", name, strings.Join(args, " "))

	return cmd.Run()
}

// Output runs a read-only query command and returns its stdout. Queries
// always run, even in dry-run mode, since they do not mutate the system.
func (e *Executor) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if e.verbose {
		fmt.Printf("Executing: %s %s\n", name, strings.Join(args, " "))
	}

	err := cmd.Run()
	return stdout.String(), err
}

// OutputQuiet runs a query command and returns its stdout, suppressing
// stderr. Used for probes whose failure is an expected answer.
func (e *Executor) OutputQuiet(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	return stdout.String(), err
}

// OutputSudo runs a query command with sudo and returns its stdout.
func (e *Executor) OutputSudo(ctx context.Context, name string, args ...string) (string, error) {
	cmd, err := e.elevated(ctx, name, args)
	if err != nil {
		return "", err
	}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if e.verbose {
		fmt.Printf("Executing (elevated): %s %s\n", name, strings.Join(args, " "))
	}

	err = cmd.Run()
	return stdout.String(), err
}

// OutputCombined runs a command and returns stdout and stderr interleaved.
func (e *Executor) OutputCombined(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	err := cmd.Run()
	return combined.String(), err
}

func (e *Executor) elevated(ctx context.Context, name string, args []string) (*exec.Cmd, error) {
	if isRoot() {
		return exec.CommandContext(ctx, name, args...), nil
	}
	if hasSudo() {
		sudoArgs := append([]string{name}, args...)
		return exec.CommandContext(ctx, "sudo", sudoArgs...), nil
	}
	return nil, ErrNoPrivileges
}

func (e *Executor) printDryRun(name string, args []string) {
	fmt.Printf("[dry-run] Would execute: %s %s\n", name, strings.Join(args, " "))
}

func (e *Executor) printDryRunSudo(name string, args []string) {
	if isRoot() {
		fmt.Printf("[dry-run] Would execute (as root): %s %s\n", name, strings.Join(args, " "))
	} else {
		fmt.Printf("[dry-run] Would execute (with sudo): sudo %s %s\n", name, strings.Join(args, " "))
	}
}
