package executor

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/actionlog"
)

func TestNew(t *testing.T) {
	e := New(false, false, nil)
	if e == nil {
		t.Fatal("New() returned nil")
	}
}

func TestOutputCombined(t *testing.T) {
	e := New(false, false, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	output, err := e.OutputCombined(ctx, "sh", "-c", "echo to-stdout; echo to-stderr 1>&2")
	if err != nil {
		t.Fatalf("OutputCombined() error: %v", err)
	}
	if !strings.Contains(output, "to-stdout") || !strings.Contains(output, "to-stderr") {
		t.Errorf("OutputCombined() = %q, want both streams", output)
	}
}

func TestOutput(t *testing.T) {
	e := New(false, false, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	output, err := e.Output(ctx, "echo", "hello")
	if err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("Output() = %q, want to contain 'hello'", output)
	}
}

func TestOutputRunsInDryRun(t *testing.T) {
	// Queries are read-only and must still run under dry-run so catalogs
	// can be built without mutating anything.
	e := New(true, false, nil)
	ctx := context.Background()

	output, err := e.Output(ctx, "echo", "hello")
	if err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("Output() in dry-run mode = %q, want to contain 'hello'", output)
	}
}

func TestRun(t *testing.T) {
	e := New(false, false, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := e.Run(ctx, "true"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestRunFailing(t *testing.T) {
	e := New(false, false, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := e.Run(ctx, "false"); err == nil {
		t.Error("Run() should return error for failing command")
	}
}

func TestRunDryRun(t *testing.T) {
	e := New(true, false, nil)
	ctx := context.Background()

	if err := e.Run(ctx, "false"); err != nil {
		t.Errorf("Run() in dry-run mode should not execute: %v", err)
	}
}

func TestRunRecordsAction(t *testing.T) {
	var buf bytes.Buffer
	e := New(false, false, actionlog.New(&buf))
	ctx := context.Background()

	if err := e.Run(ctx, "true"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(buf.String(), "exec: true") {
		t.Errorf("Run() should record the command in the action log, got %q", buf.String())
	}
}

func TestOutputQuietFailure(t *testing.T) {
	e := New(false, false, nil)
	ctx := context.Background()

	if _, err := e.OutputQuiet(ctx, "false"); err == nil {
		t.Error("OutputQuiet() should surface the command's exit error")
	}
}
