package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.General.AutoConfirm {
		t.Error("expected AutoConfirm to be false by default")
	}
	if cfg.General.DryRun {
		t.Error("expected DryRun to be false by default")
	}
	if cfg.General.ReclaimPath != "/" {
		t.Errorf("expected ReclaimPath '/', got %q", cfg.General.ReclaimPath)
	}

	if !cfg.Output.Color {
		t.Error("expected Color to be true by default")
	}
	if !cfg.Output.Unicode {
		t.Error("expected Unicode to be true by default")
	}

	if cfg.Retention.JournalWindow != "7d" {
		t.Errorf("expected journal window '7d', got %q", cfg.Retention.JournalWindow)
	}
	if cfg.Retention.LargeOpThresholdMB != 1024 {
		t.Errorf("expected threshold 1024 MB, got %d", cfg.Retention.LargeOpThresholdMB)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error for missing file: %v", err)
	}
	if cfg.Retention.TmpFileAgeDays != Default().Retention.TmpFileAgeDays {
		t.Error("missing config file should yield defaults")
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[general]
auto_confirm = true

[retention]
journal_window = "14d"
large_op_threshold_mb = 512

[steps.appimages]
roots = ["/opt/appimages"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if !cfg.General.AutoConfirm {
		t.Error("auto_confirm not loaded")
	}
	if cfg.Retention.JournalWindow != "14d" {
		t.Errorf("journal_window = %q, want 14d", cfg.Retention.JournalWindow)
	}
	if got := cfg.StepRoots("appimages"); len(got) != 1 || got[0] != "/opt/appimages" {
		t.Errorf("StepRoots(appimages) = %v", got)
	}
	if got := cfg.StepRoots("unknown"); got != nil {
		t.Errorf("StepRoots(unknown) = %v, want nil", got)
	}
}

func TestLargeOpThreshold(t *testing.T) {
	cfg := Default()
	if got := cfg.LargeOpThreshold(); got != 1024<<20 {
		t.Errorf("LargeOpThreshold() = %d, want %d", got, int64(1024)<<20)
	}

	cfg.Retention.LargeOpThresholdMB = 0
	if got := cfg.LargeOpThreshold(); got != 0 {
		t.Errorf("disabled threshold should be 0, got %d", got)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	path := filepath.Join(tmp, "config.toml")

	cfg := Default()
	cfg.General.DryRun = true
	cfg.Retention.TmpFileAgeDays = 30

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if !loaded.General.DryRun || loaded.Retention.TmpFileAgeDays != 30 {
		t.Errorf("round-trip lost settings: %+v", loaded)
	}
}

func TestLoadWritesDefaultConfigOnFirstRun(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.General.ReclaimPath != "/" {
		t.Errorf("first-run config is not the default: %+v", cfg.General)
	}

	if _, err := os.Stat(ConfigPath()); err != nil {
		t.Errorf("default config file not written: %v", err)
	}

	// A second load reads the written file.
	again, err := Load()
	if err != nil {
		t.Fatalf("second Load() error: %v", err)
	}
	if again.Retention.JournalWindow != cfg.Retention.JournalWindow {
		t.Errorf("reloaded config differs: %+v vs %+v", again.Retention, cfg.Retention)
	}
}

func TestPathsHonorXDG(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("XDG_DATA_HOME", tmp)

	if got := ConfigDir(); got != filepath.Join(tmp, "ucleaner") {
		t.Errorf("ConfigDir() = %q", got)
	}
	if got := HistoryPath(); got != filepath.Join(tmp, "ucleaner", "history.db") {
		t.Errorf("HistoryPath() = %q", got)
	}
	if got := ActionLogPath(); got != filepath.Join(tmp, "ucleaner", "actions.log") {
		t.Errorf("ActionLogPath() = %q", got)
	}
}
