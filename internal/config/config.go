// Package config loads and saves the ucleaner configuration.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config represents the complete ucleaner configuration.
type Config struct {
	General   GeneralConfig         `toml:"general"`
	Output    OutputConfig          `toml:"output"`
	Retention RetentionConfig       `toml:"retention"`
	Steps     map[string]StepConfig `toml:"steps"`
}

// GeneralConfig contains general settings.
type GeneralConfig struct {
	// AutoConfirm skips confirmation prompts when true (like -y flag).
	AutoConfirm bool `toml:"auto_confirm"`

	// DryRun shows what would happen without executing when true.
	DryRun bool `toml:"dry_run"`

	// ReclaimPath is the mount point whose free space is measured
	// before and after each step.
	ReclaimPath string `toml:"reclaim_path"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	// Color enables colored output (respects NO_COLOR env var).
	Color bool `toml:"color"`

	// Unicode enables unicode symbols in output.
	Unicode bool `toml:"unicode"`

	// Verbose enables detailed output.
	Verbose bool `toml:"verbose"`
}

// RetentionConfig contains the safety and retention knobs.
type RetentionConfig struct {
	// JournalWindow is passed to journalctl --vacuum-time.
	JournalWindow string `toml:"journal_window"`

	// TmpFileAgeDays keeps /tmp and /var/tmp entries younger than this
	// out of the tmpfiles catalog.
	TmpFileAgeDays int `toml:"tmp_file_age_days"`

	// LargeOpThresholdMB is the aggregate size above which a second
	// confirmation gate is required.
	LargeOpThresholdMB int64 `toml:"large_op_threshold_mb"`
}

// StepConfig contains per-step overrides.
type StepConfig struct {
	// Roots overrides the default scan locations for the step.
	Roots []string `toml:"roots"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			AutoConfirm: false,
			DryRun:      false,
			ReclaimPath: "/",
		},
		Output: OutputConfig{
			Color:   true,
			Unicode: true,
			Verbose: false,
		},
		Retention: RetentionConfig{
			JournalWindow:      "7d",
			TmpFileAgeDays:     7,
			LargeOpThresholdMB: 1024,
		},
		Steps: map[string]StepConfig{},
	}
}

// Load loads the configuration from the default path. On first run the
// defaults are written there so the user has a file to edit; a failure
// to write it is ignored since the defaults still apply.
func Load() (*Config, error) {
	path := ConfigPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		cfg.Save()
		return cfg, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
// If the config file doesn't exist, it returns the default configuration.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}

// StepRoots returns the configured root overrides for a step, or nil.
func (c *Config) StepRoots(step string) []string {
	if sc, ok := c.Steps[step]; ok {
		return sc.Roots
	}
	return nil
}

// LargeOpThreshold returns the two-tier gate threshold in bytes.
// A non-positive configured value disables the second tier.
func (c *Config) LargeOpThreshold() int64 {
	if c.Retention.LargeOpThresholdMB <= 0 {
		return 0
	}
	return c.Retention.LargeOpThresholdMB << 20
}

// ShouldUseColor returns true if colored output should be used.
// Respects the NO_COLOR environment variable.
func (c *Config) ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return c.Output.Color
}
