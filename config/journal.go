package config

import (
	"fmt"

	"github.com/kilianp07/powerplan/core/journal"
)

// JournalConfig defines settings for the plan journal and its rotation.
type JournalConfig struct {
	// Enabled turns the journal writer on.
	Enabled bool `json:"enabled"`
	// Backend selects the store type: "jsonl" or "sqlite".
	Backend string `json:"backend"`
	// Path is the file location of the store.
	Path string `json:"path"`
	// MaxSizeMB triggers rotation of the JSONL file when it exceeds this size.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
	// Token protects GET /plans when set.
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *JournalConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		c.Path = "plans.jsonl"
	}
}

// Validate checks mandatory fields.
func (c JournalConfig) Validate() error {
	if c.Backend != "jsonl" && c.Backend != "sqlite" {
		return fmt.Errorf("%w: %s", journal.ErrUnknownBackend, c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("journal path is required")
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return fmt.Errorf("journal rotation settings must not be negative")
	}
	return nil
}

// Options converts the configuration into store options.
func (c JournalConfig) Options() journal.Options {
	return journal.Options{
		Backend:    c.Backend,
		Path:       c.Path,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
	}
}
