package testsupport

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"albumcheck/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose paths live in a per-test temp directory.
// The listing trigger defaults to "none" so tests control the listing file.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.CatalogDB = filepath.Join(base, "catalog.db")
	cfgVal.Paths.InventoryFile = filepath.Join(base, "listing", "MyAlbums.txt")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Inventory.Trigger = config.TriggerNone
	cfgVal.Inventory.StabilizationTimeout = 1
	cfgVal.Inventory.PollIntervalMS = 10
	cfgVal.Inventory.RemoveStale = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithThreshold overrides the fuzzy threshold.
func WithThreshold(threshold int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.FuzzyThreshold = threshold
	}
}

// WithFolderTrigger switches the listing trigger to a folder walk rooted in a
// "music" directory under the test's base directory.
func WithFolderTrigger() ConfigOption {
	return func(b *configBuilder) {
		root := filepath.Join(b.baseDir, "music")
		if err := os.MkdirAll(root, 0o755); err != nil {
			b.t.Fatalf("mkdir music root: %v", err)
		}
		b.cfg.Inventory.Trigger = config.TriggerFolders
		b.cfg.Inventory.MusicRoot = root
	}
}

// WithStubbedTrigger writes a stub executable and configures the command
// trigger to run it. The stub exits with exitCode.
func WithStubbedTrigger(name string, exitCode int) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit " + strconv.Itoa(exitCode) + "\n")
		target := filepath.Join(binDir, name)
		if err := os.WriteFile(target, script, 0o755); err != nil {
			b.t.Fatalf("write stub %s: %v", name, err)
		}
		b.cfg.Inventory.Trigger = config.TriggerCommand
		b.cfg.Inventory.TriggerCommand = []string{target}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.CatalogDB)
}
