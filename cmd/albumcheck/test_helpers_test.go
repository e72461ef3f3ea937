package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"albumcheck/internal/config"
	"albumcheck/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("ALBUMCHECK_CATALOG_DB", "")
	t.Setenv("ALBUMCHECK_INVENTORY_FILE", "")

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

// seedLibrary writes the catalog and listing shared by the CLI tests.
func (e *cliTestEnv) seedLibrary(t *testing.T) {
	t.Helper()
	testsupport.SeedTracks(t, e.cfg.Paths.CatalogDB,
		testsupport.Track{Artist: "Radiohead", Album: "OK Computer", PlaylistID: "PL-ok"},
		testsupport.Track{Artist: "Nirvana", Album: "Nevermind", PlaylistID: "PL-nv"},
		testsupport.Track{Artist: "The Beatles", Album: "Abbey Road", PlaylistID: "PL-ar"},
	)
	testsupport.WriteInventory(t, e.cfg.Paths.InventoryFile,
		"Radiohead/OK Computr",
		"Pink Floyd/The Wall",
		"Nirvana/Nevermind",
	)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	payload, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
