package preflight_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/sys/unix"

	"albumcheck/internal/preflight"
	"albumcheck/internal/testsupport"
)

func TestRunAllHealthyCommandSetup(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedTrigger("am", 0))
	testsupport.SeedTracks(t, cfg.Paths.CatalogDB, testsupport.Track{Artist: "A", Album: "B", PlaylistID: "1"})
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := preflight.RunAll(context.Background(), cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %+v", results)
	}
	for _, result := range results {
		if !result.Passed {
			t.Fatalf("expected %s to pass: %s", result.Name, result.Detail)
		}
	}
	if !strings.Contains(results[0].Detail, "1 tracks, 1 groups") {
		t.Fatalf("unexpected catalog detail %q", results[0].Detail)
	}
}

func TestRunAllReportsProblems(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithFolderTrigger())
	cfg.Inventory.MusicRoot = filepath.Join(testsupport.BaseDir(cfg), "absent")

	results := preflight.RunAll(context.Background(), cfg)
	failed := map[string]bool{}
	for _, result := range results {
		if !result.Passed {
			failed[result.Name] = true
		}
	}
	for _, name := range []string{"Catalog", "Listing directory", "Log directory", "Music root"} {
		if !failed[name] {
			t.Errorf("expected %s to fail, results=%+v", name, results)
		}
	}
}

func TestCheckDirectoryAccessRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	result := preflight.CheckDirectoryAccess("Listing directory", path, unix.R_OK)
	if result.Passed || !strings.Contains(result.Detail, "not a directory") {
		t.Fatalf("unexpected result %+v", result)
	}
}
