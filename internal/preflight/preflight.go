package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"albumcheck/internal/catalog"
	"albumcheck/internal/config"
	"albumcheck/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check that applies to cfg.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckCatalog(ctx, cfg.Paths.CatalogDB),
		CheckDirectoryAccess("Listing directory", filepath.Dir(cfg.Paths.InventoryFile), unix.R_OK|unix.W_OK|unix.X_OK),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir, unix.R_OK|unix.W_OK|unix.X_OK),
	}

	switch cfg.Inventory.Trigger {
	case config.TriggerCommand:
		for _, status := range deps.CheckBinaries([]deps.Requirement{{
			Name:        "Listing trigger",
			Command:     cfg.TriggerBinary(),
			Description: "Produces the album listing before each run",
		}}) {
			results = append(results, fromStatus(status))
		}
	case config.TriggerFolders:
		results = append(results, CheckDirectoryAccess("Music root", cfg.Inventory.MusicRoot, unix.R_OK|unix.X_OK))
	}
	return results
}

// CheckCatalog opens the catalog read path and counts its contents.
func CheckCatalog(ctx context.Context, path string) Result {
	const name = "Catalog"
	store, err := catalog.Open(path)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	defer store.Close()

	stats, err := store.Stats(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%s (%d tracks, %d groups)", path, stats.Tracks, stats.Groups),
	}
}

// CheckDirectoryAccess verifies that the directory exists and grants mode
// (a unix.R_OK/W_OK/X_OK mask) to the current user.
func CheckDirectoryAccess(name, path string, mode uint32) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	access := "read ok"
	if mode&unix.W_OK != 0 {
		access = "read/write ok"
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, access)}
}

func fromStatus(status deps.Status) Result {
	if !status.Available {
		return Result{Name: status.Name, Detail: status.Detail}
	}
	return Result{Name: status.Name, Passed: true, Detail: status.Path}
}
