package inventory

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path"
	"sort"
	"strings"

	"albumcheck/internal/config"
	"albumcheck/internal/fileutil"
	"albumcheck/internal/services"
)

// Trigger asks the listing producer to (re)generate the listing file. It may
// return before the file is complete; Reader handles the wait.
type Trigger interface {
	Trigger(ctx context.Context) error
}

// NewTrigger builds the trigger selected by cfg.Inventory.Trigger.
func NewTrigger(cfg *config.Config) (Trigger, error) {
	switch cfg.Inventory.Trigger {
	case config.TriggerCommand:
		return CommandTrigger{Argv: cfg.Inventory.TriggerCommand}, nil
	case config.TriggerFolders:
		return FolderTrigger{Root: cfg.Inventory.MusicRoot, Output: cfg.Paths.InventoryFile}, nil
	case config.TriggerNone, "":
		return NopTrigger{}, nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "inventory", "trigger", fmt.Sprintf("unsupported trigger %q", cfg.Inventory.Trigger), nil)
	}
}

// CommandTrigger runs an external command, discarding its output. The default
// configuration broadcasts an intent that makes Tasker write the listing.
type CommandTrigger struct {
	Argv []string
}

func (t CommandTrigger) Trigger(ctx context.Context) error {
	if len(t.Argv) == 0 {
		return services.Wrap(services.ErrConfiguration, "inventory", "trigger", "empty trigger command", nil)
	}
	cmd := exec.CommandContext(ctx, t.Argv[0], t.Argv[1:]...) //nolint:gosec
	if err := cmd.Run(); err != nil {
		return services.Wrap(services.ErrExternalTool, "inventory", "trigger", strings.Join(t.Argv, " "), err)
	}
	return nil
}

// FolderTrigger writes the listing itself by walking Root and emitting an
// "artist/album" line for every second-level directory. Hidden entries are
// skipped. The file at Output is replaced atomically.
type FolderTrigger struct {
	Root   string
	Output string
}

func (t FolderTrigger) Trigger(ctx context.Context) error {
	lines, err := ListAlbumFolders(ctx, t.Root)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := fileutil.WriteFileAtomic(t.Output, []byte(b.String()), 0o644); err != nil {
		return services.Wrap(services.ErrExternalTool, "inventory", "trigger", "write listing", err)
	}
	return nil
}

// ListAlbumFolders returns "artist/album" for every directory exactly two
// levels below root, sorted for deterministic output.
func ListAlbumFolders(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "inventory", "walk", "music root unavailable", err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrConfiguration, "inventory", "walk", fmt.Sprintf("%s is not a directory", root), nil)
	}

	var lines []string
	err = fs.WalkDir(os.DirFS(root), ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if strings.Count(p, "/") == 1 {
			artist, album := path.Split(p)
			lines = append(lines, strings.TrimSuffix(artist, "/")+"/"+album)
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk music root: %w", err)
	}
	sort.Strings(lines)
	return lines, nil
}

// NopTrigger is used when the listing is produced outside albumcheck.
type NopTrigger struct{}

func (NopTrigger) Trigger(context.Context) error { return nil }

// RemoveStale deletes a previous listing so the wait never accepts an old
// file. A missing file is not an error.
func RemoveStale(listing string) (bool, error) {
	removed, err := fileutil.RemoveIfExists(listing)
	if err != nil {
		return false, fmt.Errorf("remove stale listing: %w", err)
	}
	return removed, nil
}
