package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteInventory writes lines to path as a listing file, one per line.
func WriteInventory(t testing.TB, path string, lines ...string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// MakeAlbumDirs creates root/artist/album for each "artist/album" entry.
func MakeAlbumDirs(t testing.TB, root string, entries ...string) {
	t.Helper()

	for _, entry := range entries {
		dir := filepath.Join(root, filepath.FromSlash(entry))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
}
