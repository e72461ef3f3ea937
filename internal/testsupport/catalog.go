package testsupport

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"albumcheck/internal/catalog"
)

// Track is one catalog row to seed. A nil Artist, Album, or PlaylistID is
// stored as NULL.
type Track struct {
	Artist     any
	Album      any
	PlaylistID any
	Downloaded bool
	Tagged     bool
}

// MustCreateCatalog creates an empty catalog at path and registers cleanup.
func MustCreateCatalog(t testing.TB, path string) *catalog.Store {
	t.Helper()

	store, err := catalog.Create(context.Background(), path)
	if err != nil {
		t.Fatalf("create catalog: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// SeedTracks inserts rows into the catalog at path, creating it if needed.
func SeedTracks(t testing.TB, path string, tracks ...Track) {
	t.Helper()

	store, err := catalog.Create(context.Background(), path)
	if err != nil {
		t.Fatalf("create catalog: %v", err)
	}
	_ = store.Close()

	db := openRaw(t, path)
	defer db.Close()
	for _, track := range tracks {
		if _, err := db.Exec(
			`INSERT INTO tracks (artist, album, playlist_id, downloaded, tagged) VALUES (?, ?, ?, ?, ?)`,
			track.Artist, track.Album, track.PlaylistID, boolToInt(track.Downloaded), boolToInt(track.Tagged),
		); err != nil {
			t.Fatalf("seed track %+v: %v", track, err)
		}
	}
}

// TrackFlags returns the downloaded and tagged values of every row in the
// given playlist, in insertion order.
func TrackFlags(t testing.TB, path, playlistID string) [][2]int {
	t.Helper()

	db := openRaw(t, path)
	defer db.Close()
	rows, err := db.Query(`SELECT downloaded, tagged FROM tracks WHERE playlist_id = ? ORDER BY id`, playlistID)
	if err != nil {
		t.Fatalf("query flags: %v", err)
	}
	defer rows.Close()

	var flags [][2]int
	for rows.Next() {
		var pair [2]int
		if err := rows.Scan(&pair[0], &pair[1]); err != nil {
			t.Fatalf("scan flags: %v", err)
		}
		flags = append(flags, pair)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterate flags: %v", err)
	}
	return flags
}

func openRaw(t testing.TB, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite %s: %v", path, err)
	}
	return db
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
