package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"albumcheck/internal/catalog"
	"albumcheck/internal/inventory"
	"albumcheck/internal/matching"
	"albumcheck/internal/services"
	"albumcheck/internal/testsupport"
)

func TestOpenMissingCatalogIsUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	_, err := catalog.Open(path)
	if !errors.Is(err, services.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("Open must not create the catalog file, stat err = %v", statErr)
	}
}

func TestOpenWithoutTracksTableIsUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write empty file: %v", err)
	}
	_, err := catalog.Open(path)
	if !errors.Is(err, services.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestLoadExcludesNullFieldsAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	testsupport.SeedTracks(t, path,
		testsupport.Track{Artist: "Pink Floyd", Album: "The Wall", PlaylistID: "1"},
		testsupport.Track{Artist: "Pink Floyd", Album: "The Wall", PlaylistID: "1"},
		testsupport.Track{Artist: "Sigur Rós", Album: "Ágætis byrjun – Remaster", PlaylistID: "2"},
		testsupport.Track{Artist: nil, Album: "Orphan", PlaylistID: "3"},
		testsupport.Track{Artist: "Nobody", Album: nil, PlaylistID: "4"},
	)

	store, err := catalog.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	records, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 distinct records, got %d: %+v", len(records), records)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].GroupID < records[j].GroupID })

	if records[0].Artist != "Pink Floyd" || records[0].ArtistNorm != "pink floyd" || records[0].AlbumNorm != "the wall" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].AlbumNorm != "ágætis byrjun - remaster" {
		t.Fatalf("expected dash folded and lower-cased album, got %q", records[1].AlbumNorm)
	}
	if records[1].Album != "Ágætis byrjun – Remaster" {
		t.Fatalf("raw album must be preserved, got %q", records[1].Album)
	}
}

func TestMarkAcquiredFlagsWholeGroupIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	testsupport.SeedTracks(t, path,
		testsupport.Track{Artist: "Pink Floyd", Album: "The Wall", PlaylistID: "1"},
		testsupport.Track{Artist: "Pink Floyd", Album: "The Wall", PlaylistID: "1"},
		testsupport.Track{Artist: nil, Album: nil, PlaylistID: "1"},
		testsupport.Track{Artist: "Radiohead", Album: "OK Computer", PlaylistID: "2"},
	)

	store, err := catalog.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.MarkAcquired(ctx, []string{"1"}); err != nil {
		t.Fatalf("MarkAcquired: %v", err)
	}
	first := testsupport.TrackFlags(t, path, "1")

	if err := store.MarkAcquired(ctx, []string{"1"}); err != nil {
		t.Fatalf("second MarkAcquired: %v", err)
	}
	second := testsupport.TrackFlags(t, path, "1")

	if len(first) != 3 {
		t.Fatalf("expected 3 rows in group 1, got %d", len(first))
	}
	for i, flags := range first {
		if flags != [2]int{1, 1} {
			t.Fatalf("row %d of group 1 not flagged: %v", i, flags)
		}
		if second[i] != flags {
			t.Fatalf("second call changed row %d: %v -> %v", i, flags, second[i])
		}
	}
	for _, flags := range testsupport.TrackFlags(t, path, "2") {
		if flags != [2]int{0, 0} {
			t.Fatalf("group 2 must stay untouched, got %v", flags)
		}
	}
}

func TestNullGroupExactMatchWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	testsupport.SeedTracks(t, path,
		testsupport.Track{Artist: "Pink Floyd", Album: "The Wall", PlaylistID: nil},
		testsupport.Track{Artist: "Other", Album: "Unrelated", PlaylistID: ""},
	)

	store, err := catalog.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	records, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var ungrouped, emptyGroup int
	for _, rec := range records {
		switch {
		case rec.Ungrouped:
			ungrouped++
		case rec.GroupID == "":
			emptyGroup++
		}
	}
	if ungrouped != 1 || emptyGroup != 1 {
		t.Fatalf("expected one NULL group and one empty group, got %+v", records)
	}

	outcome := matching.NewResolver(85).Resolve(inventory.Pair{Artist: "Pink Floyd", Album: "The Wall"}, records)
	if outcome.Kind != matching.KindExact || len(outcome.GroupIDs) != 0 {
		t.Fatalf("expected exact match without group ids, got %+v", outcome)
	}
	if err := store.MarkAcquired(ctx, outcome.GroupIDs); err != nil {
		t.Fatalf("MarkAcquired: %v", err)
	}
	if got := testsupport.TrackFlags(t, path, ""); len(got) != 1 || got[0] != [2]int{0, 0} {
		t.Fatalf("row with empty playlist_id must stay untouched, got %v", got)
	}
}

func TestMarkAcquiredEmptyIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	store := testsupport.MustCreateCatalog(t, path)
	if err := store.MarkAcquired(context.Background(), nil); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestMarkAcquiredFailureWrapsStoreWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	testsupport.SeedTracks(t, path, testsupport.Track{Artist: "A", Album: "B", PlaylistID: "1"})

	store, err := catalog.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = store.Close()

	err = store.MarkAcquired(context.Background(), []string{"1"})
	if !errors.Is(err, services.ErrStoreWrite) {
		t.Fatalf("expected ErrStoreWrite on closed store, got %v", err)
	}
}

func TestStatsAndPending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	testsupport.SeedTracks(t, path,
		testsupport.Track{Artist: "Pink Floyd", Album: "The Wall", PlaylistID: "1", Downloaded: true, Tagged: true},
		testsupport.Track{Artist: "Pink Floyd", Album: "The Wall", PlaylistID: "1", Downloaded: true, Tagged: true},
		testsupport.Track{Artist: "Radiohead", Album: "OK Computer", PlaylistID: "2", Downloaded: true},
		testsupport.Track{Artist: "Radiohead", Album: "OK Computer", PlaylistID: "2"},
		testsupport.Track{Artist: "Björk", Album: "Homogenic", PlaylistID: "3"},
	)

	store, err := catalog.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := catalog.Stats{Tracks: 5, Groups: 3, AcquiredGroups: 1}
	if stats != want {
		t.Fatalf("Stats = %+v, want %+v", stats, want)
	}

	pending, err := store.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending groups, got %+v", pending)
	}
	if pending[0].Artist != "Björk" || pending[0].Missing != 1 {
		t.Fatalf("unexpected first pending group: %+v", pending[0])
	}
	if pending[1].GroupID != "2" || pending[1].Tracks != 2 || pending[1].Missing != 2 {
		t.Fatalf("unexpected second pending group: %+v", pending[1])
	}
}
