package catalog

import (
	"context"
	"database/sql"

	"albumcheck/internal/services"
	"albumcheck/internal/textutil"
)

// Record is one distinct (artist, album, group) triple from the catalog.
// Several records may share a GroupID. Ungrouped marks a NULL playlist_id,
// which no update can address; GroupID is then empty.
type Record struct {
	Artist    string
	Album     string
	GroupID   string
	Ungrouped bool
}

// NormalizedRecord carries a record together with its normalized text used
// for matching. The raw fields are kept for display.
type NormalizedRecord struct {
	Record
	ArtistNorm string
	AlbumNorm  string
}

// Normalized returns r with its normalized artist and album computed.
func Normalized(r Record) NormalizedRecord {
	return NormalizedRecord{
		Record:     r,
		ArtistNorm: textutil.Normalize(r.Artist),
		AlbumNorm:  textutil.Normalize(r.Album),
	}
}

const loadQuery = `SELECT DISTINCT artist, album, playlist_id FROM tracks
WHERE artist IS NOT NULL AND album IS NOT NULL`

// Load reads every distinct triple whose artist and album are present. Rows
// keep query order. Any failure discards the partial result.
func (s *Store) Load(ctx context.Context) ([]NormalizedRecord, error) {
	var records []NormalizedRecord
	err := retryOnBusy(ctx, func() error {
		records = records[:0]
		rows, err := s.db.QueryContext(ctx, loadQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var (
				artist  string
				album   string
				groupID sql.NullString
			)
			if err := rows.Scan(&artist, &album, &groupID); err != nil {
				return err
			}
			records = append(records, Normalized(Record{
				Artist:    artist,
				Album:     album,
				GroupID:   groupID.String,
				Ungrouped: !groupID.Valid,
			}))
		}
		return rows.Err()
	})
	if err != nil {
		return nil, services.Wrap(services.ErrStoreUnavailable, "catalog", "load", "query tracks", err)
	}
	return records, nil
}
