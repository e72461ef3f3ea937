package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// Stats summarizes catalog contents.
type Stats struct {
	Tracks         int
	Groups         int
	AcquiredGroups int
}

// PendingGroup is a group with at least one track not yet downloaded and tagged.
type PendingGroup struct {
	GroupID string `json:"group_id"`
	Artist  string `json:"artist"`
	Album   string `json:"album"`
	Tracks  int    `json:"tracks"`
	Missing int    `json:"missing"`
}

// Stats counts tracks, distinct groups, and groups whose every track is
// downloaded and tagged.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM tracks`).Scan(&stats.Tracks); err != nil {
		return Stats{}, fmt.Errorf("count tracks: %w", err)
	}
	row := s.db.QueryRowContext(ctx, `
SELECT COUNT(1), COALESCE(SUM(acquired), 0) FROM (
    SELECT MIN(COALESCE(downloaded, 0) = 1 AND COALESCE(tagged, 0) = 1) AS acquired
    FROM tracks
    WHERE playlist_id IS NOT NULL
    GROUP BY playlist_id
)`)
	if err := row.Scan(&stats.Groups, &stats.AcquiredGroups); err != nil {
		return Stats{}, fmt.Errorf("count groups: %w", err)
	}
	return stats, nil
}

// Pending lists groups that still have tracks to acquire, ordered by artist
// then album. The artist and album shown are those of the group's first track
// carrying both fields.
func (s *Store) Pending(ctx context.Context) ([]PendingGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT playlist_id,
       (SELECT t2.artist FROM tracks t2 WHERE t2.playlist_id = t.playlist_id AND t2.artist IS NOT NULL AND t2.album IS NOT NULL ORDER BY t2.rowid LIMIT 1) AS group_artist,
       (SELECT t2.album FROM tracks t2 WHERE t2.playlist_id = t.playlist_id AND t2.artist IS NOT NULL AND t2.album IS NOT NULL ORDER BY t2.rowid LIMIT 1) AS group_album,
       COUNT(1),
       SUM(CASE WHEN COALESCE(downloaded, 0) = 1 AND COALESCE(tagged, 0) = 1 THEN 0 ELSE 1 END) AS missing
FROM tracks t
WHERE playlist_id IS NOT NULL
GROUP BY playlist_id
HAVING missing > 0
ORDER BY group_artist COLLATE NOCASE, group_album COLLATE NOCASE, playlist_id`)
	if err != nil {
		return nil, fmt.Errorf("query pending groups: %w", err)
	}
	defer rows.Close()

	var pending []PendingGroup
	for rows.Next() {
		var (
			group         PendingGroup
			artist, album sql.NullString
		)
		if err := rows.Scan(&group.GroupID, &artist, &album, &group.Tracks, &group.Missing); err != nil {
			return nil, fmt.Errorf("scan pending group: %w", err)
		}
		group.Artist = artist.String
		group.Album = album.String
		pending = append(pending, group)
	}
	return pending, rows.Err()
}
