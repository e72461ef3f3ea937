// Package catalog reads and updates the playlist catalog, a SQLite database
// whose tracks table lists every known track with its artist, album, and
// playlist (group) identifier.
//
// Load returns the distinct (artist, album, group) triples with both text
// fields present, normalized once for the run. MarkAcquired flags every track
// of the given groups as downloaded and tagged in a single transaction. The
// store never alters the schema of an existing catalog; Create exists for
// fresh setups and tests.
package catalog
