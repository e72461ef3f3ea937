// Package inventory produces and reads the local album listing: a plain-text
// file with one "artist/album" line per folder found on the device.
//
// The listing is written by an external producer (a Tasker task, a folder
// walk, or anything else), so the Reader first waits for the file to exist and
// stop growing before parsing it. Lines without '/' are ignored, the rest are
// trimmed, ordered case-insensitively, and split on the first '/'.
package inventory
