// Package preflight provides the readiness checks behind "albumcheck doctor":
// the catalog opens and has a tracks table, the listing and log directories
// are writable, and the configured listing producer is available.
//
// Checks report results instead of failing so the command can show every
// problem at once.
package preflight
