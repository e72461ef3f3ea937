// Package reconcile runs one reconciliation pass: load the catalog, refresh
// and read the local listing, resolve every pair, mark exact matches as
// acquired, and tally the outcomes.
//
// A run holds an advisory file lock for its whole duration so two passes never
// race on the same listing file. Catalog and listing failures are fatal; a
// failed write for one line is logged and counted while the run continues.
package reconcile
