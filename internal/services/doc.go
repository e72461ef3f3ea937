// Package services defines shared utilities consumed by the reconciliation
// components and their external collaborators.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and listing line numbers for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent process exit codes (catalog unavailable, listing not
//     ready, per-line write failures).
//
// Use these helpers when wiring new components so operational behaviour (error
// classification, observability) stays uniform across a run.
package services
