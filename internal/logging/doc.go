// Package logging assembles structured slog loggers for albumcheck.
//
// It owns the console and JSON handlers, the fan-out that sends records to the
// log file and the terminal, and context helpers that tag records with the run
// identifier, run phase, and listing line number. A no-op logger is provided
// for tests and wiring code that cannot fail.
package logging
