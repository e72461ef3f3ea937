// Package main hosts the albumcheck CLI entrypoint and command graph.
//
// Running albumcheck without a subcommand performs a reconciliation pass with
// the configured defaults. The remaining commands inspect the catalog and the
// listing, resolve single lines, check the environment, and scaffold
// configuration. Matching and storage live in the internal packages; this
// package only wires them to flags and terminal output.
package main
