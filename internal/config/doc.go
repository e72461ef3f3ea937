// Package config loads, normalizes, and validates albumcheck configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// ALBUMCHECK_CATALOG_DB. The Config type centralizes every knob a
// reconciliation run needs: where the catalog and the inventory listing live,
// how long to wait for the listing to settle, how it is produced, and the
// fuzzy match threshold.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
