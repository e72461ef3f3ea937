// Package matching classifies an observed artist/album pair against the loaded
// catalog.
//
// Resolution runs in tiers. An exact tier compares normalized artist and album
// for equality; any hit ends resolution and yields the group identifiers to
// mark as acquired. Otherwise each record is checked once: a normalized album
// contained in the catalog album yields a "substring" candidate, and failing
// that the averaged artist/album partial-ratio score must reach the threshold
// to yield a "fuzzy:<score>" candidate. Candidates are never written back.
package matching
