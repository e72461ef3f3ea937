// Package textutil provides the text canonicalization and similarity scoring
// used to compare locally observed artist/album names against the catalog.
//
// The primary use cases are:
//   - Normalizing free text through an auditable punctuation rule table,
//     whitespace trimming, and Unicode lower-case folding
//   - Scoring two strings with the Indel ratio and the partial ratio on a
//     0-100 scale
//
// Scores are computed over code points, never bytes, so multi-byte names
// compare the same way as ASCII ones.
package textutil
