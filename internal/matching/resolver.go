package matching

import (
	"fmt"
	"strings"

	"albumcheck/internal/catalog"
	"albumcheck/internal/inventory"
	"albumcheck/internal/textutil"
)

// DefaultThreshold is the minimum averaged score for a fuzzy candidate.
const DefaultThreshold = 85.0

// ReasonSubstring tags candidates whose catalog album contains the observed album.
const ReasonSubstring = "substring"

// Kind identifies which outcome variant is populated.
type Kind int

const (
	KindNone Kind = iota
	KindExact
	KindCandidates
)

func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindCandidates:
		return "fuzzy"
	default:
		return "none"
	}
}

// Candidate is a catalog record suggested for a pair without an exact match.
type Candidate struct {
	Artist  string
	Album   string
	GroupID string
	Reason  string
}

// Outcome is the resolution of one pair. GroupIDs is set for KindExact and
// Candidates for KindCandidates. An exact match against ungrouped records
// only has no GroupIDs.
type Outcome struct {
	Kind       Kind
	GroupIDs   []string
	Candidates []Candidate
}

// Resolver applies the tier policy. The zero value scores with
// textutil.PartialRatio and a threshold of zero.
type Resolver struct {
	Threshold float64
	// Score overrides the similarity function; nil uses textutil.PartialRatio.
	Score func(a, b string) float64
}

// NewResolver returns a resolver using the standard scorer.
func NewResolver(threshold float64) Resolver {
	return Resolver{Threshold: threshold}
}

// Resolve classifies pair against records. records is read-only and its
// order determines candidate order.
func (r Resolver) Resolve(pair inventory.Pair, records []catalog.NormalizedRecord) Outcome {
	artist := textutil.Normalize(pair.Artist)
	album := textutil.Normalize(pair.Album)

	if ids, ok := exactGroups(artist, album, records); ok {
		return Outcome{Kind: KindExact, GroupIDs: ids}
	}

	score := r.Score
	if score == nil {
		score = textutil.PartialRatio
	}

	var candidates []Candidate
	for _, rec := range records {
		reason := ""
		if strings.Contains(rec.AlbumNorm, album) {
			reason = ReasonSubstring
		} else {
			avg := (score(artist, rec.ArtistNorm) + score(album, rec.AlbumNorm)) / 2
			if avg >= r.Threshold {
				reason = fmt.Sprintf("fuzzy:%.1f", avg)
			}
		}
		if reason == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			Artist:  rec.Artist,
			Album:   rec.Album,
			GroupID: rec.GroupID,
			Reason:  reason,
		})
	}
	if len(candidates) > 0 {
		return Outcome{Kind: KindCandidates, Candidates: candidates}
	}
	return Outcome{Kind: KindNone}
}

// exactGroups returns the distinct group ids of records equal to the pair
// after normalization, in first-seen order. ok reports whether any record
// matched; ungrouped records match without contributing an id.
func exactGroups(artist, album string, records []catalog.NormalizedRecord) (ids []string, ok bool) {
	seen := make(map[string]struct{})
	for _, rec := range records {
		if rec.ArtistNorm != artist || rec.AlbumNorm != album {
			continue
		}
		ok = true
		if rec.Ungrouped {
			continue
		}
		if _, dup := seen[rec.GroupID]; dup {
			continue
		}
		seen[rec.GroupID] = struct{}{}
		ids = append(ids, rec.GroupID)
	}
	return ids, ok
}
