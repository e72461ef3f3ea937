package textutil

import (
	"github.com/hbollon/go-edlib"
)

// IndelRatio returns the normalized Indel similarity of a and b scaled to
// 0-100. The Indel distance counts insertions and deletions only, so it equals
// len(a)+len(b)-2*LCS(a, b). Two empty strings score 100.
func IndelRatio(a, b string) float64 {
	return indelRatio([]rune(a), []rune(b))
}

func indelRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	common := 0
	if len(a) > 0 && len(b) > 0 {
		common = edlib.LCS(string(a), string(b))
	}
	dist := total - 2*common
	return 100 * (1 - float64(dist)/float64(total))
}

// PartialRatio scores how well the shorter string aligns with its best
// matching window inside the longer one, scaled to 0-100. A needle that occurs
// verbatim inside the haystack scores 100. When both strings have the same
// length the better of the two directions wins. An empty side scores 0 unless
// both are empty.
func PartialRatio(a, b string) float64 {
	needle, haystack := []rune(a), []rune(b)
	if len(needle) == 0 || len(haystack) == 0 {
		if len(needle) == len(haystack) {
			return 100
		}
		return 0
	}
	if len(needle) > len(haystack) {
		needle, haystack = haystack, needle
	}

	best := alignNeedle(needle, haystack)
	if best < 100 && len(needle) == len(haystack) {
		if swapped := alignNeedle(haystack, needle); swapped > best {
			best = swapped
		}
	}
	return best
}

// alignNeedle scores needle against three window families of haystack:
// prefixes shorter than the needle, full-length windows, and suffixes. Windows
// that end (or, for suffixes, start) on a character absent from the needle
// cannot improve the alignment and are skipped.
func alignNeedle(needle, haystack []rune) float64 {
	n, m := len(needle), len(haystack)
	present := make(map[rune]struct{}, n)
	for _, r := range needle {
		present[r] = struct{}{}
	}
	has := func(r rune) bool {
		_, ok := present[r]
		return ok
	}

	var best float64
	score := func(window []rune) bool {
		if ratio := indelRatio(needle, window); ratio > best {
			best = ratio
		}
		return best == 100
	}

	for i := 1; i < n; i++ {
		if !has(haystack[i-1]) {
			continue
		}
		if score(haystack[:i]) {
			return best
		}
	}
	for i := 0; i < m-n; i++ {
		if !has(haystack[i+n-1]) {
			continue
		}
		if score(haystack[i : i+n]) {
			return best
		}
	}
	for i := m - n; i < m; i++ {
		if !has(haystack[i]) {
			continue
		}
		if score(haystack[i:]) {
			return best
		}
	}
	return best
}
