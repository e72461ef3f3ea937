package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// substitution rewrites one punctuation variant to its canonical ASCII form.
type substitution struct {
	from string
	to   string
}

// punctuationRules lists the typographic variants folded before comparison.
// Extend the table rather than adding ad-hoc replacements elsewhere.
var punctuationRules = []substitution{
	{from: "：", to: ":"}, // full-width colon
	{from: "–", to: "-"}, // en dash
	{from: "—", to: "-"}, // em dash
}

var punctuationReplacer = newRuleReplacer(punctuationRules)

func newRuleReplacer(rules []substitution) *strings.Replacer {
	pairs := make([]string, 0, len(rules)*2)
	for _, rule := range rules {
		pairs = append(pairs, rule.from, rule.to)
	}
	return strings.NewReplacer(pairs...)
}

// Normalize canonicalizes an artist or album name for comparison: punctuation
// variants are folded, surrounding whitespace is trimmed, and the text is
// lower-cased with full Unicode case mapping. Normalize is idempotent.
func Normalize(text string) string {
	text = punctuationReplacer.Replace(text)
	return Fold(strings.TrimSpace(text))
}

// Fold lower-cases text with full Unicode case mapping and nothing else.
func Fold(text string) string {
	if text == "" {
		return ""
	}
	// Casers carry state and are not safe for concurrent use.
	return cases.Lower(language.Und).String(text)
}
