// ===========================================================================
//
// File Name:  normalize.go
//
// ===========================================================================

package kgcore

import (
	"strings"
	"unicode"
)

// NormalizeSurface is the only allowed surface-to-key transform used for
// enrichment and edge-resolution matching. Trim, lowercase, collapse
// any run of Unicode whitespace to a single space. No punctuation is
// stripped, and no stemming or fuzzy equivalence is applied — the pipeline
// requires exact normalized-surface equality.
func NormalizeSurface(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastWasSpace := false
	started := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			if started && !lastWasSpace {
				b.WriteByte(' ')
			}
			lastWasSpace = true
			continue
		}
		b.WriteRune(unicode.ToLower(r))
		lastWasSpace = false
		started = true
	}
	return strings.TrimRight(b.String(), " ")
}

// Slugify is the only allowed string-to-id-slug transform. Trim,
// lowercase, replace runs of non [a-z0-9] with '_', collapse repeated '_',
// strip leading/trailing '_'. An empty result becomes the literal
// "unknown" so that kg_id is never empty.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastWasUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastWasUnderscore = false
			continue
		}
		if !lastWasUnderscore {
			b.WriteByte('_')
			lastWasUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "unknown"
	}
	return out
}
