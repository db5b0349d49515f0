// ===========================================================================
//
// File Name:  ids.go
//
// ===========================================================================

package kgcore

import "strings"

// KgIDFor assigns the stable identifier for a CUI the first time it is
// seen. For the four typed classes the id is derived from the
// canonical surface text via Slugify; for everything else it falls back to
// the CUI itself. Once assigned within a build it is immutable — callers
// must never recompute it after the canonical name changes.
func KgIDFor(cui, canonical string, et EntityType) string {
	switch et {
	case Drug, Disease, Chemical, Gene:
		return et.String() + "_" + Slugify(canonical)
	default:
		return "umls_" + strings.ToLower(cui)
	}
}
