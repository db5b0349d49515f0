// ===========================================================================
//
// File Name:  classify.go
//
// ===========================================================================

package kgcore

// Semantic type tables (TUI sets). These are configuration, not runtime
// state, and are exposed here as immutable tables alongside the
// classifier that consults them.
var (
	drugTUIs = map[string]bool{
		"T109": true, "T110": true, "T116": true, "T121": true, "T126": true,
		"T129": true, "T130": true, "T195": true, "T200": true,
	}
	diseaseTUIs = map[string]bool{
		"T047": true, "T048": true, "T184": true, "T191": true,
	}
	chemicalTUIs = map[string]bool{
		"T103": true, "T104": true, "T109": true, "T110": true, "T111": true,
		"T114": true, "T115": true, "T116": true, "T196": true,
	}
	geneTUIs = map[string]bool{
		"T028": true, "T085": true, "T086": true, "T087": true, "T088": true,
	}
)

func intersects(tuis map[string]bool, table map[string]bool) bool {
	for t := range tuis {
		if table[t] {
			return true
		}
	}
	return false
}

// ClassifyEntity returns the entity type for a CUI's TUI set by first-match
// priority: drug, then disease, then chemical, then gene, else Other. The
// order is significant — drug wins over chemical for TUIs present in both
// tables (e.g. T109, T110) — and must be preserved exactly.
func ClassifyEntity(tuis map[string]bool) EntityType {
	switch {
	case intersects(tuis, drugTUIs):
		return Drug
	case intersects(tuis, diseaseTUIs):
		return Disease
	case intersects(tuis, chemicalTUIs):
		return Chemical
	case intersects(tuis, geneTUIs):
		return Gene
	default:
		return Other
	}
}
