// ===========================================================================
//
// File Name:  dict.go
//
// ===========================================================================

package kgcore

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// BuildDictAndOverlay produces the two-tier synonym dictionary: the
// base dict collects, for every concept with a CUI, the set of English
// MRCONSO surfaces for that CUI plus the catalog's canonical_name; the
// overlay holds whatever catalog synonyms are not already in the base, per
// kg_id.
func BuildDictAndOverlay(cat *Catalog, mrconsoPath string, progressEvery int, counters Counters) (base, overlay map[string][]string, err error) {
	cuiToKg := make(map[string]string, cat.Len())
	baseSets := make(map[string]map[string]bool, cat.Len())
	for _, kgID := range cat.SortedKgIDs() {
		c := cat.Get(kgID)
		counters.Inc("entities_rows_seen")
		if c.CUI == "" {
			continue
		}
		counters.Inc("entities_with_cui")
		cuiToKg[strings.ToUpper(c.CUI)] = kgID
		baseSets[kgID] = make(map[string]bool)
	}

	stream := StreamRRF(mrconsoPath, progressEvery)
	for fields := range stream.Lines {
		counters.Inc("mrconso_rows_seen")
		if len(fields) < 15 {
			continue
		}
		cui := strings.ToUpper(strings.TrimSpace(fields[0]))
		lat := strings.ToUpper(strings.TrimSpace(fields[1]))
		text := strings.TrimSpace(fields[14])
		if cui == "" || text == "" || lat != "ENG" {
			continue
		}
		kgID, ok := cuiToKg[cui]
		if !ok {
			continue
		}
		baseSets[kgID][text] = true
		counters.Inc("mrconso_english_rows_mapped")
	}
	if err := stream.Err(); err != nil {
		return nil, nil, err
	}

	for _, kgID := range cat.SortedKgIDs() {
		c := cat.Get(kgID)
		if c.CanonicalName != "" {
			set, ok := baseSets[kgID]
			if !ok {
				set = make(map[string]bool)
				baseSets[kgID] = set
			}
			set[c.CanonicalName] = true
		}
	}

	base = make(map[string][]string)
	overlay = make(map[string][]string)
	for _, kgID := range cat.SortedKgIDs() {
		baseSet := baseSets[kgID]
		baseSorted := sortCaseFold(keys(baseSet))
		if len(baseSorted) > 0 {
			base[kgID] = baseSorted
			counters.Add("total_base_synonyms", len(baseSorted))
		}
		baseLookup := make(map[string]bool, len(baseSorted))
		for _, s := range baseSorted {
			baseLookup[s] = true
		}
		c := cat.Get(kgID)
		var extra []string
		for s := range c.Synonyms {
			if !baseLookup[s] {
				extra = append(extra, s)
			}
		}
		extra = sortCaseFold(extra)
		if len(extra) > 0 {
			overlay[kgID] = extra
			counters.Add("total_overlay_synonyms", len(extra))
			counters.Inc("overlay_keys")
		}
	}

	return base, overlay, nil
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func sortCaseFold(ss []string) []string {
	sort.Slice(ss, func(i, j int) bool {
		return strings.ToLower(ss[i]) < strings.ToLower(ss[j])
	})
	return ss
}

// WriteDictJSON writes a kg_id -> []string map pretty-printed with 2-space
// indent, matching umls_dict.txt and umls_dict.overlay.json's on-disk shape.
// umls_dict.txt is JSON despite its extension — downstream systems depend
// on that filename and must not be renamed.
func WriteDictJSON(path string, dict map[string][]string) error {
	w, err := CreateAtomic(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dict); err != nil {
		w.Abort()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return w.Commit()
}

// ValidateOverlay enforces the overlay schema rule: overlay keys must be a
// subset of base keys unless allowNewKeys is set, and for every key, base
// and overlay alias sets must be disjoint. It returns ErrSchemaViolation on
// any failure.
func ValidateOverlay(base, overlay map[string][]string, allowNewKeys bool) error {
	if !allowNewKeys {
		var missing []string
		for kgID := range overlay {
			if _, ok := base[kgID]; !ok {
				missing = append(missing, kgID)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return fmt.Errorf("%w: overlay has %d keys absent from base (e.g. %v)",
				ErrSchemaViolation, len(missing), head(missing, 10))
		}
	}

	var overlapping []string
	overlapTotal := 0
	for kgID, aliases := range overlay {
		baseSet := make(map[string]bool, len(base[kgID]))
		for _, a := range base[kgID] {
			baseSet[a] = true
		}
		n := 0
		for _, a := range aliases {
			if baseSet[a] {
				n++
			}
		}
		if n > 0 {
			overlapping = append(overlapping, kgID)
			overlapTotal += n
		}
	}
	if len(overlapping) > 0 {
		sort.Strings(overlapping)
		return fmt.Errorf("%w: overlay intersects base for %d keys (%d aliases, e.g. %v)",
			ErrSchemaViolation, len(overlapping), overlapTotal, head(overlapping, 10))
	}
	return nil
}

func head(ss []string, n int) []string {
	if len(ss) <= n {
		return ss
	}
	return ss[:n]
}

// TopOverlayByCount returns up to n kg_ids with the largest overlay alias
// count, ties broken by kg_id ascending — the companion validator's
// diagnostic echo.
func TopOverlayByCount(overlay map[string][]string, n int) []string {
	type pair struct {
		kgID  string
		count int
	}
	pairs := make([]pair, 0, len(overlay))
	for kgID, aliases := range overlay {
		pairs = append(pairs, pair{kgID, len(aliases)})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].kgID < pairs[j].kgID
	})
	out := make([]string, 0, n)
	for i := 0; i < len(pairs) && i < n; i++ {
		out = append(out, fmt.Sprintf("%s\t%d", pairs[i].kgID, pairs[i].count))
	}
	return out
}
