// ===========================================================================
//
// File Name:  enrich.go
//
// ===========================================================================

package kgcore

import "strings"

// addUnambiguousSynonym implements the core correctness rule of synonym
// enrichment: unambiguous single-target matching. The surface index is
// consulted but never updated here, so synonyms added during enrichment
// cannot themselves become anchors within the same run, which would let
// ambiguity creep in transitively.
func addUnambiguousSynonym(cat *Catalog, name, source string, accept func(*Concept) bool, counters Counters, ambiguousCounter, acceptedCounter string) {
	n := NormalizeSurface(name)
	kgID, ok := cat.Surface.Unambiguous(n)
	if !ok {
		if len(cat.Surface[n]) > 1 {
			counters.Inc(ambiguousCounter)
		}
		return
	}
	concept := cat.Get(kgID)
	if concept == nil || !accept(concept) {
		return
	}
	concept.AddSynonym(strings.TrimSpace(name))
	concept.AddSource(source)
	counters.Inc(acceptedCounter)
}

// EnrichFromRxNorm applies RxNorm ingredient/brand/precise-ingredient names
// from RXNCONSO.RRF to existing drug concepts.
func EnrichFromRxNorm(cat *Catalog, path string, progressEvery int, counters Counters) error {
	allowedTTY := map[string]bool{"IN": true, "BN": true, "PIN": true}
	stream := StreamRRF(path, progressEvery)
	for fields := range stream.Lines {
		counters.Inc("rxnorm_rows")
		if len(fields) < 15 {
			counters.Inc("rxnorm_rows_filtered")
			continue
		}
		sab := strings.ToUpper(strings.TrimSpace(fields[11]))
		tty := strings.ToUpper(strings.TrimSpace(fields[12]))
		text := strings.TrimSpace(fields[14])
		if sab != "RXNORM" || !allowedTTY[tty] || text == "" {
			continue
		}
		addUnambiguousSynonym(cat, text, "RxNorm", func(c *Concept) bool {
			return c.EntityType == Drug
		}, counters, "rxnorm_ambiguous_surface", "rxnorm_synonyms_added")
	}
	return stream.Err()
}

// EnrichFromDrugBank applies DrugBank drug/brand/synonym names to existing
// drug concepts.
func EnrichFromDrugBank(cat *Catalog, path string, counters Counters) error {
	entities, errFn := StreamDrugBankDrugs(path)
	for rec := range entities {
		counters.Inc("drugbank_drugs")
		seen := make(map[string]bool, len(rec.Names))
		for _, name := range rec.Names {
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			addUnambiguousSynonym(cat, name, "DrugBank", func(c *Concept) bool {
				return c.EntityType == Drug
			}, counters, "drugbank_ambiguous_surface", "drugbank_synonyms_added")
		}
	}
	return errFn()
}

// EnrichFromMesh applies MeSH descriptor/term names to existing disease
// concepts.
func EnrichFromMesh(cat *Catalog, path string, counters Counters) error {
	entities, errFn := StreamMeshDescriptors(path)
	for rec := range entities {
		counters.Inc("mesh_descriptors")
		seen := make(map[string]bool, len(rec.Names))
		for _, name := range rec.Names {
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			addUnambiguousSynonym(cat, name, "MeSH", func(c *Concept) bool {
				return c.EntityType == Disease
			}, counters, "mesh_ambiguous_surface", "mesh_synonyms_added")
		}
	}
	return errFn()
}
