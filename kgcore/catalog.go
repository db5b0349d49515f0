// ===========================================================================
//
// File Name:  catalog.go
//
// ===========================================================================

package kgcore

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Catalog is the in-memory entity catalog built by BuildCatalog and mutated
// in place by the enrichers in enrich.go, all within stage01 before
// entity_catalog.jsonl is written.
type Catalog struct {
	byKgID  map[string]*Concept
	cuiKg   map[string]string
	Surface SurfaceIndex
}

// Get returns the concept for a kg_id, or nil.
func (c *Catalog) Get(kgID string) *Concept { return c.byKgID[kgID] }

// KgIDForCUI returns the kg_id assigned to a CUI, or "" if none.
func (c *Catalog) KgIDForCUI(cui string) string { return c.cuiKg[strings.ToUpper(cui)] }

// Len returns the number of concepts currently in the catalog.
func (c *Catalog) Len() int { return len(c.byKgID) }

// SortedKgIDs returns every kg_id in ascending order, the emission order
// required for byte-stable re-runs.
func (c *Catalog) SortedKgIDs() []string {
	out := make([]string, 0, len(c.byKgID))
	for k := range c.byKgID {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// BuildCatalog runs a two-pass join of MRSTY and MRCONSO: pass A
// accumulates cui -> TUI set from MRSTY, pass B streams MRCONSO, classifies
// each CUI via ClassifyEntity, drops Other entities, and assigns/merges
// concepts. It returns the catalog and the Counters for the stage
// report's "counts" block.
func BuildCatalog(mrstyPath, mrconsoPath string, progressEvery int) (*Catalog, Counters, error) {
	counters := make(Counters)

	cuiTuis := make(map[string]map[string]bool)
	sty := StreamRRF(mrstyPath, progressEvery)
	for fields := range sty.Lines {
		counters.Inc("mrsty_rows")
		if len(fields) < 4 {
			counters.Inc("mrsty_rows_filtered")
			continue
		}
		cui := strings.ToUpper(strings.TrimSpace(fields[0]))
		tui := strings.ToUpper(strings.TrimSpace(fields[1]))
		if cui == "" || tui == "" {
			counters.Inc("mrsty_rows_filtered")
			continue
		}
		set, ok := cuiTuis[cui]
		if !ok {
			set = make(map[string]bool)
			cuiTuis[cui] = set
		}
		set[tui] = true
	}
	if err := sty.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading MRSTY: %w", err)
	}

	cat := &Catalog{
		byKgID: make(map[string]*Concept),
		cuiKg:  make(map[string]string),
	}

	conso := StreamRRF(mrconsoPath, progressEvery)
	for fields := range conso.Lines {
		counters.Inc("mrconso_rows")
		if len(fields) < 15 {
			counters.Inc("mrconso_rows_filtered")
			continue
		}
		cui := strings.ToUpper(strings.TrimSpace(fields[0]))
		lat := strings.ToUpper(strings.TrimSpace(fields[1]))
		isPref := strings.ToUpper(strings.TrimSpace(fields[6])) == "Y"
		text := strings.TrimSpace(fields[14])
		if cui == "" || text == "" {
			counters.Inc("mrconso_rows_filtered")
			continue
		}
		if lat != "ENG" {
			counters.Inc("mrconso_non_english")
			continue
		}

		et := ClassifyEntity(cuiTuis[cui])
		if et == Other {
			counters.Inc("mrconso_other_type")
			continue
		}

		if kgID, seen := cat.cuiKg[cui]; seen {
			concept := cat.byKgID[kgID]
			if isPref {
				concept.CanonicalName = text
			}
			concept.AddSynonym(text)
			continue
		}

		kgID := KgIDFor(cui, text, et)
		cat.byKgID[kgID] = NewConcept(kgID, cui, et, text)
		cat.cuiKg[cui] = kgID
		counters.Inc("entities_created")
	}
	if err := conso.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading MRCONSO: %w", err)
	}

	cat.Surface = NewSurfaceIndex()
	for kgID, concept := range cat.byKgID {
		for s := range concept.Synonyms {
			cat.Surface.Add(NormalizeSurface(s), kgID)
		}
	}

	counters["entities_written"] = cat.Len()
	return cat, counters, nil
}

// catalogRow is the fixed key order entity_catalog.jsonl lines are encoded
// with: kg_id, cui, entity_type, canonical_name, synonyms, sources.
type catalogRow struct {
	KgID          string   `json:"kg_id"`
	CUI           string   `json:"cui"`
	EntityType    string   `json:"entity_type"`
	CanonicalName string   `json:"canonical_name"`
	Synonyms      []string `json:"synonyms"`
	Sources       []string `json:"sources"`
}

// WriteCatalog emits entity_catalog.jsonl: one JSON object per line, key
// order fixed, concepts in sorted kg_id order, '\n' line endings, no
// ASCII-escaping of non-ASCII text.
func WriteCatalog(path string, cat *Catalog) error {
	w, err := CreateAtomic(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, kgID := range cat.SortedKgIDs() {
		c := cat.byKgID[kgID]
		row := catalogRow{
			KgID:          c.KgID,
			CUI:           c.CUI,
			EntityType:    c.EntityType.String(),
			CanonicalName: c.CanonicalName,
			Synonyms:      c.SortedSynonyms(),
			Sources:       c.SortedSources(),
		}
		if err := enc.Encode(&row); err != nil {
			w.Abort()
			return fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}
	}
	return w.Commit()
}

// ReadCatalog loads entity_catalog.jsonl back into memory, as the edge
// extractors and dictionary emitter do — there is no in-memory handoff
// between stage processes, only reload from disk.
func ReadCatalog(path string) (*Catalog, error) {
	f, err := OpenAuto(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cat := &Catalog{
		byKgID:  make(map[string]*Concept),
		cuiKg:   make(map[string]string),
		Surface: NewSurfaceIndex(),
	}
	dec := json.NewDecoder(f)
	for dec.More() {
		var row catalogRow
		if err := dec.Decode(&row); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		et := entityTypeFromString(row.EntityType)
		c := &Concept{
			KgID:          row.KgID,
			CUI:           row.CUI,
			EntityType:    et,
			CanonicalName: row.CanonicalName,
			Synonyms:      make(map[string]bool, len(row.Synonyms)),
			Sources:       make(map[string]bool, len(row.Sources)),
		}
		for _, s := range row.Synonyms {
			c.Synonyms[s] = true
			cat.Surface.Add(NormalizeSurface(s), c.KgID)
		}
		for _, s := range row.Sources {
			c.Sources[s] = true
		}
		cat.byKgID[c.KgID] = c
		if c.CUI != "" {
			cat.cuiKg[strings.ToUpper(c.CUI)] = c.KgID
		}
	}
	return cat, nil
}

func entityTypeFromString(s string) EntityType {
	switch s {
	case "drug":
		return Drug
	case "disease":
		return Disease
	case "chemical":
		return Chemical
	case "gene":
		return Gene
	default:
		return Other
	}
}
