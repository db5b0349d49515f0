// ===========================================================================
//
// File Name:  types.go
//
// ===========================================================================

// Package kgcore implements the multi-source ingestion, typed-concept
// deduplication, provenance-safe synonym enrichment, and edge fusion
// pipeline that builds a versioned biomedical knowledge graph artifact
// directory from UMLS, RxNorm, MeSH, DrugBank, SIDER, and CTD source files.
package kgcore

import "sort"

// EntityType is the small tagged variant that a UMLS semantic type set
// collapses to. Other is never emitted to the catalog; it exists only so
// the classifier's match is total.
type EntityType int

const (
	Other EntityType = iota
	Drug
	Disease
	Chemical
	Gene
)

// String renders the wire form used in entity_catalog.jsonl and in kg_id.
func (e EntityType) String() string {
	switch e {
	case Drug:
		return "drug"
	case Disease:
		return "disease"
	case Chemical:
		return "chemical"
	case Gene:
		return "gene"
	default:
		return "other"
	}
}

// Predicate is the canonical relation vocabulary every edge is mapped onto.
type Predicate string

const (
	Treats             Predicate = "TREATS"
	AdverseEffect      Predicate = "ADVERSE_EFFECT"
	ContraindicatedFor Predicate = "CONTRAINDICATED_FOR"
	InteractsWith      Predicate = "INTERACTS_WITH"
	AssociatedWith     Predicate = "ASSOCIATED_WITH"
)

// Concept is one entry of the entity catalog.
// kg_id, once assigned for a cui within a build, never changes.
type Concept struct {
	KgID           string
	CUI            string
	EntityType     EntityType
	CanonicalName  string
	Synonyms       map[string]bool
	Sources        map[string]bool
}

// NewConcept seeds a fresh catalog entry the first time a CUI is seen.
func NewConcept(kgID, cui string, et EntityType, canonical string) *Concept {
	c := &Concept{
		KgID:          kgID,
		CUI:           cui,
		EntityType:    et,
		CanonicalName: canonical,
		Synonyms:      make(map[string]bool),
		Sources:       make(map[string]bool),
	}
	c.Synonyms[canonical] = true
	c.Sources["UMLS"] = true
	return c
}

// AddSynonym adds a surface to the synonym set; the canonical name is
// seeded in by NewConcept and is always itself a member.
func (c *Concept) AddSynonym(s string) {
	c.Synonyms[s] = true
}

// AddSource records a contributing source tag.
func (c *Concept) AddSource(s string) {
	c.Sources[s] = true
}

// SortedSynonyms returns synonyms sorted ascending, duplicate-free by
// construction of the underlying set.
func (c *Concept) SortedSynonyms() []string {
	out := make([]string, 0, len(c.Synonyms))
	for s := range c.Synonyms {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// SortedSources returns the source tag set sorted ascending.
func (c *Concept) SortedSources() []string {
	out := make([]string, 0, len(c.Sources))
	for s := range c.Sources {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Edge is one row of a per-source or merged edge file. Identity is
// (Head, Relation, Tail); Source and Evidence are pipe-joined sorted sets
// once emitted to disk.
type Edge struct {
	Head      string
	Relation  Predicate
	Tail      string
	Source    map[string]bool
	Score     float64
	Evidence  map[string]bool
}

// NewEdge builds a single-source edge ready for emission.
func NewEdge(head string, rel Predicate, tail, source string, score float64, evidence string) *Edge {
	e := &Edge{
		Head:     head,
		Relation: rel,
		Tail:     tail,
		Source:   map[string]bool{source: true},
		Score:    score,
		Evidence: map[string]bool{evidence: true},
	}
	return e
}

// Key is the (h, r, t) edge identity used for dedup and sorting.
func (e *Edge) Key() [3]string {
	return [3]string{e.Head, string(e.Relation), e.Tail}
}

// MergeFrom folds another edge sharing this edge's key into it: union of
// Source and Evidence tokens, max of Score.
func (e *Edge) MergeFrom(other *Edge) {
	for s := range other.Source {
		e.Source[s] = true
	}
	for s := range other.Evidence {
		e.Evidence[s] = true
	}
	if other.Score > e.Score {
		e.Score = other.Score
	}
}

func sortedJoin(set map[string]bool, sep string) string {
	out := make([]string, 0, len(set))
	for s := range set {
		if s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	joined := ""
	for i, s := range out {
		if i > 0 {
			joined += sep
		}
		joined += s
	}
	return joined
}

// SourceField renders the pipe-joined, sorted Source set.
func (e *Edge) SourceField() string { return sortedJoin(e.Source, "|") }

// EvidenceField renders the pipe-joined, sorted Evidence set.
func (e *Edge) EvidenceField() string { return sortedJoin(e.Evidence, "|") }

// SurfaceIndex is the ephemeral by_norm_surface map: normalized surface to
// the set of kg_ids that own it. A surface owning more than one kg_id is
// ambiguous and unusable for enrichment.
type SurfaceIndex map[string]map[string]bool

// NewSurfaceIndex returns an empty index.
func NewSurfaceIndex() SurfaceIndex {
	return make(SurfaceIndex)
}

// Add records that normalized surface n is owned by kgID.
func (idx SurfaceIndex) Add(n, kgID string) {
	hits, ok := idx[n]
	if !ok {
		hits = make(map[string]bool)
		idx[n] = hits
	}
	hits[kgID] = true
}

// Unambiguous returns the single kg_id owning n, and whether exactly one
// kg_id owns it.
func (idx SurfaceIndex) Unambiguous(n string) (string, bool) {
	hits, ok := idx[n]
	if !ok || len(hits) != 1 {
		return "", false
	}
	for kgID := range hits {
		return kgID, true
	}
	return "", false
}

// All returns every kg_id registered for n, used by SIDER/CTD surface
// resolution, which tolerates multiple candidate targets per side.
func (idx SurfaceIndex) All(n string) []string {
	hits, ok := idx[n]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(hits))
	for kgID := range hits {
		out = append(out, kgID)
	}
	sort.Strings(out)
	return out
}

// Counters is the per-cause recoverable-error tally a stage accumulates and
// reports in its stage_NN_report.json "counts" block.
type Counters map[string]int

// Inc increments a named counter.
func (c Counters) Inc(name string) {
	c[name]++
}

// Add increments a named counter by n.
func (c Counters) Add(name string, n int) {
	c[name] += n
}
