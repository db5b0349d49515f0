// ===========================================================================
//
// File Name:  edges_sider.go
//
// ===========================================================================

package kgcore

import (
	"fmt"
	"sort"
	"strings"
)

// buildTypedSurfaceIndexes builds two fresh surface indexes from the
// catalog's synonyms: one for drug∪chemical concepts, one for disease
// concepts. These are independent of the catalog's own by-normalized-
// surface index, which is only used during enrichment — edge extractors
// rebuild their own typed indexes from the reloaded catalog.
func buildTypedSurfaceIndexes(cat *Catalog) (drugIdx, diseaseIdx SurfaceIndex) {
	drugIdx = NewSurfaceIndex()
	diseaseIdx = NewSurfaceIndex()
	for _, kgID := range cat.SortedKgIDs() {
		c := cat.Get(kgID)
		for s := range c.Synonyms {
			n := NormalizeSurface(s)
			switch {
			case c.EntityType == Drug || c.EntityType == Chemical:
				drugIdx.Add(n, kgID)
			case c.EntityType == Disease:
				diseaseIdx.Add(n, kgID)
			}
		}
	}
	return drugIdx, diseaseIdx
}

// BuildSIDEREdges extracts ADVERSE_EFFECT edges: SIDER side-effect rows
// resolve STITCH id to drug name, drug name to normalized surface to
// kg_id set (drug/chemical only), and effect text to normalized surface to
// kg_id set (disease only); every drug×effect pair in the cross product is
// emitted.
func BuildSIDEREdges(cat *Catalog, drugNamesPath, meddraPath string, progressEvery int, counters Counters) ([]*Edge, error) {
	drugIdx, diseaseIdx := buildTypedSurfaceIndexes(cat)

	stitchToName := make(map[string]string)
	dn := StreamTSV(drugNamesPath, progressEvery)
	for fields := range dn.Lines {
		counters.Inc("drug_names_rows")
		if len(fields) < 2 {
			continue
		}
		stitchToName[strings.TrimSpace(fields[0])] = strings.TrimSpace(fields[1])
	}
	if err := dn.Err(); err != nil {
		return nil, err
	}

	seen := make(map[[3]string]bool)
	var edges []*Edge

	se := StreamTSV(meddraPath, progressEvery)
	for fields := range se.Lines {
		counters.Inc("meddra_rows")
		if len(fields) < 6 {
			continue
		}
		stitch := strings.TrimSpace(fields[0])
		if stitch == "" {
			stitch = strings.TrimSpace(fields[1])
		}
		effect := strings.TrimSpace(fields[len(fields)-1])
		drugName := stitchToName[stitch]
		if drugName == "" || effect == "" {
			continue
		}

		dHits := drugIdx.All(NormalizeSurface(drugName))
		eHits := diseaseIdx.All(NormalizeSurface(effect))
		if len(dHits) == 0 {
			counters.Inc("unmapped_drug")
			continue
		}
		if len(eHits) == 0 {
			counters.Inc("unmapped_effect")
			continue
		}

		for _, d := range dHits {
			for _, e := range eHits {
				key := [3]string{d, string(AdverseEffect), e}
				if seen[key] {
					continue
				}
				seen[key] = true
				edges = append(edges, NewEdge(d, AdverseEffect, e, "SIDER", 0.9,
					fmt.Sprintf("%s -> %s", drugName, effect)))
			}
		}
	}
	if err := se.Err(); err != nil {
		return nil, err
	}

	sort.Slice(edges, func(i, j int) bool { return edgeLess(edges[i], edges[j]) })
	counters["written"] = len(edges)
	return edges, nil
}
