// ===========================================================================
//
// File Name:  edges_umls.go
//
// ===========================================================================

package kgcore

import (
	"fmt"
	"sort"
	"strings"
)

// BuildUMLSEdges extracts TREATS/ADVERSE_EFFECT/CONTRAINDICATED_FOR/
// INTERACTS_WITH/ASSOCIATED_WITH edges from MRREL by mapping both CUIs to
// kg_ids via the catalog and applying the relation mapper and type gate.
// Score is always 1.0; evidence is "SAB:RELA" (or "SAB:REL" when RELA is
// blank).
func BuildUMLSEdges(cat *Catalog, mrrelPath string, progressEvery int, counters Counters) ([]*Edge, error) {
	seen := make(map[[3]string]bool)
	var edges []*Edge

	stream := StreamRRF(mrrelPath, progressEvery)
	for fields := range stream.Lines {
		counters.Inc("mrrel_rows")
		if len(fields) < 11 {
			counters.Inc("mrrel_rows_filtered")
			continue
		}
		cui1 := strings.ToUpper(strings.TrimSpace(fields[0]))
		rel := strings.ToUpper(strings.TrimSpace(fields[3]))
		cui2 := strings.ToUpper(strings.TrimSpace(fields[4]))
		rela := strings.TrimSpace(fields[7])
		sab := strings.TrimSpace(fields[10])

		pred, ok := MapRelation(rel, rela)
		if !ok {
			counters.Inc("filtered_relation")
			continue
		}

		h := cat.KgIDForCUI(cui1)
		t := cat.KgIDForCUI(cui2)
		if h == "" || t == "" {
			counters.Inc("unmapped_cui")
			continue
		}

		hc, tc := cat.Get(h), cat.Get(t)
		if hc == nil || tc == nil || !PassesTypeGate(hc.EntityType, pred, tc.EntityType) {
			counters.Inc("filtered_semantic_type")
			continue
		}

		key := [3]string{h, string(pred), t}
		if seen[key] {
			continue
		}
		seen[key] = true

		relaOrRel := rela
		if relaOrRel == "" {
			relaOrRel = rel
		}
		edges = append(edges, NewEdge(h, pred, t, "UMLS", 1.0, fmt.Sprintf("%s:%s", sab, relaOrRel)))
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}

	sort.Slice(edges, func(i, j int) bool { return edgeLess(edges[i], edges[j]) })
	counters["written"] = len(edges)
	return edges, nil
}

func edgeLess(a, b *Edge) bool {
	ka, kb := a.Key(), b.Key()
	return ka[0] < kb[0] || (ka[0] == kb[0] && (ka[1] < kb[1] || (ka[1] == kb[1] && ka[2] < kb[2])))
}
