// ===========================================================================
//
// File Name:  edges_ctd.go
//
// ===========================================================================

package kgcore

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ctdLenientNumeric replicates the deliberately lenient numeric test CTD's
// inference-score column is parsed with: the first '.'
// is removed and the remainder must be all digits. "1.2.3" is rejected
// (two dots survive the single removal), as are negative and scientific
// forms; a caller depending on scientific-notation scores will see them
// fall back to the 0.75 default. Flagged for review, not changed here.
func ctdLenientNumeric(s string) bool {
	if s == "" {
		return false
	}
	t := s
	if i := strings.IndexByte(s, '.'); i >= 0 {
		t = s[:i] + s[i+1:]
	}
	if t == "" {
		return false
	}
	for _, r := range t {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// BuildCTDEdges extracts TREATS/ASSOCIATED_WITH edges from
// CTD_chemicals_diseases.csv[.gz]: chemical and disease names are
// normalized and resolved against the catalog's typed surface indexes, the
// predicate comes from MapCTDRelation applied to DirectEvidence, and score
// is the parsed InferenceScore or 0.75.
func BuildCTDEdges(cat *Catalog, ctdPath string, progressEvery int, counters Counters) ([]*Edge, error) {
	chemIdx, diseaseIdx := buildTypedSurfaceIndexes(cat)

	seen := make(map[[3]string]bool)
	var edges []*Edge

	stream := StreamCTDCSV(ctdPath, progressEvery)
	for row := range stream.Lines {
		counters.Inc("ctd_rows")
		if len(row) < 6 {
			counters.Inc("ctd_rows_filtered")
			continue
		}
		chemicalName := strings.TrimSpace(row[0])
		diseaseName := strings.TrimSpace(row[3])
		directEvidence := strings.ToLower(strings.TrimSpace(row[4]))
		infScore := ""
		if len(row) > 7 {
			infScore = strings.TrimSpace(row[7])
		}

		chemHits := chemIdx.All(NormalizeSurface(chemicalName))
		diseaseHits := diseaseIdx.All(NormalizeSurface(diseaseName))
		if len(chemHits) == 0 {
			counters.Inc("unmapped_chemical")
			continue
		}
		if len(diseaseHits) == 0 {
			counters.Inc("unmapped_disease")
			continue
		}

		rel := MapCTDRelation(directEvidence)
		score := 0.75
		if ctdLenientNumeric(infScore) {
			if v, err := strconv.ParseFloat(infScore, 64); err == nil {
				score = v
			}
		}

		for _, h := range chemHits {
			for _, t := range diseaseHits {
				key := [3]string{h, string(rel), t}
				if seen[key] {
					continue
				}
				seen[key] = true
				edges = append(edges, NewEdge(h, rel, t, "CTD", score,
					fmt.Sprintf("%s -> %s (%s)", chemicalName, diseaseName, directEvidence)))
			}
		}
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}

	sort.Slice(edges, func(i, j int) bool { return edgeLess(edges[i], edges[j]) })
	counters["written"] = len(edges)
	return edges, nil
}
