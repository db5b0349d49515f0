// ===========================================================================
//
// File Name:  merge.go
//
// ===========================================================================

package kgcore

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
)

var mergedHeader = []string{"head", "relation", "tail", "source", "score", "evidence"}

// MergeEdges fuses the three per-source edge files keyed by (h, r, t),
// unioning source and evidence tokens and taking the max score on
// collision. It mirrors the nested-map "fuse records by key, sort
// keys, emit" idiom eutils/merge.go uses for its own record fusion.
func MergeEdges(paths []string, counters Counters) ([]*Edge, error) {
	merged := make(map[[3]string]*Edge)
	seen := 0

	for _, p := range paths {
		edges, err := ReadEdgesCSV(p)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			seen++
			key := e.Key()
			if existing, ok := merged[key]; ok {
				existing.MergeFrom(e)
			} else {
				merged[key] = e
			}
		}
	}

	keys := make([][3]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		return a[0] < b[0] || (a[0] == b[0] && (a[1] < b[1] || (a[1] == b[1] && a[2] < b[2])))
	})

	out := make([]*Edge, 0, len(keys))
	for _, k := range keys {
		out = append(out, merged[k])
	}

	counters["rows_seen"] = seen
	counters["rows_written"] = len(out)
	return out, nil
}

// WriteMergedEdges writes the merged edge set to path, formatting score to
// four fractional digits and pipe-joining source/evidence sets, sorted and
// unique. Edges must already be in (head, relation, tail)
// order.
func WriteMergedEdges(path string, edges []*Edge) error {
	w, err := CreateAtomic(path)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(mergedHeader); err != nil {
		w.Abort()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	for _, e := range edges {
		row := []string{
			e.Head,
			string(e.Relation),
			e.Tail,
			e.SourceField(),
			strconv.FormatFloat(e.Score, 'f', 4, 64),
			e.EvidenceField(),
		}
		if err := cw.Write(row); err != nil {
			w.Abort()
			return fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		w.Abort()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return w.Commit()
}
