// ===========================================================================
//
// File Name:  edgefile.go
//
// ===========================================================================

package kgcore

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// perSourceHeader is the column set for a single source's edge file. The
// merged file uses the longer column names instead; this split follows
// original_source/kb/build/common.py's write_edges_csv, which per-source
// stages use verbatim, versus 05_merge_edges.py, which writes its own
// "head,relation,tail,..." header.
var perSourceHeader = []string{"h", "r", "t", "source", "score", "evidence"}

// WriteEdgesCSV writes edges, already deduplicated by the caller within a
// single source, to a per-source edge file in the column order above. Rows
// are written in the order given; callers sort by key before calling this
// so re-runs are byte-stable.
func WriteEdgesCSV(path string, edges []*Edge) (int, error) {
	w, err := CreateAtomic(path)
	if err != nil {
		return 0, err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(perSourceHeader); err != nil {
		w.Abort()
		return 0, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	for _, e := range edges {
		row := []string{
			e.Head,
			string(e.Relation),
			e.Tail,
			e.SourceField(),
			strconv.FormatFloat(e.Score, 'f', -1, 64),
			e.EvidenceField(),
		}
		if err := cw.Write(row); err != nil {
			w.Abort()
			return 0, fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		w.Abort()
		return 0, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := w.Commit(); err != nil {
		return 0, err
	}
	return len(edges), nil
}

// edgeColumnAliases lets the merge reader accept either short (h, r, t) or
// long (head, relation, tail) column names, so stage05 can also re-merge an
// already-merged file.
var edgeColumnAliases = map[string][]string{
	"h": {"h", "head"},
	"r": {"r", "relation"},
	"t": {"t", "tail"},
}

// ReadEdgesCSV reads an edge file written by WriteEdgesCSV or by the
// merger itself, yielding one Edge per row. Malformed score fields default
// to 1.0, matching the merger's tolerant reader (original_source
// kb/build/05_merge_edges.py's _read_edges).
func ReadEdgesCSV(path string) ([]*Edge, error) {
	f, err := OpenAuto(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	col := func(canonical string) (int, bool) {
		for _, alias := range edgeColumnAliases[canonical] {
			if i, ok := index[alias]; ok {
				return i, true
			}
		}
		return 0, false
	}
	hIdx, hOK := col("h")
	rIdx, rOK := col("r")
	tIdx, tOK := col("t")
	if !hOK || !rOK || !tOK {
		return nil, fmt.Errorf("%s: missing head/relation/tail column", path)
	}
	sIdx, sOK := index["source"]
	pIdx, pOK := index["score"]
	eIdx, eOK := index["evidence"]

	var edges []*Edge
	for {
		row, err := r.Read()
		if err != nil {
			break
		}
		h := strings.TrimSpace(field(row, hIdx))
		rel := strings.TrimSpace(field(row, rIdx))
		t := strings.TrimSpace(field(row, tIdx))
		if h == "" || rel == "" || t == "" {
			continue
		}
		source := ""
		if sOK {
			source = strings.TrimSpace(field(row, sIdx))
		}
		score := 1.0
		if pOK {
			if v, err := strconv.ParseFloat(strings.TrimSpace(field(row, pIdx)), 64); err == nil {
				score = v
			}
		}
		evidence := ""
		if eOK {
			evidence = strings.TrimSpace(field(row, eIdx))
		}
		e := &Edge{
			Head:     h,
			Relation: Predicate(rel),
			Tail:     t,
			Source:   splitNonEmpty(source, "|"),
			Score:    score,
			Evidence: splitNonEmpty(evidence, "|"),
		}
		edges = append(edges, e)
	}
	return edges, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func splitNonEmpty(s, sep string) map[string]bool {
	out := make(map[string]bool)
	if s == "" {
		return out
	}
	for _, tok := range strings.Split(s, sep) {
		if tok != "" {
			out[tok] = true
		}
	}
	return out
}
