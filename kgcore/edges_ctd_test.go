package kgcore_test

import (
	"path/filepath"
	"testing"

	"github.com/biokg/kgpipeline/kgcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctdRow(chemical, disease, directEvidence, infScore string) []string {
	return []string{chemical, "chemID", "casRN", disease, directEvidence, "geneSymbol", "geneID", infScore}
}

func buildChemDiseaseCatalog(t *testing.T, dir string) *kgcore.Catalog {
	t.Helper()
	mrsty := filepath.Join(dir, "MRSTY.RRF")
	mrconso := filepath.Join(dir, "MRCONSO.RRF")
	writeLines(t, mrsty, []string{
		mrstyRow("C0000001", "T109"), // drug (chemical-compatible)
		mrstyRow("C0000002", "T047"), // disease
	})
	writeLines(t, mrconso, []string{
		mrconsoRow("C0000001", "ENG", "Y", "Warfarin"),
		mrconsoRow("C0000002", "ENG", "Y", "Hemorrhage"),
	})
	cat, _, err := kgcore.BuildCatalog(mrsty, mrconso, 0)
	require.NoError(t, err)
	return cat
}

func writeCSVRows(t *testing.T, path string, rows [][]string) {
	t.Helper()
	var lines []string
	for _, r := range rows {
		line := ""
		for i, f := range r {
			if i > 0 {
				line += ","
			}
			line += f
		}
		lines = append(lines, line)
	}
	writeLines(t, path, lines)
}

// TestBuildCTDEdges_TherapeuticEvidenceMapsToTreats is the extraction half
// of boundary scenario 6; merge_test.go covers the merge half.
func TestBuildCTDEdges_TherapeuticEvidenceMapsToTreats(t *testing.T) {
	dir := t.TempDir()
	cat := buildChemDiseaseCatalog(t, dir)

	ctdPath := filepath.Join(dir, "CTD_chemicals_diseases.csv")
	writeCSVRows(t, ctdPath, [][]string{
		ctdRow("Warfarin", "Hemorrhage", "therapeutic", "0.9"),
	})

	counters := make(kgcore.Counters)
	edges, err := kgcore.BuildCTDEdges(cat, ctdPath, 0, counters)
	require.NoError(t, err)
	require.Len(t, edges, 1)

	e := edges[0]
	assert.Equal(t, "drug_warfarin", e.Head)
	assert.Equal(t, kgcore.Treats, e.Relation)
	assert.Equal(t, "disease_hemorrhage", e.Tail)
	assert.Equal(t, 0.9, e.Score)
}

func TestBuildCTDEdges_NonTherapeuticMapsToAssociatedWithDefaultScore(t *testing.T) {
	dir := t.TempDir()
	cat := buildChemDiseaseCatalog(t, dir)

	ctdPath := filepath.Join(dir, "CTD_chemicals_diseases.csv")
	writeCSVRows(t, ctdPath, [][]string{
		ctdRow("Warfarin", "Hemorrhage", "marker/mechanism", ""),
	})

	counters := make(kgcore.Counters)
	edges, err := kgcore.BuildCTDEdges(cat, ctdPath, 0, counters)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, kgcore.AssociatedWith, edges[0].Relation)
	assert.Equal(t, 0.75, edges[0].Score)
}

func TestBuildCTDEdges_UnmappedChemicalAndDiseaseCounted(t *testing.T) {
	dir := t.TempDir()
	cat := buildChemDiseaseCatalog(t, dir)

	ctdPath := filepath.Join(dir, "CTD_chemicals_diseases.csv")
	writeCSVRows(t, ctdPath, [][]string{
		ctdRow("UnknownChem", "Hemorrhage", "therapeutic", "0.9"),
		ctdRow("Warfarin", "UnknownDisease", "therapeutic", "0.9"),
	})

	counters := make(kgcore.Counters)
	edges, err := kgcore.BuildCTDEdges(cat, ctdPath, 0, counters)
	require.NoError(t, err)
	assert.Empty(t, edges)
	assert.Equal(t, 1, counters["unmapped_chemical"])
	assert.Equal(t, 1, counters["unmapped_disease"])
}

func TestCTDLenientNumeric(t *testing.T) {
	dir := t.TempDir()
	cat := buildChemDiseaseCatalog(t, dir)

	cases := []struct {
		infScore  string
		wantScore float64
	}{
		{"0.9", 0.9},
		{"75", 75.0},  // no dot at all; lenient rule accepts a bare digit run and parses it literally
		{"1.2.3", 0.75}, // two dots after single removal: rejected, falls back to default
		{"1e-5", 0.75},  // scientific notation rejected by the lenient rule
		{"-0.5", 0.75},  // negative sign rejected
	}
	for _, c := range cases {
		ctdPath := filepath.Join(dir, "ctd_"+c.infScore+".csv")
		writeCSVRows(t, ctdPath, [][]string{
			ctdRow("Warfarin", "Hemorrhage", "therapeutic", c.infScore),
		})
		counters := make(kgcore.Counters)
		edges, err := kgcore.BuildCTDEdges(cat, ctdPath, 0, counters)
		require.NoError(t, err)
		require.Len(t, edges, 1)
		assert.Equal(t, c.wantScore, edges[0].Score, "infScore=%q", c.infScore)
	}
}
