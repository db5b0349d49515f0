package kgcore_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/biokg/kgpipeline/kgcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDictAndOverlay_SplitsBaseAndExtraSynonyms(t *testing.T) {
	dir := t.TempDir()
	mrsty := filepath.Join(dir, "MRSTY.RRF")
	mrconso := filepath.Join(dir, "MRCONSO.RRF")
	writeLines(t, mrsty, []string{mrstyRow("C0000001", "T109")})
	writeLines(t, mrconso, []string{
		mrconsoRow("C0000001", "ENG", "Y", "Aspirin"),
		mrconsoRow("C0000001", "ENG", "N", "Acetylsalicylic Acid"),
	})
	cat, _, err := kgcore.BuildCatalog(mrsty, mrconso, 0)
	require.NoError(t, err)

	kgID := cat.KgIDForCUI("C0000001")
	cat.Get(kgID).AddSynonym("ASA")

	counters := make(kgcore.Counters)
	base, overlay, err := kgcore.BuildDictAndOverlay(cat, mrconso, 0, counters)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Aspirin", "Acetylsalicylic Acid"}, base[kgID])
	assert.ElementsMatch(t, []string{"ASA"}, overlay[kgID])
}

func TestValidateOverlay_RejectsKeyNotInBase(t *testing.T) {
	base := map[string][]string{"drug_a": {"Aspirin"}}
	overlay := map[string][]string{"drug_b": {"Extra"}}

	err := kgcore.ValidateOverlay(base, overlay, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, kgcore.ErrSchemaViolation))
}

func TestValidateOverlay_AllowNewKeysPermitsOverlayOnlyKey(t *testing.T) {
	base := map[string][]string{"drug_a": {"Aspirin"}}
	overlay := map[string][]string{"drug_b": {"Extra"}}

	err := kgcore.ValidateOverlay(base, overlay, true)
	assert.NoError(t, err)
}

func TestValidateOverlay_RejectsOverlapWithBase(t *testing.T) {
	base := map[string][]string{"drug_a": {"Aspirin"}}
	overlay := map[string][]string{"drug_a": {"Aspirin"}}

	err := kgcore.ValidateOverlay(base, overlay, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, kgcore.ErrSchemaViolation))
}

func TestValidateOverlay_DisjointSubsetPasses(t *testing.T) {
	base := map[string][]string{"drug_a": {"Aspirin"}}
	overlay := map[string][]string{"drug_a": {"ASA"}}

	assert.NoError(t, kgcore.ValidateOverlay(base, overlay, false))
}

func TestTopOverlayByCount_OrdersByCountThenKgID(t *testing.T) {
	overlay := map[string][]string{
		"drug_a": {"x"},
		"drug_b": {"x", "y"},
		"drug_c": {"x", "y"},
	}
	top := kgcore.TopOverlayByCount(overlay, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "drug_b\t2", top[0])
	assert.Equal(t, "drug_c\t2", top[1])
}

func TestWriteDictJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "umls_dict.txt")
	dict := map[string][]string{"drug_a": {"Aspirin", "ASA"}}
	require.NoError(t, kgcore.WriteDictJSON(path, dict))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string][]string
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, dict, got)
}
