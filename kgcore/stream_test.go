package kgcore_test

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/biokg/kgpipeline/kgcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainFields(t *testing.T, s *kgcore.FieldStream) [][]string {
	t.Helper()
	var all [][]string
	for f := range s.Lines {
		all = append(all, f)
	}
	require.NoError(t, s.Err())
	return all
}

func TestStreamRRF_SplitsOnPipe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "MRCONSO.RRF")
	writeLines(t, path, []string{mrconsoRow("C1", "ENG", "Y", "Aspirin")})

	rows := drainFields(t, kgcore.StreamRRF(path, 0))
	require.Len(t, rows, 1)
	assert.Equal(t, "C1", rows[0][0])
	assert.Equal(t, "Aspirin", rows[0][14])
}

func TestStreamTSV_SplitsOnTab(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drug_names.tsv")
	writeLines(t, path, []string{"CID000001\taspirin"})

	rows := drainFields(t, kgcore.StreamTSV(path, 0))
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"CID000001", "aspirin"}, rows[0])
}

func TestStreamCTDCSV_SkipsCommentsAndRecurringHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CTD_chemicals_diseases.csv")
	body := "# CTD dump, generated 2026-01-01\n" +
		"ChemicalName,ChemicalID,CasRN,DiseaseName,DirectEvidence\n" +
		"Warfarin,C1,rn,Hemorrhage,therapeutic\n" +
		"ChemicalName,ChemicalID,CasRN,DiseaseName,DirectEvidence\n" +
		"Aspirin,C2,rn,Fever,marker\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	rows := drainFields(t, kgcore.StreamCTDCSV(path, 0))
	require.Len(t, rows, 2)
	assert.Equal(t, "Warfarin", rows[0][0])
	assert.Equal(t, "Aspirin", rows[1][0])
}

func TestOpenAuto_TransparentGzipDecompression(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte("hello\nworld\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	rc, err := kgcore.OpenAuto(path)
	require.NoError(t, err)
	defer rc.Close()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", string(body))
}

func TestOpenAuto_MissingFile(t *testing.T) {
	_, err := kgcore.OpenAuto("/nonexistent/path/file.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, kgcore.ErrNotFound)
}

func TestEnsureFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.txt")
	require.NoError(t, os.WriteFile(present, []byte("x"), 0o644))

	assert.NoError(t, kgcore.EnsureFiles(present))

	err := kgcore.EnsureFiles(present, filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, kgcore.ErrNotFound)
}

func TestResolveCompressedOrPlain(t *testing.T) {
	dir := t.TempDir()
	gzPath := filepath.Join(dir, "CTD_chemicals_diseases.csv.gz")
	plainPath := filepath.Join(dir, "CTD_chemicals_diseases.csv")

	assert.Equal(t, plainPath, kgcore.ResolveCompressedOrPlain(gzPath))

	require.NoError(t, os.WriteFile(gzPath, []byte("x"), 0o644))
	assert.Equal(t, gzPath, kgcore.ResolveCompressedOrPlain(gzPath))
}

func TestResolveFileOrNamesakeDir(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "meddra_all_se.tsv")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0o644))
	assert.Equal(t, plain, kgcore.ResolveFileOrNamesakeDir(plain))

	nested := filepath.Join(dir, "nested_meddra_all_se.tsv")
	require.NoError(t, os.Mkdir(nested, 0o755))
	inner := filepath.Join(nested, "nested_meddra_all_se.tsv")
	require.NoError(t, os.WriteFile(inner, []byte("y"), 0o644))
	assert.Equal(t, inner, kgcore.ResolveFileOrNamesakeDir(nested))
}

func TestArchiveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "build_manifest.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"builder":"kgpipeline"}`), 0o644))

	destGz := filepath.Join(dir, "build_manifest.json.gz")
	require.NoError(t, kgcore.ArchiveFile(src, destGz))

	f, err := os.Open(destGz)
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, `{"builder":"kgpipeline"}`, string(body))
}
