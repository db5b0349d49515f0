package kgcore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/biokg/kgpipeline/kgcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWriter_CommitMakesDestVisible(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")

	w, err := kgcore.CreateAtomic(dest)
	require.NoError(t, err)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "dest must not exist before commit")

	_, err = w.WriteString("hello")
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	body, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no leftover temp file after commit")
}

func TestAtomicWriter_AbortLeavesNoFileAtDest(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")

	w, err := kgcore.CreateAtomic(dest)
	require.NoError(t, err)
	_, err = w.WriteString("partial")
	require.NoError(t, err)
	w.Abort()

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "abort must clean up the temp file")
}

func TestAtomicWriter_CommitIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")

	w, err := kgcore.CreateAtomic(dest)
	require.NoError(t, err)
	_, err = w.WriteString("data")
	require.NoError(t, err)
	require.NoError(t, w.Commit())
	require.NoError(t, w.Commit())
}
