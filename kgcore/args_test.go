package kgcore_test

import (
	"testing"

	"github.com/biokg/kgpipeline/kgcore"
	"github.com/stretchr/testify/assert"
)

func TestGetStringArg_SpaceAndEqualsForms(t *testing.T) {
	args := []string{"--raw_root", "/data/raw", "--version=2026-07-31"}
	assert.Equal(t, "/data/raw", kgcore.GetStringArg(args, "raw_root"))
	assert.Equal(t, "2026-07-31", kgcore.GetStringArg(args, "version"))
	assert.Equal(t, "", kgcore.GetStringArg(args, "missing"))
}

func TestGetStringArg_TrailingFlagWithNoValue(t *testing.T) {
	args := []string{"--raw_root"}
	assert.Equal(t, "", kgcore.GetStringArg(args, "raw_root"))
}

func TestGetIntArg(t *testing.T) {
	args := []string{"--progress_every", "10000", "--top=20", "--bad", "notanumber"}
	assert.Equal(t, 10000, kgcore.GetIntArg(args, "progress_every", 0))
	assert.Equal(t, 20, kgcore.GetIntArg(args, "top", 0))
	assert.Equal(t, 5, kgcore.GetIntArg(args, "bad", 5))
	assert.Equal(t, 99, kgcore.GetIntArg(args, "absent", 99))
}

func TestHasFlag(t *testing.T) {
	args := []string{"--allow_overlay_new_keys", "--out_root", "/out"}
	assert.True(t, kgcore.HasFlag(args, "allow_overlay_new_keys"))
	assert.False(t, kgcore.HasFlag(args, "missing"))
}
