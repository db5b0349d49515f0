package kgcore_test

import (
	"testing"

	"github.com/biokg/kgpipeline/kgcore"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeSurface(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Aspirin  ", "aspirin"},
		{"Acetylsalicylic   Acid", "acetylsalicylic acid"},
		{"Co-Q10", "co-q10"},
		{"\tTabs\nHere", "tabs here"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, kgcore.NormalizeSurface(c.in), "input=%q", c.in)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Acetylsalicylic Acid", "acetylsalicylic_acid"},
		{"  Warfarin  ", "warfarin"},
		{"A/B (C)", "a_b_c"},
		{"!!!", "unknown"},
		{"", "unknown"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, kgcore.Slugify(c.in), "input=%q", c.in)
	}
}
