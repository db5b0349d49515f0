package kgcore_test

import (
	"testing"

	"github.com/biokg/kgpipeline/kgcore"
	"github.com/stretchr/testify/assert"
)

func tuiSet(tuis ...string) map[string]bool {
	m := make(map[string]bool, len(tuis))
	for _, t := range tuis {
		m[t] = true
	}
	return m
}

func TestClassifyEntity(t *testing.T) {
	assert.Equal(t, kgcore.Drug, kgcore.ClassifyEntity(tuiSet("T109")))
	assert.Equal(t, kgcore.Disease, kgcore.ClassifyEntity(tuiSet("T047")))
	assert.Equal(t, kgcore.Chemical, kgcore.ClassifyEntity(tuiSet("T103")))
	assert.Equal(t, kgcore.Gene, kgcore.ClassifyEntity(tuiSet("T028")))
	assert.Equal(t, kgcore.Other, kgcore.ClassifyEntity(tuiSet("T999")))
	assert.Equal(t, kgcore.Other, kgcore.ClassifyEntity(nil))
}

func TestClassifyEntity_DrugWinsOverChemical(t *testing.T) {
	// T109 and T110 sit in both the drug and chemical tables; drug must win.
	assert.Equal(t, kgcore.Drug, kgcore.ClassifyEntity(tuiSet("T109", "T103")))
	assert.Equal(t, kgcore.Drug, kgcore.ClassifyEntity(tuiSet("T110", "T111")))
}

func TestEntityType_String(t *testing.T) {
	assert.Equal(t, "drug", kgcore.Drug.String())
	assert.Equal(t, "disease", kgcore.Disease.String())
	assert.Equal(t, "chemical", kgcore.Chemical.String())
	assert.Equal(t, "gene", kgcore.Gene.String())
	assert.Equal(t, "other", kgcore.Other.String())
}
