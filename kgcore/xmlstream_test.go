package kgcore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/biokg/kgpipeline/kgcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamMeshDescriptors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "desc.xml")
	xmlBody := `<DescriptorRecordSet>
  <DescriptorRecord>
    <DescriptorName><String>Headache</String></DescriptorName>
    <ConceptList>
      <Concept>
        <TermList>
          <Term><String>Cephalgia</String></Term>
          <Term><String>Head Pain</String></Term>
        </TermList>
      </Concept>
    </ConceptList>
  </DescriptorRecord>
</DescriptorRecordSet>`
	require.NoError(t, os.WriteFile(path, []byte(xmlBody), 0o644))

	entities, errFn := kgcore.StreamMeshDescriptors(path)
	var all []kgcore.NamedEntity
	for e := range entities {
		all = append(all, e)
	}
	require.NoError(t, errFn())
	require.Len(t, all, 1)
	assert.ElementsMatch(t, []string{"Headache", "Cephalgia", "Head Pain"}, all[0].Names)
}

func TestStreamDrugBankDrugs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drugbank.xml")
	xmlBody := `<drugbank xmlns="http://www.drugbank.ca">
  <drug>
    <name>Acetaminophen</name>
    <brands><brand>Paracetamol</brand><brand>Tylenol</brand></brands>
    <synonyms><synonym>APAP</synonym></synonyms>
  </drug>
</drugbank>`
	require.NoError(t, os.WriteFile(path, []byte(xmlBody), 0o644))

	entities, errFn := kgcore.StreamDrugBankDrugs(path)
	var all []kgcore.NamedEntity
	for e := range entities {
		all = append(all, e)
	}
	require.NoError(t, errFn())
	require.Len(t, all, 1)
	assert.ElementsMatch(t, []string{"Acetaminophen", "Paracetamol", "Tylenol", "APAP"}, all[0].Names)
}

func TestStreamDrugBankDrugs_WrongNamespaceIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drugbank.xml")
	xmlBody := `<drugbank xmlns="http://example.com/not-drugbank">
  <drug><name>ShouldNotAppear</name></drug>
</drugbank>`
	require.NoError(t, os.WriteFile(path, []byte(xmlBody), 0o644))

	entities, errFn := kgcore.StreamDrugBankDrugs(path)
	var all []kgcore.NamedEntity
	for e := range entities {
		all = append(all, e)
	}
	require.NoError(t, errFn())
	assert.Empty(t, all)
}
