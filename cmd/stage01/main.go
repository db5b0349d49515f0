// ===========================================================================
//
// File Name:  main.go
//
// Stage 01: entity catalog builder and synonym enricher.
//
// ===========================================================================

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/biokg/kgpipeline/kgcore"
)

func main() {
	args := os.Args[1:]
	rawRoot := kgcore.GetStringArg(args, "raw_root")
	outRoot := kgcore.GetStringArg(args, "out_root")
	version := kgcore.GetStringArg(args, "version")
	progressEvery := kgcore.GetIntArg(args, "progress_every", 500000)

	if rawRoot == "" || outRoot == "" || version == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --raw_root, --out_root, and --version are required")
		os.Exit(1)
	}

	kgcore.Banner("stage 01: entity catalog", version)

	outDir := filepath.Join(outRoot, version)
	umConso := filepath.Join(rawRoot, "UMLS", "MRCONSO.RRF")
	umSty := filepath.Join(rawRoot, "UMLS", "MRSTY.RRF")
	rxConso := filepath.Join(rawRoot, "RxNorm", "RXNCONSO.RRF")
	meshXML := filepath.Join(rawRoot, "Mesh", "desc2025.xml")
	drugbankXML := filepath.Join(rawRoot, "DrugBank", "drugbank.xml")

	if err := kgcore.EnsureFiles(umConso, umSty, rxConso, meshXML, drugbankXML); err != nil {
		kgcore.Fatalf("%v", err)
	}

	cat, counters, err := kgcore.BuildCatalog(umSty, umConso, progressEvery)
	if err != nil {
		kgcore.Fatalf("building catalog: %v", err)
	}
	kgcore.WarnIfMemoryTight(cat.Len())

	if err := kgcore.EnrichFromRxNorm(cat, rxConso, progressEvery, counters); err != nil {
		kgcore.Fatalf("enriching from RxNorm: %v", err)
	}
	if err := kgcore.EnrichFromDrugBank(cat, drugbankXML, counters); err != nil {
		kgcore.Fatalf("enriching from DrugBank: %v", err)
	}
	if err := kgcore.EnrichFromMesh(cat, meshXML, counters); err != nil {
		kgcore.Fatalf("enriching from MeSH: %v", err)
	}

	catalogPath := filepath.Join(outDir, "entity_catalog.jsonl")
	if err := kgcore.WriteCatalog(catalogPath, cat); err != nil {
		kgcore.Fatalf("writing catalog: %v", err)
	}

	report := &kgcore.StageReport{
		Stage:   "01_build_entity_catalog",
		Version: version,
		Inputs: map[string]string{
			"MRCONSO":      umConso,
			"MRSTY":        umSty,
			"RXNCONSO":     rxConso,
			"MeSH_XML":     meshXML,
			"DrugBank_XML": drugbankXML,
		},
		Outputs: map[string]string{"entity_catalog": catalogPath},
		Counts:  counters,
	}
	if err := kgcore.WriteStageReport(filepath.Join(outDir, "stage_01_report.json"), report); err != nil {
		kgcore.Fatalf("writing report: %v", err)
	}

	fmt.Fprintln(os.Stderr, kgcore.SummarizeCounter("[01] wrote "+catalogPath, "entity", counters["entities_written"]))
}
