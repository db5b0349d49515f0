// ===========================================================================
//
// File Name:  main.go
//
// Stage 02: UMLS (MRREL) edge extractor.
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

	kgcore.Banner("stage 02: umls edges", version)

	outDir := filepath.Join(outRoot, version)
	mrrel := filepath.Join(rawRoot, "UMLS", "MRREL.RRF")
	catalogPath := filepath.Join(outDir, "entity_catalog.jsonl")

	if err := kgcore.EnsureFiles(mrrel, catalogPath); err != nil {
		kgcore.Fatalf("%v", err)
	}

	cat, err := kgcore.ReadCatalog(catalogPath)
	if err != nil {
		kgcore.Fatalf("reading catalog: %v", err)
	}

	counters := make(kgcore.Counters)
	edges, err := kgcore.BuildUMLSEdges(cat, mrrel, progressEvery, counters)
	if err != nil {
		kgcore.Fatalf("extracting UMLS edges: %v", err)
	}

	outPath := filepath.Join(outDir, "kg_edges.umls.csv")
	if _, err := kgcore.WriteEdgesCSV(outPath, edges); err != nil {
		kgcore.Fatalf("writing edges: %v", err)
	}

	report := &kgcore.StageReport{
		Stage:   "02_build_edges_umls",
		Version: version,
		Inputs:  map[string]string{"MRREL": mrrel, "entity_catalog": catalogPath},
		Outputs: map[string]string{"kg_edges_umls": outPath},
		Counts:  counters,
	}
	if err := kgcore.WriteStageReport(filepath.Join(outDir, "stage_02_report.json"), report); err != nil {
		kgcore.Fatalf("writing report: %v", err)
	}

	fmt.Fprintln(os.Stderr, kgcore.SummarizeCounter("[02] wrote "+outPath, "edge", len(edges)))
}
