// ===========================================================================
//
// File Name:  main.go
//
// Stage 04: CTD chemical-disease edge extractor.
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

	kgcore.Banner("stage 04: ctd edges", version)

	outDir := filepath.Join(outRoot, version)
	ctdBase := filepath.Join(rawRoot, "CTD", "CTD_chemicals_diseases.csv.gz")
	ctdPath := kgcore.ResolveCompressedOrPlain(ctdBase)
	catalogPath := filepath.Join(outDir, "entity_catalog.jsonl")

	if err := kgcore.EnsureFiles(ctdPath, catalogPath); err != nil {
		kgcore.Fatalf("%v", err)
	}

	cat, err := kgcore.ReadCatalog(catalogPath)
	if err != nil {
		kgcore.Fatalf("reading catalog: %v", err)
	}

	counters := make(kgcore.Counters)
	edges, err := kgcore.BuildCTDEdges(cat, ctdPath, progressEvery, counters)
	if err != nil {
		kgcore.Fatalf("extracting CTD edges: %v", err)
	}

	outPath := filepath.Join(outDir, "kg_edges.ctd.csv")
	if _, err := kgcore.WriteEdgesCSV(outPath, edges); err != nil {
		kgcore.Fatalf("writing edges: %v", err)
	}

	report := &kgcore.StageReport{
		Stage:   "04_build_edges_ctd",
		Version: version,
		Inputs: map[string]string{
			"CTD_chemicals_diseases": ctdPath,
			"entity_catalog":         catalogPath,
		},
		Outputs: map[string]string{"kg_edges_ctd": outPath},
		Counts:  counters,
	}
	if err := kgcore.WriteStageReport(filepath.Join(outDir, "stage_04_report.json"), report); err != nil {
		kgcore.Fatalf("writing report: %v", err)
	}

	fmt.Fprintln(os.Stderr, kgcore.SummarizeCounter("[04] wrote "+outPath, "edge", len(edges)))
}
