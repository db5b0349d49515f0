// ===========================================================================
//
// File Name:  main.go
//
// Stage 03: SIDER edge extractor.
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

	kgcore.Banner("stage 03: sider edges", version)

	outDir := filepath.Join(outRoot, version)
	drugNames := filepath.Join(rawRoot, "SIDER", "drug_names.tsv")
	meddra := kgcore.ResolveFileOrNamesakeDir(filepath.Join(rawRoot, "SIDER", "meddra_all_se.tsv"))
	catalogPath := filepath.Join(outDir, "entity_catalog.jsonl")

	if err := kgcore.EnsureFiles(drugNames, meddra, catalogPath); err != nil {
		kgcore.Fatalf("%v", err)
	}

	cat, err := kgcore.ReadCatalog(catalogPath)
	if err != nil {
		kgcore.Fatalf("reading catalog: %v", err)
	}

	counters := make(kgcore.Counters)
	edges, err := kgcore.BuildSIDEREdges(cat, drugNames, meddra, progressEvery, counters)
	if err != nil {
		kgcore.Fatalf("extracting SIDER edges: %v", err)
	}

	outPath := filepath.Join(outDir, "kg_edges.sider.csv")
	if _, err := kgcore.WriteEdgesCSV(outPath, edges); err != nil {
		kgcore.Fatalf("writing edges: %v", err)
	}

	report := &kgcore.StageReport{
		Stage:   "03_build_edges_sider",
		Version: version,
		Inputs: map[string]string{
			"drug_names":     drugNames,
			"meddra_all_se":  meddra,
			"entity_catalog": catalogPath,
		},
		Outputs: map[string]string{"kg_edges_sider": outPath},
		Counts:  counters,
	}
	if err := kgcore.WriteStageReport(filepath.Join(outDir, "stage_03_report.json"), report); err != nil {
		kgcore.Fatalf("writing report: %v", err)
	}

	fmt.Fprintln(os.Stderr, kgcore.SummarizeCounter("[03] wrote "+outPath, "edge", len(edges)))
}
