// ===========================================================================
//
// File Name:  main.go
//
// Stage 06: synonym dictionary + overlay emission, then the final
// build manifest.
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

	kgcore.Banner("stage 06: dictionary + manifest", version)

	outDir := filepath.Join(outRoot, version)
	mrconso := filepath.Join(rawRoot, "UMLS", "MRCONSO.RRF")
	catalogPath := filepath.Join(outDir, "entity_catalog.jsonl")

	if err := kgcore.EnsureFiles(mrconso, catalogPath); err != nil {
		kgcore.Fatalf("%v", err)
	}

	cat, err := kgcore.ReadCatalog(catalogPath)
	if err != nil {
		kgcore.Fatalf("reading catalog: %v", err)
	}

	counters := make(kgcore.Counters)
	base, overlay, err := kgcore.BuildDictAndOverlay(cat, mrconso, progressEvery, counters)
	if err != nil {
		kgcore.Fatalf("building dictionary: %v", err)
	}

	if err := kgcore.ValidateOverlay(base, overlay, false); err != nil {
		kgcore.Fatalf("overlay validation: %v", err)
	}

	dictPath := filepath.Join(outDir, "umls_dict.txt")
	if err := kgcore.WriteDictJSON(dictPath, base); err != nil {
		kgcore.Fatalf("writing base dictionary: %v", err)
	}
	overlayPath := filepath.Join(outDir, "umls_dict.overlay.json")
	if err := kgcore.WriteDictJSON(overlayPath, overlay); err != nil {
		kgcore.Fatalf("writing overlay: %v", err)
	}

	report := &kgcore.StageReport{
		Stage:   "06_build_dict_and_manifest",
		Version: version,
		Inputs: map[string]string{
			"MRCONSO":        mrconso,
			"entity_catalog": catalogPath,
		},
		Outputs: map[string]string{
			"umls_dict":         dictPath,
			"umls_dict_overlay": overlayPath,
		},
		Counts: counters,
	}
	reportPath := filepath.Join(outDir, "stage_06_report.json")
	if err := kgcore.WriteStageReport(reportPath, report); err != nil {
		kgcore.Fatalf("writing report: %v", err)
	}

	stages := loadStageReports(outDir)
	manifest, err := kgcore.BuildManifest(rawRoot, outDir, version, kgcore.NowUTC(), stages)
	if err != nil {
		kgcore.Fatalf("building manifest: %v", err)
	}
	manifestPath := filepath.Join(outDir, "build_manifest.json")
	if err := kgcore.WriteManifest(manifestPath, manifest); err != nil {
		kgcore.Fatalf("writing manifest: %v", err)
	}

	fmt.Fprintln(os.Stderr, kgcore.SummarizeCounter("[06] wrote "+dictPath, "kg_id", len(base)))
	fmt.Fprintf(os.Stderr, "[06] wrote %s\n", manifestPath)
}

// loadStageReports re-reads each stage's report so the manifest can embed
// them in stage order, mirroring build_all.py's own final assembly step.
func loadStageReports(outDir string) []*kgcore.StageReport {
	names := []string{
		"stage_01_report.json",
		"stage_02_report.json",
		"stage_03_report.json",
		"stage_04_report.json",
		"stage_05_report.json",
		"stage_06_report.json",
	}
	var out []*kgcore.StageReport
	for _, n := range names {
		r, err := kgcore.ReadStageReport(filepath.Join(outDir, n))
		if err != nil {
			continue
		}
		out = append(out, r)
	}
	return out
}
