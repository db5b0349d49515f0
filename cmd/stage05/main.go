// ===========================================================================
//
// File Name:  main.go
//
// Stage 05: edge merge — fuses the three per-source edge files into
// kg_edges.merged.csv, plus a byte-identical kg_edges.merged.plus.csv for
// downstream consumers that expect both paths.
//
// ===========================================================================

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/biokg/kgpipeline/kgcore"
)

func main() {
	args := os.Args[1:]
	outRoot := kgcore.GetStringArg(args, "out_root")
	version := kgcore.GetStringArg(args, "version")

	if outRoot == "" || version == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --out_root and --version are required")
		os.Exit(1)
	}

	kgcore.Banner("stage 05: merge edges", version)

	outDir := filepath.Join(outRoot, version)
	sources := []string{
		filepath.Join(outDir, "kg_edges.umls.csv"),
		filepath.Join(outDir, "kg_edges.sider.csv"),
		filepath.Join(outDir, "kg_edges.ctd.csv"),
	}
	if err := kgcore.EnsureFiles(sources...); err != nil {
		kgcore.Fatalf("%v", err)
	}

	counters := make(kgcore.Counters)
	edges, err := kgcore.MergeEdges(sources, counters)
	if err != nil {
		kgcore.Fatalf("merging edges: %v", err)
	}

	mergedPath := filepath.Join(outDir, "kg_edges.merged.csv")
	if err := kgcore.WriteMergedEdges(mergedPath, edges); err != nil {
		kgcore.Fatalf("writing merged edges: %v", err)
	}

	plusPath := filepath.Join(outDir, "kg_edges.merged.plus.csv")
	if err := copyFile(mergedPath, plusPath); err != nil {
		kgcore.Fatalf("writing merged.plus copy: %v", err)
	}

	report := &kgcore.StageReport{
		Stage:   "05_merge_edges",
		Version: version,
		Inputs: map[string]string{
			"kg_edges_umls":  sources[0],
			"kg_edges_sider": sources[1],
			"kg_edges_ctd":   sources[2],
		},
		Outputs: map[string]string{
			"kg_edges_merged":      mergedPath,
			"kg_edges_merged_plus": plusPath,
		},
		Counts: counters,
	}
	if err := kgcore.WriteStageReport(filepath.Join(outDir, "stage_05_report.json"), report); err != nil {
		kgcore.Fatalf("writing report: %v", err)
	}

	fmt.Fprintln(os.Stderr, kgcore.SummarizeCounter("[05] wrote "+mergedPath, "edge", len(edges)))
}

// copyFile writes dest as a byte-identical copy of src via an atomic
// rename, the same write discipline every other tracked output uses.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	w, err := kgcore.CreateAtomic(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, in); err != nil {
		w.Abort()
		return err
	}
	return w.Commit()
}
