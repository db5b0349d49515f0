// ===========================================================================
//
// File Name:  main.go
//
// kgbuild drives the full six-stage pipeline end to end, mirroring
// original_source/kb/build/build_all.py's stage ordering: stage01 runs
// alone (it produces entity_catalog.jsonl, which every later stage reads),
// stage02/03/04 run concurrently since each only reads the catalog plus its
// own disjoint raw inputs, then stage05 and stage06 run in sequence.
//
// ===========================================================================

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/biokg/kgpipeline/kgcore"
)

func main() {
	args := os.Args[1:]
	rawRoot := kgcore.GetStringArg(args, "raw_root")
	outRoot := kgcore.GetStringArg(args, "out_root")
	version := kgcore.GetStringArg(args, "version")
	progressEvery := kgcore.GetStringArg(args, "progress_every")

	if rawRoot == "" || outRoot == "" || version == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --raw_root, --out_root, and --version are required")
		os.Exit(1)
	}

	kgcore.Banner("kgbuild orchestrator", version)

	binDir, err := siblingBinDir()
	if err != nil {
		kgcore.Fatalf("locating stage binaries: %v", err)
	}

	common := []string{"--raw_root", rawRoot, "--out_root", outRoot, "--version", version}
	if progressEvery != "" {
		common = append(common, "--progress_every", progressEvery)
	}

	if err := runStage(binDir, "stage01", common); err != nil {
		kgcore.Fatalf("stage01 failed: %v", err)
	}

	concurrent := []string{"stage02", "stage03", "stage04"}
	var wg sync.WaitGroup
	errs := make([]error, len(concurrent))
	for i, stage := range concurrent {
		wg.Add(1)
		go func(i int, stage string) {
			defer wg.Done()
			errs[i] = runStage(binDir, stage, common)
		}(i, stage)
	}
	wg.Wait()
	for i, stage := range concurrent {
		if errs[i] != nil {
			kgcore.Fatalf("%s failed: %v", stage, errs[i])
		}
	}

	if err := runStage(binDir, "stage05", []string{"--out_root", outRoot, "--version", version}); err != nil {
		kgcore.Fatalf("stage05 failed: %v", err)
	}
	if err := runStage(binDir, "stage06", common); err != nil {
		kgcore.Fatalf("stage06 failed: %v", err)
	}

	outDir := filepath.Join(outRoot, version)
	manifestPath := filepath.Join(outDir, "build_manifest.json")
	archivePath := manifestPath + ".gz"
	if err := kgcore.ArchiveFile(manifestPath, archivePath); err != nil {
		kgcore.Warnf("could not archive manifest: %v", err)
	} else {
		fmt.Fprintf(os.Stderr, "[kgbuild] archived %s\n", archivePath)
	}

	fmt.Fprintf(os.Stderr, "[kgbuild] build complete: %s\n", outDir)
}

// siblingBinDir returns the directory this orchestrator binary itself runs
// from, the same place `go build ./...` drops every cmd/* binary when
// built together, so stage lookups need no extra configuration in the
// common case.
func siblingBinDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// runStage execs a sibling stage binary by name, falling back to $PATH if
// it is not sitting next to the orchestrator (e.g. a `go install`-ed
// layout), and streams its stderr/stdout through to this process.
func runStage(binDir, name string, args []string) error {
	bin := filepath.Join(binDir, name)
	if _, err := os.Stat(bin); err != nil {
		bin = name
	}
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
