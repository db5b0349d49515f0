// ===========================================================================
//
// File Name:  main.go
//
// kgvalidate is the standalone companion checker: it reloads a version's
// base dictionary and overlay from disk and re-runs the schema check
// without rebuilding anything, mirroring
// original_source/kb/build/validate_dict_overlay.py.
//
// ===========================================================================

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/biokg/kgpipeline/kgcore"
)

func main() {
	args := os.Args[1:]
	outRoot := kgcore.GetStringArg(args, "out_root")
	version := kgcore.GetStringArg(args, "version")
	allowNewKeys := kgcore.HasFlag(args, "allow_overlay_new_keys")
	topN := kgcore.GetIntArg(args, "top", 20)

	if outRoot == "" || version == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --out_root and --version are required")
		os.Exit(1)
	}

	outDir := filepath.Join(outRoot, version)
	dictPath := filepath.Join(outDir, "umls_dict.txt")
	overlayPath := filepath.Join(outDir, "umls_dict.overlay.json")

	base, err := loadDict(dictPath)
	if err != nil {
		kgcore.Fatalf("loading base dictionary: %v", err)
	}
	overlay, err := loadDict(overlayPath)
	if err != nil {
		kgcore.Fatalf("loading overlay: %v", err)
	}

	if err := kgcore.ValidateOverlay(base, overlay, allowNewKeys); err != nil {
		kgcore.Fatalf("%v", err)
	}

	fmt.Fprintf(os.Stderr, "[kgvalidate] OK: %d base keys, %d overlay keys\n", len(base), len(overlay))

	fmt.Fprintf(os.Stderr, "[kgvalidate] top %d kg_ids by overlay alias count:\n", topN)
	for _, line := range kgcore.TopOverlayByCount(overlay, topN) {
		fmt.Fprintln(os.Stderr, "  "+line)
	}
}

func loadDict(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out map[string][]string
	if err := json.NewDecoder(f).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
