// ===========================================================================
//
// File Name:  report.go
//
// ===========================================================================

package kgcore

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gedex/inflector"
)

// StageReport is the per-stage JSON report written as stage_NN_report.json:
// stage id, version, input/output paths, and the counter block.
type StageReport struct {
	Stage   string            `json:"stage"`
	Version string            `json:"version"`
	Inputs  map[string]string `json:"inputs"`
	Outputs map[string]string `json:"outputs"`
	Counts  Counters          `json:"counts"`
}

// WriteStageReport pretty-prints a StageReport to path as indented JSON.
func WriteStageReport(path string, r *StageReport) error {
	w, err := CreateAtomic(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		w.Abort()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return w.Commit()
}

// ReadStageReport loads a stage_NN_report.json previously written by
// WriteStageReport, used by the manifest assembly step to re-embed every
// stage's report in order without holding them all in memory across
// process boundaries.
func ReadStageReport(path string) (*StageReport, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	var r StageReport
	if err := json.NewDecoder(f).Decode(&r); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &r, nil
}

// SummarizeCounter renders one counter as a pluralized human-readable
// phrase for the one-line summary each stage driver prints after writing
// its report, e.g. "filtered: 1 row" vs "filtered: 12 rows" — the Go
// equivalent of the noun/verb agreement eutils leaves to hand-written
// English in its own diagnostic prints, done here with
// github.com/gedex/inflector instead.
func SummarizeCounter(label string, noun string, n int) string {
	word := noun
	if n != 1 {
		word = inflector.Pluralize(noun)
	}
	return fmt.Sprintf("%s: %d %s", label, n, word)
}

// FileHash is one entry of the build manifest's "files" block: a tracked
// output's content hash and byte length.
type FileHash struct {
	SHA256 string `json:"sha256"`
	Bytes  int64  `json:"bytes"`
}

// Manifest is the final build manifest: every tracked output file's hash,
// the UTC build timestamp, and the ordered sub-reports.
type Manifest struct {
	Builder      string                  `json:"builder"`
	Version      string                  `json:"version"`
	TimestampUTC string                  `json:"timestamp_utc"`
	RawRoot      string                  `json:"raw_root"`
	OutputDir    string                  `json:"output_dir"`
	Stages       []*StageReport          `json:"stages"`
	Files        map[string]FileHash     `json:"files"`
}

// sha256File hashes path as a streaming read through io.Copy (its default
// buffer size, not 1 MiB chunks), so multi-gigabyte artifacts are never
// held in memory whole.
func sha256File(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), n, nil
}

// TrackedOutputs lists, in a fixed order, every output file the manifest
// hashes for a version directory. This is an explicit list rather than a
// directory glob, so a stray file never silently joins or leaves the
// manifest.
func TrackedOutputs(versionDir string) []string {
	names := []string{
		"entity_catalog.jsonl",
		"kg_edges.umls.csv",
		"kg_edges.sider.csv",
		"kg_edges.ctd.csv",
		"kg_edges.merged.csv",
		"kg_edges.merged.plus.csv",
		"umls_dict.txt",
		"umls_dict.overlay.json",
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = filepath.Join(versionDir, n)
	}
	return out
}

// BuildManifest hashes every tracked output present in versionDir and
// assembles the final manifest. timestampUTC is supplied by the
// caller (e.g. time.Now().UTC().Format(time.RFC3339)) so this function
// stays a pure function of its arguments, matching the "pure function of
// its inputs" requirement for every other stage; only the manifest is
// allowed to vary between otherwise byte-identical re-runs, and only in its
// timestamp.
func BuildManifest(rawRoot, versionDir, version, timestampUTC string, stages []*StageReport) (*Manifest, error) {
	files := make(map[string]FileHash)
	for _, p := range TrackedOutputs(versionDir) {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		sum, n, err := sha256File(p)
		if err != nil {
			return nil, fmt.Errorf("hashing %s: %w", p, err)
		}
		files[p] = FileHash{SHA256: sum, Bytes: n}
	}
	return &Manifest{
		Builder:      "kgpipeline",
		Version:      version,
		TimestampUTC: timestampUTC,
		RawRoot:      rawRoot,
		OutputDir:    versionDir,
		Stages:       stages,
		Files:        files,
	}, nil
}

// WriteManifest pretty-prints the manifest to build_manifest.json.
func WriteManifest(path string, m *Manifest) error {
	w, err := CreateAtomic(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		w.Abort()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return w.Commit()
}

// SortedCounterKeys is used by callers that want to print a stage's
// counters in a stable order (maps do not iterate deterministically).
func SortedCounterKeys(c Counters) []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// NowUTC returns the current time formatted as RFC3339 in UTC, the
// manifest's timestamp_utc convention.
func NowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
