// ===========================================================================
//
// File Name:  diag.go
//
// ===========================================================================

package kgcore

import (
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed, color.Bold)
	infoColor  = color.New(color.FgCyan)
	titleCaser = cases.Title(language.English)
	printer    = message.NewPrinter(language.English)
)

// Banner prints the stage start-up diagnostic block: title-cased stage
// name, thread count, core count derived from cpuid's threads-per-core,
// and total system memory from pbnjay/memory, as "Thrd/Core/Mmry" lines
// in the style of eutils/utils.go's PrintStats. No socket line is printed.
func Banner(stage, version string) {
	title := titleCaser.String(stage)
	infoColor.Fprintf(os.Stderr, "== %s (version %s) ==\n", title, version)

	nCPU := runtime.NumCPU()
	fmt.Fprintf(os.Stderr, "Thrd %d\n", nCPU)
	if cpuid.CPU.ThreadsPerCore > 0 {
		fmt.Fprintf(os.Stderr, "Core %d\n", nCPU/cpuid.CPU.ThreadsPerCore)
	}
	fmt.Fprintf(os.Stderr, "Mmry %d GiB\n", memory.TotalMemory()/(1024*1024*1024))
}

// Progress prints a "read N lines" diagnostic for a streaming source, with
// thousands-separated counts via golang.org/x/text/message.
func Progress(label string, n int) {
	printer.Fprintf(os.Stderr, "[%s] read %d lines\n", label, n)
}

// Warnf prints a yellow warning line to stderr.
func Warnf(format string, args ...interface{}) {
	warnColor.Fprintf(os.Stderr, "WARN: "+format+"\n", args...)
}

// Fatalf prints a red error line to stderr and exits with status 1,
// matching every cmd/*.go driver's fatal-error convention in edirect.
func Fatalf(format string, args ...interface{}) {
	errColor.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
	os.Exit(1)
}

// WarnIfMemoryTight logs a warning if total system memory looks small
// relative to estimatedEntities concepts held in an in-memory catalog plus
// surface index — the catalog and its by-normalized-surface index are the
// dominant residents during a stage01 build. The heuristic budgets roughly
// 1 KiB per concept across both structures, which is generous for
// UMLS-scale builds.
func WarnIfMemoryTight(estimatedEntities int) {
	if estimatedEntities <= 0 {
		return
	}
	needed := uint64(estimatedEntities) * 1024
	total := memory.TotalMemory()
	if total > 0 && needed > total/2 {
		Warnf("catalog of ~%d concepts may exceed half of available memory (%d GiB)",
			estimatedEntities, total/(1024*1024*1024))
	}
}
