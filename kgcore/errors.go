// ===========================================================================
//
// File Name:  errors.go
//
// ===========================================================================

package kgcore

import "errors"

// Sentinel errors for the taxonomy in the design document. Recoverable
// conditions (FIELD_SHORT, NON_ENGLISH, UNMAPPED_REFERENCE, AMBIGUOUS_SURFACE,
// TYPE_GATE_VIOLATION) are never returned as errors — they are tallied on a
// Counters and summarized in the stage report. Only fatal conditions use
// these.
var (
	// ErrNotFound is IO_NOT_FOUND: a declared input path does not exist.
	ErrNotFound = errors.New("kgcore: required input not found")

	// ErrSchemaViolation is SCHEMA_VIOLATION: overlay keys escape base, or
	// overlay/base alias sets intersect for some kg_id.
	ErrSchemaViolation = errors.New("kgcore: schema violation")

	// ErrWriteFailed is OUTPUT_WRITE_FAILURE: an I/O error while writing an
	// output file. The caller must remove the temporary file.
	ErrWriteFailed = errors.New("kgcore: output write failure")
)
