// ===========================================================================
//
// File Name:  atomicfile.go
//
// ===========================================================================

package kgcore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWriter buffers writes to a temporary file in the target's
// directory and renames it into place on Commit, so a stage killed
// mid-write leaves no partial output behind; a partial file is treated as
// if it were never written.
type AtomicWriter struct {
	*bufio.Writer
	tmp  *os.File
	dest string
	done bool
}

// CreateAtomic opens a temporary sibling of dest for buffered writing.
func CreateAtomic(dest string) (*AtomicWriter, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(dest)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return &AtomicWriter{
		Writer: bufio.NewWriterSize(tmp, 256*1024),
		tmp:    tmp,
		dest:   dest,
	}, nil
}

// Commit flushes, closes, and atomically renames the temporary file onto
// dest. Only the first call to Commit or Abort takes effect; a later Commit
// is a no-op that returns nil. Abort is the partner for the error path.
func (w *AtomicWriter) Commit() error {
	if w.done {
		return nil
	}
	w.done = true
	if err := w.Writer.Flush(); err != nil {
		w.abortCleanup()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := w.tmp.Close(); err != nil {
		w.abortCleanup()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := os.Rename(w.tmp.Name(), w.dest); err != nil {
		w.abortCleanup()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// Abort discards the temporary file without touching dest.
func (w *AtomicWriter) Abort() {
	if w.done {
		return
	}
	w.done = true
	w.abortCleanup()
}

func (w *AtomicWriter) abortCleanup() {
	w.tmp.Close()
	os.Remove(w.tmp.Name())
}
