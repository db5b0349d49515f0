// ===========================================================================
//
// File Name:  stream.go
//
// ===========================================================================

package kgcore

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// readCloser pairs a decompressor with the underlying file so both get
// closed. Mirrors the open/close discipline eutils/extern.go applies
// around its own pgzip readers and writers.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenAuto opens path for reading, transparently decompressing gzip when the
// path ends in ".gz". Parallel gzip via pgzip is
// used for the multi-gigabyte dumps this pipeline streams (CTD, RRF
// archives); plain text is read directly otherwise.
func OpenAuto(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return f, nil
	}
	zr, err := pgzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &readCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
}

// EnsureFiles fails fast with ErrNotFound if any required input is absent,
// checked up front before any stage work begins.
func EnsureFiles(paths ...string) error {
	var missing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, strings.Join(missing, ", "))
	}
	return nil
}

// FieldStream is a lazy sequence of field-vectors read from a delimited
// text source. Errors are only knowable once the channel has drained —
// call Err() only after ranging Lines to completion, which is safe because
// the producing goroutine always assigns the error before closing Lines.
type FieldStream struct {
	Lines <-chan []string
	err   *error
}

// Err returns the terminal error, if any, after Lines has been fully
// drained.
func (s *FieldStream) Err() error {
	if s.err == nil {
		return nil
	}
	return *s.err
}

func streamDelimited(path string, sep byte, progressEvery int, label string) *FieldStream {
	out := make(chan []string, 256)
	var finalErr error
	s := &FieldStream{Lines: out, err: &finalErr}

	go func() {
		defer close(out)

		rc, err := OpenAuto(path)
		if err != nil {
			finalErr = err
			return
		}
		defer rc.Close()

		scanner := bufio.NewScanner(rc)
		scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

		n := 0
		for scanner.Scan() {
			n++
			line := strings.ToValidUTF8(scanner.Text(), "�")
			out <- strings.Split(line, string(sep))
			if progressEvery > 0 && n%progressEvery == 0 {
				Progress(label, n)
			}
		}
		if err := scanner.Err(); err != nil {
			finalErr = err
		}
	}()

	return s
}

// StreamRRF reads a pipe-delimited "Rich Release Format" file, splitting on
// the literal '|' character and preserving empty trailing fields.
func StreamRRF(path string, progressEvery int) *FieldStream {
	return streamDelimited(path, '|', progressEvery, path)
}

// StreamTSV reads a tab-separated file.
func StreamTSV(path string, progressEvery int) *FieldStream {
	return streamDelimited(path, '\t', progressEvery, path)
}

// StreamCTDCSV reads a CTD chemical/disease CSV (or CSV.gz), skipping
// comment lines that begin with '#' and any literal header row, wherever
// it recurs in the file. Column 0 being the literal string
// "ChemicalName" is the header marker used by the source files themselves.
func StreamCTDCSV(path string, progressEvery int) *FieldStream {
	out := make(chan []string, 256)
	var finalErr error
	s := &FieldStream{Lines: out, err: &finalErr}

	go func() {
		defer close(out)

		rc, err := OpenAuto(path)
		if err != nil {
			finalErr = err
			return
		}
		defer rc.Close()

		r := csv.NewReader(bufio.NewReaderSize(rc, 64*1024))
		r.Comment = '#'
		r.FieldsPerRecord = -1
		r.ReuseRecord = false

		n := 0
		for {
			row, err := r.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				finalErr = err
				return
			}
			if len(row) == 0 {
				continue
			}
			if row[0] == "ChemicalName" {
				continue
			}
			n++
			out <- row
			if progressEvery > 0 && n%progressEvery == 0 {
				Progress(path, n)
			}
		}
	}()

	return s
}

// ResolveCompressedOrPlain returns gzPath if it exists, else the same path
// with a trailing ".gz" suffix stripped. CTD ships either form depending on
// mirror.
func ResolveCompressedOrPlain(gzPath string) string {
	if _, err := os.Stat(gzPath); err == nil {
		return gzPath
	}
	return strings.TrimSuffix(gzPath, ".gz")
}

// ResolveFileOrNamesakeDir returns path if it is a regular file, else
// path/<base(path)> if that exists — some SIDER mirrors distribute
// meddra_all_se.tsv as a directory containing a same-named file.
func ResolveFileOrNamesakeDir(path string) string {
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		return path
	}
	alt := path + string(os.PathSeparator) + baseName(path)
	if _, err := os.Stat(alt); err == nil {
		return alt
	}
	return path
}

func baseName(path string) string {
	i := strings.LastIndexByte(path, os.PathSeparator)
	if i < 0 {
		return path
	}
	return path[i+1:]
}

// gzipWriter wraps w with a parallel-compressed pgzip writer, the same
// library eutils/extern.go and eutils/merge.go use for their own archive
// writers.
func gzipWriter(w io.Writer) (*pgzip.Writer, error) {
	return pgzip.NewWriterLevel(w, gzip.BestSpeed)
}

// ArchiveFile writes a gzip-compressed copy of src to destGz, used by the
// orchestrator to keep a compressed copy of the build manifest alongside
// the plain one once a version directory is complete.
func ArchiveFile(src, destGz string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	w, err := CreateAtomic(destGz)
	if err != nil {
		return err
	}
	zw, err := gzipWriter(w)
	if err != nil {
		w.Abort()
		return err
	}
	if _, err := io.Copy(zw, in); err != nil {
		zw.Close()
		w.Abort()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := zw.Close(); err != nil {
		w.Abort()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return w.Commit()
}
