// Package fasta implements the query-sequence external collaborator named
// in §6: streaming {name, sequence} records, uppercased on ingest. FASTA
// parsing itself is out of the analysis core's scope (§1); this package is
// the thin I/O contract the core consumes, grounded on the streaming
// single-record-at-a-time Next() shape used throughout the corpus (e.g. the
// teacher's vcf.Parser.Next) and on the line-accumulation technique of the
// teacher's GENCODE FASTA loader.
package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is a single query sequence read from a FASTA file.
type Record struct {
	Name     string
	Sequence string // upper-cased on ingest
}

// Reader streams Records from a FASTA file, one at a time.
type Reader struct {
	scanner    *bufio.Scanner
	file       *os.File
	gzipReader *gzip.Reader
	pending    string // header line read ahead for the next record
	done       bool
}

// Open creates a Reader for the given path. "-" reads from stdin. Gzipped
// files (.gz) are transparently decompressed.
func Open(path string) (*Reader, error) {
	if path == "-" {
		return NewReader(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fasta file: %w", err)
	}

	var r io.Reader = f
	var gz *gzip.Reader
	if strings.HasSuffix(path, ".gz") {
		gz, err = gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		r = gz
	}

	reader := NewReader(r)
	reader.file = f
	reader.gzipReader = gz
	return reader, nil
}

// NewReader wraps an io.Reader as a FASTA Reader.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 64*1024*1024) // genome-length lines
	return &Reader{scanner: scanner}
}

// Next returns the next Record, or nil, nil at end of input.
func (r *Reader) Next() (*Record, error) {
	if r.done {
		return nil, nil
	}

	var header string
	if r.pending != "" {
		header = r.pending
		r.pending = ""
	} else {
		if !r.advanceToHeader() {
			r.done = true
			return nil, r.scanner.Err()
		}
		header = r.scanner.Text()
	}

	name := strings.TrimPrefix(header, ">")
	if idx := strings.IndexAny(name, " \t"); idx >= 0 {
		name = name[:idx]
	}

	var body strings.Builder
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if strings.HasPrefix(line, ">") {
			r.pending = line
			break
		}
		body.WriteString(strings.TrimSpace(line))
	}
	if r.pending == "" {
		if err := r.scanner.Err(); err != nil {
			return nil, fmt.Errorf("scan fasta: %w", err)
		}
		r.done = true
	}

	return &Record{
		Name:     name,
		Sequence: strings.ToUpper(body.String()),
	}, nil
}

// advanceToHeader skips blank lines until the next header (or EOF).
func (r *Reader) advanceToHeader() bool {
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if strings.HasPrefix(line, ">") {
			return true
		}
	}
	return false
}

// Close releases the underlying file handle, if any.
func (r *Reader) Close() error {
	if r.gzipReader != nil {
		r.gzipReader.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ReadOne parses a single FASTA record from raw bytes — convenient for the
// reference sequence, which is loaded once rather than streamed.
func ReadOne(r io.Reader) (*Record, error) {
	reader := NewReader(r)
	return reader.Next()
}
