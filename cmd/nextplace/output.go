package main

import (
	"io"
	"os"
)

// openOutput returns a writer for path ("-" for stdout) and a closer that's
// always safe to call, mirroring cmd/vibe-vep/main.go's output-file handling.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
