package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/folio-builder/internal/importer"
	"github.com/jonathan/folio-builder/internal/types"
)

// documentInput holds the flags shared by commands that read one document.
type documentInput struct {
	path   string
	kind   string
	sample bool
}

// load imports the file at path, or seeds a sample document with --sample.
func (in *documentInput) load() (*types.Document, error) {
	kind := types.Kind(in.kind)
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown kind %q: want resume or portfolio", in.kind)
	}
	switch {
	case in.sample && in.path != "":
		return nil, fmt.Errorf("--in and --sample are mutually exclusive")
	case in.sample:
		return types.SampleDocument(kind, time.Now().UTC()), nil
	case in.path == "":
		return nil, fmt.Errorf("one of --in or --sample is required")
	}
	if _, err := os.Stat(in.path); os.IsNotExist(err) {
		return nil, fmt.Errorf("document file not found: %s", in.path)
	}
	return importer.ImportFile(in.path, kind)
}

func parseDuration(flag, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid --%s %q: want a duration such as 30m", flag, value)
	}
	return d, nil
}

// writeOutput writes data to path, creating its directory, or to w when
// path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
