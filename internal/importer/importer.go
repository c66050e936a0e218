// Package importer turns uploaded document JSON into a normalised document.
package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/folio-builder/internal/schemas"
	"github.com/jonathan/folio-builder/internal/types"
)

// MaxSize bounds an uploaded document.
const MaxSize = 5 << 20

// ErrInvalidDocument wraps rejections that happen before schema validation.
var ErrInvalidDocument = errors.New("invalid document")

// Import validates data against the document schema for kind, decodes it and
// fills missing defaults. Nothing is returned unless every step succeeds, so a
// failed import never reaches the caller's store.
func Import(data []byte, kind types.Kind) (*types.Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidDocument)
	}
	if len(data) > MaxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidDocument, len(data), MaxSize)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: not JSON", ErrInvalidDocument)
	}
	if err := schemas.ValidateDocument(kind, data); err != nil {
		return nil, err
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	doc.Kind = kind
	types.Normalize(&doc)
	return &doc, nil
}

// ImportFile reads path and imports it as kind.
func ImportFile(path string, kind types.Kind) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Import(data, kind)
}

// Export encodes doc the way Import expects to read it back.
func Export(doc *types.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}
