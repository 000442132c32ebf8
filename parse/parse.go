// Package parse turns JSON & YAML documents into dtf node trees. Parsers
// preserve object key order and reject anything that isn't a single
// object-rooted document, so the diff engine only ever sees valid input
package parse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qri-io/dtf"
)

var (
	// ErrNotObject is returned for documents whose root isn't an object
	ErrNotObject = errors.New("document root must be an object")
	// ErrEmptyDocument is returned for input holding no document at all
	ErrEmptyDocument = errors.New("empty document")
)

// Format is a document encoding
type Format int

const (
	// FormatJSON is JSON, the default for unrecognized file extensions
	FormatJSON Format = iota
	// FormatYAML is YAML
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatOf picks a format from a file path's extension. ".yaml" & ".yml" are
// YAML, everything else is JSON
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Bytes parses data in the given format
func Bytes(data []byte, f Format) (*dtf.Node, error) {
	if f == FormatYAML {
		return YAML(data)
	}
	return JSON(data)
}

// Reader parses a document read from r in the given format
func Reader(r io.Reader, f Format) (*dtf.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Bytes(data, f)
}

// File reads & parses the document at path, picking a format with FormatOf
func File(path string) (*dtf.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	n, err := Bytes(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

func requireObject(n *dtf.Node) (*dtf.Node, error) {
	if n.Type() != dtf.NTObject {
		return nil, fmt.Errorf("%w, found %s", ErrNotObject, n.Type())
	}
	return n, nil
}
