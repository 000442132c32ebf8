// Package store persists comparison results. A saved result carries the
// working context it was produced with so it can be rendered again later
// without the original documents
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qri-io/dtf"
	"github.com/vmihailenco/msgpack/v5"
)

// Version of the saved result format. increment when Saved changes shape
const Version = 1

// ErrUnknownVersion is returned loading results written by an incompatible
// version of this package
var ErrUnknownVersion = errors.New("unknown saved result version")

// SavedConfig is the part of a working context a saved result keeps
type SavedConfig struct {
	Categories     dtf.Categories    `json:"categories"`
	SideA          string            `json:"sideA"`
	SideB          string            `json:"sideB"`
	ArraySameOrder bool              `json:"arraySameOrder"`
	ArrayMatching  dtf.ArrayMatching `json:"arrayMatching"`
}

// Saved is a comparison result on disk
type Saved struct {
	Version int                 `json:"version"`
	Config  SavedConfig         `json:"config"`
	Diffs   *dtf.DiffCollection `json:"diffs"`
}

// New pairs a result with the context that produced it
func New(dc *dtf.DiffCollection, wc *dtf.WorkingContext) *Saved {
	return &Saved{
		Version: Version,
		Config: SavedConfig{
			Categories:     wc.Categories,
			SideA:          wc.SideA,
			SideB:          wc.SideB,
			ArraySameOrder: wc.ArraySameOrder,
			ArrayMatching:  wc.ArrayMatching,
		},
		Diffs: dc,
	}
}

// WorkingContext rebuilds the context the result was produced with
func (s *Saved) WorkingContext() (*dtf.WorkingContext, error) {
	return dtf.NewWorkingContext(s.Config.SideA, s.Config.SideB,
		dtf.OptionCategories(s.Config.Categories.List()...),
		dtf.OptionArraySameOrder(s.Config.ArraySameOrder),
		dtf.OptionArrayMatching(s.Config.ArrayMatching),
	)
}

// Codec picks an encoding from a file path. ".msgpack", ".mpk" & ".mp" files
// are msgpack, everything else is indented JSON
type Codec int

const (
	// CodecJSON encodes results as indented JSON
	CodecJSON Codec = iota
	// CodecMsgpack encodes results as msgpack
	CodecMsgpack
)

// CodecOf picks a codec from a path's extension
func CodecOf(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mpk", ".mp":
		return CodecMsgpack
	}
	return CodecJSON
}

// Encode writes s to w
func (c Codec) Encode(w io.Writer, s *Saved) error {
	if c == CodecMsgpack {
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(s)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Decode reads a saved result from r, checking its version
func (c Codec) Decode(r io.Reader) (*Saved, error) {
	s := &Saved{}
	if c == CodecMsgpack {
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")
		if err := dec.Decode(s); err != nil {
			return nil, err
		}
	} else if err := json.NewDecoder(r).Decode(s); err != nil {
		return nil, err
	}

	if s.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, s.Version)
	}
	if s.Diffs == nil {
		return nil, errors.New("saved result holds no diffs")
	}
	return s, nil
}

// Save writes s to path, replacing any existing file atomically
func Save(path string, s *Saved) error {
	buf := &bytes.Buffer{}
	if err := CodecOf(path).Encode(buf, s); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".dtf-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Load reads a saved result from path
func Load(path string) (*Saved, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := CodecOf(path).Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return s, nil
}
