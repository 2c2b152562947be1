// Package shape defines particle outlines: parsed vector paths with the
// authoring frame used to center and scale them.
package shape

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Descriptor is an immutable custom particle outline. Replace it wholesale;
// never mutate a Descriptor that has been handed to the engine.
type Descriptor struct {
	Name    string
	Path    string // original path data
	Outline Outline
	Frame   Frame
}

// New parses path data and pairs it with frame. A degenerate frame is
// replaced with the 24x24 default.
func New(name, d string, frame Frame) (*Descriptor, error) {
	outline, err := ParsePath(d)
	if err != nil {
		return nil, fmt.Errorf("parsing outline %q: %w", name, err)
	}
	return &Descriptor{
		Name:    name,
		Path:    d,
		Outline: outline,
		Frame:   frame.Normalize(),
	}, nil
}

// Scale returns the uniform scale mapping the descriptor onto size.
func (d *Descriptor) Scale(size float64) float64 {
	return d.Frame.ScaleFor(size)
}

// Resolve turns a shape reference into a descriptor. The empty string and
// "square" select the built-in square (nil). Preset names are looked up
// first; anything else is read as an SVG file.
func Resolve(ref string) (*Descriptor, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.EqualFold(ref, PresetSquare) {
		return nil, nil
	}
	if d, ok := Preset(ref); ok {
		return d, nil
	}
	return LoadSVG(ref)
}

// LoadSVG reads and parses an SVG file.
func LoadSVG(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading svg: %w", err)
	}
	d, err := ParseSVG(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return d, nil
}
