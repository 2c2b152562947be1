package shape

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrNoPath is returned when an SVG document has no <path> element.
	ErrNoPath = errors.New("shape: no <path> element in svg")
	// ErrNoPathData is returned when the first <path> has no d attribute.
	ErrNoPathData = errors.New("shape: first <path> has no d attribute")
)

// ParseSVG extracts the first <path> outline of an SVG document together with
// its frame. The frame comes from the root viewBox; without one, from the
// width and height attributes; otherwise the 24x24 default is used.
func ParseSVG(data []byte) (*Descriptor, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	var (
		frame   = DefaultFrame()
		sawRoot bool
		d       string
		found   bool
	)
	for !found {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding svg: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "svg":
			if !sawRoot {
				sawRoot = true
				frame = frameFromRoot(se.Attr)
			}
		case "path":
			v, ok := attr(se.Attr, "d")
			if !ok || strings.TrimSpace(v) == "" {
				return nil, ErrNoPathData
			}
			d, found = v, true
		}
	}
	if !found {
		return nil, ErrNoPath
	}
	return New("custom", d, frame)
}

func frameFromRoot(attrs []xml.Attr) Frame {
	if vb, ok := attr(attrs, "viewBox"); ok {
		parts := strings.FieldsFunc(vb, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
		if len(parts) != 4 {
			return DefaultFrame()
		}
		var v [4]float64
		for i, p := range parts {
			v[i] = leadingFloat(p)
		}
		return Frame{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
	}

	w, h := DefaultFrameSize, DefaultFrameSize
	if s, ok := attr(attrs, "width"); ok {
		w = leadingFloat(s)
	}
	if s, ok := attr(attrs, "height"); ok {
		h = leadingFloat(s)
	}
	if math.IsNaN(w) || math.IsNaN(h) {
		return DefaultFrame()
	}
	return Frame{Width: w, Height: h}
}

func attr(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// leadingFloat parses the longest numeric prefix of s ("100px" is 100).
// It returns NaN when s has no numeric prefix.
func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	for end := len(s); end > 0; end-- {
		if v, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return v
		}
	}
	return math.NaN()
}
