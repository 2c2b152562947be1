package shape

import (
	"fmt"
	"strings"
)

// Preset names.
const (
	PresetSquare = "square"
	PresetLemon  = "lemon"
	PresetHeart  = "heart"
	PresetCircle = "circle"
)

var presetPaths = map[string]string{
	PresetLemon:  "M22.33,1.67c-1.27-1.27-3.07-1.62-4.39-.86-1.79,1.04-7.4-2.27-13.38,3.73C-1.44,10.54,1.87,16.14.83,17.92c-.77,1.31-.42,3.12.86,4.39s3.07,1.62,4.39.86c1.79-1.04,7.4,2.27,13.38-3.73,5.99-5.99,2.68-11.59,3.73-13.38.77-1.31.42-3.12-.86-4.39h0Z",
	PresetHeart:  "M12,22.38L1.81,12.2c-1.17-1.17-1.81-2.73-1.81-4.38s.64-3.21,1.81-4.38c1.17-1.17,2.72-1.81,4.38-1.81s3.21.64,4.38,1.81l1.43,1.43,1.43-1.43c1.17-1.17,2.73-1.81,4.38-1.81s3.21.64,4.38,1.81h0c1.17,1.17,1.81,2.72,1.81,4.38s-.64,3.21-1.81,4.38l-10.19,10.19h0Z",
	PresetCircle: "M12,2 C6.477,2 2,6.477 2,12 C2,17.523 6.477,22 12,22 C17.523,22 22,17.523 22,12 C22,6.477 17.523,2 12,2 Z",
}

// presets are parsed once at init; the data is static.
var presets = func() map[string]*Descriptor {
	m := make(map[string]*Descriptor, len(presetPaths))
	for name, d := range presetPaths {
		desc, err := New(name, d, DefaultFrame())
		if err != nil {
			panic(fmt.Sprintf("shape: bad preset %s: %v", name, err))
		}
		m[name] = desc
	}
	return m
}()

// PresetNames lists the selectable shapes in display order. "square" maps to
// the built-in rectangle and has no descriptor.
var PresetNames = []string{PresetSquare, PresetLemon, PresetHeart, PresetCircle}

// Preset returns the named built-in outline.
func Preset(name string) (*Descriptor, bool) {
	d, ok := presets[strings.ToLower(name)]
	return d, ok
}
