package ui

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ncruces/zenity"

	"github.com/pthm-cable/pulse/config"
	"github.com/pthm-cable/pulse/shape"
)

func findSlider(t *testing.T, id string) SliderDescriptor {
	t.Helper()
	for _, sec := range DefaultSections() {
		for _, d := range sec.Sliders {
			if d.ID == id {
				return d
			}
		}
	}
	t.Fatalf("slider %q not found", id)
	return SliderDescriptor{}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		id   string
		raw  float64
		want float64
	}{
		{"lifespan", 123, 120},
		{"lifespan", 1000, 500},
		{"lifespan", -5, 50},
		{"speed", 2.04, 2.0},
		{"speed", 9.99, 10},
		{"rotation_speed", -7, -5},
		{"base_hue", 359.6, 360},
	}

	for _, tt := range tests {
		d := findSlider(t, tt.id)
		if got := d.Quantize(tt.raw); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s.Quantize(%v) = %v, want %v", tt.id, tt.raw, got, tt.want)
		}
	}

	continuous := SliderDescriptor{Min: 0, Max: 1}
	if got := continuous.Quantize(0.123); got != 0.123 {
		t.Errorf("continuous Quantize = %v, want 0.123", got)
	}
}

func TestApply(t *testing.T) {
	sim := config.DefaultSim()
	lifespan := findSlider(t, "lifespan")

	next, changed := Apply(sim, lifespan, 150)
	if changed {
		t.Error("Apply reported a change for the current value")
	}
	if next.Lifespan != sim.Lifespan {
		t.Errorf("Lifespan = %d, want %d", next.Lifespan, sim.Lifespan)
	}

	next, changed = Apply(sim, lifespan, 238)
	if !changed || next.Lifespan != 240 {
		t.Errorf("Apply(238) = %d, %v; want 240, true", next.Lifespan, changed)
	}
	if sim.Lifespan != 150 {
		t.Error("Apply modified its input")
	}
}

func TestDefaultSectionsCoverDefaults(t *testing.T) {
	sim := config.DefaultSim()
	seen := make(map[string]bool)

	sections := DefaultSections()
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}
	for _, sec := range sections {
		for _, d := range sec.Sliders {
			if seen[d.ID] {
				t.Errorf("duplicate slider id %q", d.ID)
			}
			seen[d.ID] = true

			v := d.Get(sim)
			if v < d.Min || v > d.Max {
				t.Errorf("%s default %v outside [%v, %v]", d.ID, v, d.Min, d.Max)
			}
		}
	}
	if len(seen) != 11 {
		t.Errorf("got %d sliders, want 11", len(seen))
	}
}

func newTestUploader(sel func() (string, error), load func(string) (*shape.Descriptor, error)) *ShapeUploader {
	return &ShapeUploader{
		results:    make(chan UploadResult, 1),
		selectFile: sel,
		load:       load,
	}
}

func waitResult(t *testing.T, u *ShapeUploader) UploadResult {
	t.Helper()
	select {
	case r := <-u.results:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no upload result")
		return UploadResult{}
	}
}

func waitIdle(t *testing.T, u *ShapeUploader) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for u.Pending() {
		if time.Now().After(deadline) {
			t.Fatal("uploader still pending")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestShapeUploaderSuccess(t *testing.T) {
	heart, _ := shape.Preset(shape.PresetHeart)
	u := newTestUploader(
		func() (string, error) { return "heart.svg", nil },
		func(path string) (*shape.Descriptor, error) {
			if path != "heart.svg" {
				t.Errorf("load path = %q", path)
			}
			return heart, nil
		},
	)

	if !u.Open() {
		t.Fatal("Open returned false")
	}
	r := waitResult(t, u)
	if r.Err != nil || r.Shape != heart {
		t.Errorf("result = %+v, want heart", r)
	}
}

func TestShapeUploaderCancel(t *testing.T) {
	u := newTestUploader(
		func() (string, error) { return "", zenity.ErrCanceled },
		func(string) (*shape.Descriptor, error) {
			t.Error("load called after cancel")
			return nil, nil
		},
	)

	u.Open()
	waitIdle(t, u)
	if r, ok := u.Poll(); ok {
		t.Errorf("cancel produced a result: %+v", r)
	}
}

func TestShapeUploaderLoadError(t *testing.T) {
	errBad := errors.New("bad svg")
	u := newTestUploader(
		func() (string, error) { return "bad.svg", nil },
		func(string) (*shape.Descriptor, error) { return nil, errBad },
	)

	u.Open()
	r := waitResult(t, u)
	if !errors.Is(r.Err, errBad) || r.Shape != nil {
		t.Errorf("result = %+v, want error", r)
	}
}

func TestShapeUploaderSingleDialog(t *testing.T) {
	release := make(chan struct{})
	u := newTestUploader(
		func() (string, error) {
			<-release
			return "", zenity.ErrCanceled
		},
		nil,
	)

	if !u.Open() {
		t.Fatal("first Open returned false")
	}
	if u.Open() {
		t.Error("second Open should be refused while a dialog is showing")
	}
	close(release)
	waitIdle(t, u)

	if _, ok := u.Poll(); ok {
		t.Error("unexpected result")
	}
}
