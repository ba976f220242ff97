package cli

import (
	"image"
	"testing"

	"github.com/devicelab-dev/adbpilot/pkg/core"
	"github.com/devicelab-dev/adbpilot/pkg/device"
)

func TestAnnotateScreenshotOutlinesBox(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 200))
	el := &device.Element{
		Box:   core.Box{Left: 20, Top: 30, Right: 120, Bottom: 90},
		Point: core.Point{X: 70, Y: 60},
	}

	out := annotateScreenshot(src, []*device.Element{el})

	// border pixels carry the annotation color
	for _, p := range []image.Point{{20, 30}, {120, 30}, {20, 90}, {70, 30}, {20, 60}} {
		if out.RGBAAt(p.X, p.Y) != annotationColor {
			t.Errorf("pixel (%d,%d) = %v, want border color", p.X, p.Y, out.RGBAAt(p.X, p.Y))
		}
	}

	// a pixel well outside the box stays untouched
	if got := out.RGBAAt(180, 180); got != src.RGBAAt(180, 180) {
		t.Errorf("pixel outside box changed: %v", got)
	}
}

func TestAnnotateScreenshotDoesNotMutateSource(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 50, 50))
	el := &device.Element{
		Box:   core.Box{Left: 5, Top: 5, Right: 40, Bottom: 40},
		Point: core.Point{X: 22, Y: 22},
	}

	annotateScreenshot(src, []*device.Element{el})

	if src.RGBAAt(5, 5) == annotationColor {
		t.Error("source image was mutated")
	}
}

func TestAnnotateScreenshotNoElements(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	out := annotateScreenshot(src, nil)
	if out.Bounds() != src.Bounds() {
		t.Errorf("bounds = %v, want %v", out.Bounds(), src.Bounds())
	}
}
