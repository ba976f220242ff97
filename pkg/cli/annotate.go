package cli

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/devicelab-dev/adbpilot/pkg/core"
	"github.com/devicelab-dev/adbpilot/pkg/device"
)

var annotationColor = color.RGBA{R: 255, G: 40, B: 40, A: 255}

// annotateScreenshot copies the screenshot and outlines each element's
// bounding box, labeled with its index and click point.
func annotateScreenshot(src image.Image, elements []*device.Element) *image.RGBA {
	bounds := src.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, src, bounds.Min, draw.Src)

	for i, el := range elements {
		drawBox(rgba, el.Box, annotationColor)
		label := fmt.Sprintf("%d (%d,%d)", i+1, el.Point.X, el.Point.Y)
		drawLabel(rgba, el.Box.Left+3, el.Box.Top+14, label, annotationColor)
	}
	return rgba
}

// drawBox outlines a box with a 2-pixel border.
func drawBox(img *image.RGBA, box core.Box, col color.RGBA) {
	for t := 0; t < 2; t++ {
		for x := box.Left; x <= box.Right; x++ {
			img.Set(x, box.Top+t, col)
			img.Set(x, box.Bottom-t, col)
		}
		for y := box.Top; y <= box.Bottom; y++ {
			img.Set(box.Left+t, y, col)
			img.Set(box.Right-t, y, col)
		}
	}
}

// drawLabel renders text at a baseline position using the built-in
// fixed-width face.
func drawLabel(img *image.RGBA, x, y int, text string, col color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// writeAnnotated captures the screen, marks the elements on it, and writes
// the result as PNG.
func writeAnnotated(d *device.Driver, elements []*device.Element, path string) error {
	raw, err := d.ScreenshotPNG()
	if err != nil {
		return err
	}

	src, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decoding screenshot: %w", err)
	}

	out := annotateScreenshot(src, elements)

	f, err := os.Create(path) //#nosec G304 -- user-provided output path
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, out)
}
