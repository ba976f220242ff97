package core

import "fmt"

// Box is a screen-space rectangle as reported by the accessibility dump,
// in absolute pixel coordinates.
type Box struct {
	Left   int `json:"left" yaml:"left"`
	Top    int `json:"top" yaml:"top"`
	Right  int `json:"right" yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
}

// Point is a screen coordinate.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Width returns the box width.
func (b Box) Width() int {
	return b.Right - b.Left
}

// Height returns the box height.
func (b Box) Height() int {
	return b.Bottom - b.Top
}

// Center returns the integer-truncated midpoint of the box, used as the
// coordinate for simulated taps.
func (b Box) Center() Point {
	return Point{X: (b.Left + b.Right) / 2, Y: (b.Top + b.Bottom) / 2}
}

// Contains checks if a point is within the box.
func (b Box) Contains(p Point) bool {
	return p.X >= b.Left && p.X < b.Right && p.Y >= b.Top && p.Y < b.Bottom
}

// Validate rejects inverted rectangles.
func (b Box) Validate() error {
	if b.Left > b.Right || b.Top > b.Bottom {
		return fmt.Errorf("inverted box [%d,%d][%d,%d]", b.Left, b.Top, b.Right, b.Bottom)
	}
	return nil
}

// String formats the box in the dump's bounds notation.
func (b Box) String() string {
	return fmt.Sprintf("[%d,%d][%d,%d]", b.Left, b.Top, b.Right, b.Bottom)
}
