package device

import (
	"github.com/devicelab-dev/adbpilot/pkg/core"
)

// Element is a located UI element: the node's raw attributes, the locator
// that found it, its bounding box, and the derived click point. Actions go
// through the owning driver session.
type Element struct {
	driver *Driver

	Attrs Node       `yaml:"attrs" json:"attrs"`
	By    By         `yaml:"by" json:"by"`
	Value string     `yaml:"value" json:"value"`
	Box   core.Box   `yaml:"box" json:"box"`
	Point core.Point `yaml:"point" json:"point"`
}

// Tap taps the element's click point.
func (e *Element) Tap() error {
	return e.driver.Tap(e.Point.X, e.Point.Y)
}

// LongPress long-presses the element's click point. Duration is in
// milliseconds.
func (e *Element) LongPress(durationMs int) error {
	return e.driver.LongPress(e.Point.X, e.Point.Y, durationMs)
}

// SendKeys taps the element to focus it, then types text.
func (e *Element) SendKeys(text string) error {
	if err := e.Tap(); err != nil {
		return err
	}
	return e.driver.InputText(text)
}

// Text returns the node's text attribute.
func (e *Element) Text() string {
	return e.Attrs["text"]
}

// ID returns the node's resource-id attribute.
func (e *Element) ID() string {
	return e.Attrs["resource-id"]
}

// ClassName returns the node's class attribute.
func (e *Element) ClassName() string {
	return e.Attrs["class"]
}

// Attr returns an arbitrary node attribute, empty when absent.
func (e *Element) Attr(key string) string {
	return e.Attrs.Attr(key)
}
