package device

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/devicelab-dev/adbpilot/pkg/core"
)

// By is a locator strategy: the node attribute key matched against the
// locator value.
type By string

// Locator strategies.
const (
	ByID    By = "resource-id"
	ByName  By = "text"
	ByClass By = "class"
)

var intRunPattern = regexp.MustCompile(`\d+`)

// FindElement returns the first node in document order whose attribute at
// the locator strategy equals value. With refresh, or when no snapshot has
// ever been loaded, the cache is refreshed first; otherwise the scan runs
// against whatever is cached, even if stale relative to the live device.
func (d *Driver) FindElement(by By, value string, refresh bool) (*Element, error) {
	if refresh || d.Stale() {
		if err := d.Refresh(""); err != nil {
			return nil, err
		}
	}

	for _, n := range d.snapshot() {
		if n[string(by)] != value {
			continue
		}
		return d.newElement(n, by, value)
	}

	return nil, notFound(by, value)
}

// FindElements returns every node matching the locator, in document order.
// An empty result is an element_not_found error, not an empty slice; a
// malformed bounds attribute on any matched node fails the whole call.
func (d *Driver) FindElements(by By, value string, refresh bool) ([]*Element, error) {
	if refresh || d.Stale() {
		if err := d.Refresh(""); err != nil {
			return nil, err
		}
	}

	var elements []*Element
	for _, n := range d.snapshot() {
		if n[string(by)] != value {
			continue
		}
		el, err := d.newElement(n, by, value)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}

	if len(elements) == 0 {
		return nil, notFound(by, value)
	}
	return elements, nil
}

// FindElementByID finds an element by resource-id.
func (d *Driver) FindElementByID(id string, refresh bool) (*Element, error) {
	return d.FindElement(ByID, id, refresh)
}

// FindElementsByID finds all elements with the given resource-id.
func (d *Driver) FindElementsByID(id string, refresh bool) ([]*Element, error) {
	return d.FindElements(ByID, id, refresh)
}

// FindElementByName finds an element by its text.
func (d *Driver) FindElementByName(name string, refresh bool) (*Element, error) {
	return d.FindElement(ByName, name, refresh)
}

// FindElementsByName finds all elements with the given text.
func (d *Driver) FindElementsByName(name string, refresh bool) ([]*Element, error) {
	return d.FindElements(ByName, name, refresh)
}

// FindElementByClass finds an element by class name.
func (d *Driver) FindElementByClass(class string, refresh bool) (*Element, error) {
	return d.FindElement(ByClass, class, refresh)
}

// FindElementsByClass finds all elements with the given class name.
func (d *Driver) FindElementsByClass(class string, refresh bool) ([]*Element, error) {
	return d.FindElements(ByClass, class, refresh)
}

// newElement builds the result for a matched node. Bounds failures name
// the node so the caller can tell which match was malformed.
func (d *Driver) newElement(n Node, by By, value string) (*Element, error) {
	box, err := parseBounds(n["bounds"])
	if err != nil {
		return nil, core.ErrBoundsParse.WithCause(err).WithDetails(map[string]interface{}{
			"by":     string(by),
			"value":  value,
			"class":  n["class"],
			"id":     n["resource-id"],
			"bounds": n["bounds"],
		})
	}
	return &Element{
		driver: d,
		Attrs:  n,
		By:     by,
		Value:  value,
		Box:    box,
		Point:  box.Center(),
	}, nil
}

// parseBounds extracts the four integer runs of a bounds attribute
// ("[left,top][right,bottom]") in order and rejects anything else.
func parseBounds(raw string) (core.Box, error) {
	runs := intRunPattern.FindAllString(raw, -1)
	if len(runs) != 4 {
		return core.Box{}, fmt.Errorf("bounds %q: want 4 integers, got %d", raw, len(runs))
	}

	vals := make([]int, 4)
	for i, r := range runs {
		v, err := strconv.Atoi(r)
		if err != nil {
			return core.Box{}, fmt.Errorf("bounds %q: %w", raw, err)
		}
		vals[i] = v
	}

	box := core.Box{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}
	if err := box.Validate(); err != nil {
		return core.Box{}, fmt.Errorf("bounds %q: %w", raw, err)
	}
	return box, nil
}

func notFound(by By, value string) error {
	return core.ErrElementNotFound.
		WithMessage(fmt.Sprintf("no such element: %s=%q", by, value)).
		WithDetails(map[string]interface{}{"by": string(by), "value": value})
}
