package device

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/devicelab-dev/adbpilot/pkg/core"
)

// Tap simulates a finger tap at the given screen coordinate.
func (d *Driver) Tap(x, y int) error {
	_, _, err := d.shell("input", "tap", strconv.Itoa(x), strconv.Itoa(y))
	return err
}

// Swipe simulates a finger swipe. Duration is in milliseconds.
func (d *Driver) Swipe(x1, y1, x2, y2, durationMs int) error {
	_, _, err := d.shell("input", "swipe",
		strconv.Itoa(x1), strconv.Itoa(y1),
		strconv.Itoa(x2), strconv.Itoa(y2),
		strconv.Itoa(durationMs))
	return err
}

// LongPress simulates a long press at the given coordinate, implemented as
// a swipe in place. Duration is in milliseconds.
func (d *Driver) LongPress(x, y, durationMs int) error {
	return d.Swipe(x, y, x, y, durationMs)
}

// InputText types text into the focused field. `input text` cannot deliver
// non-ASCII characters, so those are rejected up front.
func (d *Driver) InputText(text string) error {
	for _, r := range text {
		if r > unicode.MaxASCII {
			return core.ErrNonASCIIText.WithDetails(map[string]interface{}{"char": string(r)})
		}
	}
	_, _, err := d.shell("input", "text", escapeInputText(text))
	return err
}

// KeyEvent sends a key event by code.
func (d *Driver) KeyEvent(code int) error {
	_, _, err := d.shell("input", "keyevent", strconv.Itoa(code))
	return err
}

// KeyEventLongPress sends a long-pressed key event by code.
func (d *Driver) KeyEventLongPress(code int) error {
	_, _, err := d.shell("input", "keyevent", "--longpress", strconv.Itoa(code))
	return err
}

// Monkey generates pseudo-random user events.
func (d *Driver) Monkey(args ...string) error {
	_, _, err := d.shell(append([]string{"monkey"}, args...)...)
	return err
}

// escapeInputText quotes text for `input text`: spaces become %s and shell
// metacharacters get backslash-escaped so the device-side shell does not
// interpret them.
func escapeInputText(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch r {
		case ' ':
			b.WriteString("%s")
		case '\'', '"', '`', '\\', '$', '&', '|', ';', '(', ')', '<', '>', '*', '?', '~', '#':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
