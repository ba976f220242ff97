package cli

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
)

var tapCommand = &cli.Command{
	Name:      "tap",
	Usage:     "Tap a screen coordinate",
	ArgsUsage: "X Y",
	Description: `Simulate a tap at the given pixel coordinate.

Examples:
  adbpilot tap 540 960`,
	Action: runTap,
}

var swipeCommand = &cli.Command{
	Name:      "swipe",
	Usage:     "Swipe between two screen coordinates",
	ArgsUsage: "X1 Y1 X2 Y2",
	Description: `Simulate a swipe gesture. Duration controls the gesture speed; a
long duration at a fixed point acts as a long press.

Examples:
  adbpilot swipe 540 1600 540 400
  adbpilot swipe --duration 800 540 1600 540 400`,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "duration",
			Aliases: []string{"d"},
			Usage:   "Gesture duration in milliseconds",
			Value:   300,
		},
	},
	Action: runSwipe,
}

var textCommand = &cli.Command{
	Name:      "text",
	Usage:     "Type text on the device",
	ArgsUsage: "TEXT",
	Description: `Type a string through the shell input pipeline. Only ASCII text is
accepted; spaces and shell metacharacters are escaped automatically.

Examples:
  adbpilot text "hello world"`,
	Action: runText,
}

var keyeventCommand = &cli.Command{
	Name:      "keyevent",
	Usage:     "Send a key event code",
	ArgsUsage: "CODE",
	Description: `Send an Android key event by numeric code (3 = HOME, 4 = BACK,
26 = POWER, 66 = ENTER).

Examples:
  adbpilot keyevent 4
  adbpilot keyevent --longpress 26`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "longpress",
			Usage: "Hold the key instead of a short press",
		},
	},
	Action: runKeyevent,
}

// intArgs parses n positional arguments as integers.
func intArgs(c *cli.Context, n int) ([]int, error) {
	if c.Args().Len() != n {
		return nil, fmt.Errorf("expected %d arguments, got %d", n, c.Args().Len())
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(c.Args().Get(i))
		if err != nil {
			return nil, fmt.Errorf("argument %d: %q is not an integer", i+1, c.Args().Get(i))
		}
		out[i] = v
	}
	return out, nil
}

func runTap(c *cli.Context) error {
	args, err := intArgs(c, 2)
	if err != nil {
		return err
	}

	d, _, err := setup(c)
	if err != nil {
		return err
	}
	return d.Tap(args[0], args[1])
}

func runSwipe(c *cli.Context) error {
	args, err := intArgs(c, 4)
	if err != nil {
		return err
	}

	d, _, err := setup(c)
	if err != nil {
		return err
	}
	return d.Swipe(args[0], args[1], args[2], args[3], c.Int("duration"))
}

func runText(c *cli.Context) error {
	text := c.Args().First()
	if text == "" {
		return fmt.Errorf("usage: adbpilot text TEXT")
	}

	d, _, err := setup(c)
	if err != nil {
		return err
	}
	return d.InputText(text)
}

func runKeyevent(c *cli.Context) error {
	args, err := intArgs(c, 1)
	if err != nil {
		return err
	}

	d, _, err := setup(c)
	if err != nil {
		return err
	}
	if c.Bool("longpress") {
		return d.KeyEventLongPress(args[0])
	}
	return d.KeyEvent(args[0])
}
