package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/adbpilot/pkg/device"
)

var dumpCommand = &cli.Command{
	Name:  "dump",
	Usage: "Dump the UI hierarchy and print its nodes",
	Description: `Pull a fresh accessibility-tree snapshot from the device and print
every node's attributes as YAML, in document order.

Examples:
  adbpilot dump
  adbpilot dump --out /tmp/hierarchy.xml
  adbpilot dump --count`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "out",
			Usage: "Local destination for the raw dump file",
		},
		&cli.BoolFlag{
			Name:  "count",
			Usage: "Print only the node count",
		},
	},
	Action: runDump,
}

var findCommand = &cli.Command{
	Name:      "find",
	Usage:     "Locate UI elements in the current snapshot",
	ArgsUsage: "VALUE",
	Description: `Find UI elements by locator strategy. Prints each match's attributes,
bounding box, and click point as YAML. With no cached snapshot one is
pulled automatically; --refresh forces a new dump first.

Examples:
  adbpilot find Login
  adbpilot find --by id com.app:id/login_btn
  adbpilot find --by class --all android.widget.Button
  adbpilot find --by id --annotate marked.png com.app:id/login_btn`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "by",
			Usage: "Locator strategy: id, name, or class",
			Value: "name",
		},
		&cli.StringFlag{
			Name:  "value",
			Usage: "Locator value (alternative to the positional argument)",
		},
		&cli.BoolFlag{
			Name:    "all",
			Aliases: []string{"a"},
			Usage:   "Return every match instead of the first",
		},
		&cli.BoolFlag{
			Name:    "refresh",
			Aliases: []string{"r"},
			Usage:   "Force a fresh snapshot before searching",
		},
		&cli.StringFlag{
			Name:  "annotate",
			Usage: "Write a screenshot with matches outlined to this path",
		},
	},
	Action: runFind,
}

// byFromString maps the CLI strategy name to the dump attribute it scans.
func byFromString(s string) (device.By, error) {
	switch s {
	case "id":
		return device.ByID, nil
	case "name", "text":
		return device.ByName, nil
	case "class":
		return device.ByClass, nil
	}
	return "", fmt.Errorf("unknown locator strategy %q (want id, name, or class)", s)
}

func runDump(c *cli.Context) error {
	d, _, err := setup(c)
	if err != nil {
		return err
	}

	if err := d.Refresh(c.String("out")); err != nil {
		return err
	}

	if c.Bool("count") {
		fmt.Println(d.NodeCount())
		return nil
	}

	return printYAML(d.Nodes())
}

func runFind(c *cli.Context) error {
	value := c.Args().First()
	if value == "" {
		value = c.String("value")
	}
	if value == "" {
		return fmt.Errorf("usage: adbpilot find [--by STRATEGY] VALUE")
	}

	by, err := byFromString(c.String("by"))
	if err != nil {
		return err
	}

	d, _, err := setup(c)
	if err != nil {
		return err
	}

	var elements []*device.Element
	if c.Bool("all") {
		elements, err = d.FindElements(by, value, c.Bool("refresh"))
	} else {
		var el *device.Element
		el, err = d.FindElement(by, value, c.Bool("refresh"))
		if el != nil {
			elements = []*device.Element{el}
		}
	}
	if err != nil {
		return err
	}

	if path := c.String("annotate"); path != "" {
		if err := writeAnnotated(d, elements, path); err != nil {
			return err
		}
		fmt.Printf("annotated screenshot written to %s\n", path)
	}

	return printYAML(elements)
}
