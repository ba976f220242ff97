package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var appCommand = &cli.Command{
	Name:  "app",
	Usage: "Manage application lifecycle via the activity manager",
	Description: `Start activities and services, send broadcasts, and stop packages.

Examples:
  adbpilot app start -n com.app/.MainActivity
  adbpilot app start -a android.intent.action.VIEW
  adbpilot app broadcast -a com.app.PING
  adbpilot app stop com.app
  adbpilot app startup-time com.app`,
	Subcommands: []*cli.Command{
		{
			Name:      "start",
			Usage:     "Start an activity",
			ArgsUsage: "[am start arguments...]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "component",
					Aliases: []string{"n"},
					Usage:   "Component name (package/activity)",
				},
				&cli.StringFlag{
					Name:    "action",
					Aliases: []string{"a"},
					Usage:   "Intent action",
				},
				&cli.StringFlag{
					Name:    "category",
					Aliases: []string{"g"},
					Usage:   "Intent category",
				},
			},
			Action: runAppStart,
		},
		{
			Name:      "start-service",
			Usage:     "Start a service",
			ArgsUsage: "[am startservice arguments...]",
			Action:    runAppStartService,
		},
		{
			Name:      "stop-service",
			Usage:     "Stop a service",
			ArgsUsage: "[am stopservice arguments...]",
			Action:    runAppStopService,
		},
		{
			Name:      "broadcast",
			Usage:     "Send a broadcast intent",
			ArgsUsage: "[am broadcast arguments...]",
			Action:    runAppBroadcast,
		},
		{
			Name:      "stop",
			Usage:     "Force-stop a package",
			ArgsUsage: "PACKAGE",
			Action:    runAppStop,
		},
		{
			Name:      "startup-time",
			Usage:     "Launch a package and report its startup time",
			ArgsUsage: "PACKAGE",
			Action:    runAppStartupTime,
		},
	},
}

func runAppStart(c *cli.Context) error {
	d, _, err := setup(c)
	if err != nil {
		return err
	}

	rest := c.Args().Slice()
	switch {
	case c.String("component") != "":
		return d.StartComponent(append([]string{c.String("component")}, rest...)...)
	case c.String("action") != "":
		return d.StartAction(append([]string{c.String("action")}, rest...)...)
	case c.String("category") != "":
		return d.StartCategory(append([]string{c.String("category")}, rest...)...)
	}
	return fmt.Errorf("one of --component, --action, or --category is required")
}

func runAppStartService(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("usage: adbpilot app start-service [am arguments...]")
	}
	d, _, err := setup(c)
	if err != nil {
		return err
	}
	return d.StartService(c.Args().Slice()...)
}

func runAppStopService(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("usage: adbpilot app stop-service [am arguments...]")
	}
	d, _, err := setup(c)
	if err != nil {
		return err
	}
	return d.StopService(c.Args().Slice()...)
}

func runAppBroadcast(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("usage: adbpilot app broadcast [am arguments...]")
	}
	d, _, err := setup(c)
	if err != nil {
		return err
	}
	return d.Broadcast(c.Args().Slice()...)
}

func runAppStop(c *cli.Context) error {
	pkg := c.Args().First()
	if pkg == "" {
		return fmt.Errorf("usage: adbpilot app stop PACKAGE")
	}
	d, _, err := setup(c)
	if err != nil {
		return err
	}
	return d.ForceStop(pkg)
}

func runAppStartupTime(c *cli.Context) error {
	pkg := c.Args().First()
	if pkg == "" {
		return fmt.Errorf("usage: adbpilot app startup-time PACKAGE")
	}
	d, _, err := setup(c)
	if err != nil {
		return err
	}

	ms, err := d.StartupTime(pkg)
	if err != nil {
		return err
	}
	fmt.Printf("%d ms\n", ms)
	return nil
}
