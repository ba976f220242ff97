// Package cli provides the command-line interface for adbpilot.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/devicelab-dev/adbpilot/pkg/adb"
	"github.com/devicelab-dev/adbpilot/pkg/config"
	"github.com/devicelab-dev/adbpilot/pkg/device"
	"github.com/devicelab-dev/adbpilot/pkg/logger"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "serial",
		Aliases: []string{"s"},
		Usage:   "Device serial to target (empty = auto-detect)",
		EnvVars: []string{"ADBPILOT_SERIAL"},
	},
	&cli.StringFlag{
		Name:    "adb",
		Usage:   "Path to the adb binary (empty = search PATH)",
		EnvVars: []string{"ADBPILOT_ADB"},
	},
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Workspace config file (default: ./config.yaml)",
		EnvVars: []string{"ADBPILOT_CONFIG"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable verbose logging",
		EnvVars: []string{"ADBPILOT_VERBOSE"},
	},
	&cli.StringFlag{
		Name:    "log-file",
		Usage:   "Append logs to a file instead of stderr",
		EnvVars: []string{"ADBPILOT_LOG_FILE"},
	},
}

// Execute runs the CLI.
func Execute() {
	app := &cli.App{
		Name:    "adbpilot",
		Usage:   "Drive Android devices over the adb command line",
		Version: Version,
		Description: `adbpilot automates Android devices through adb: UI-element discovery
against a dumped accessibility tree, input simulation, app lifecycle,
screen capture, and an MCP server exposing the same operations.

Examples:
  adbpilot devices
  adbpilot find --by id --value com.app:id/login_btn
  adbpilot tap 540 960
  adbpilot -s emulator-5554 screenshot --out shot.png
  adbpilot serve`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			devicesCommand,
			connectCommand,
			infoCommand,
			dumpCommand,
			findCommand,
			tapCommand,
			swipeCommand,
			textCommand,
			keyeventCommand,
			appCommand,
			screenshotCommand,
			recordCommand,
			logcatCommand,
			serveCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printYAML marshals a value and writes it to stdout.
func printYAML(v interface{}) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Print(string(b))
	return nil
}

// loadConfig reads the workspace config and layers global flag overrides
// on top of it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromDir(".")
	}
	if err != nil {
		return nil, err
	}

	if serial := c.String("serial"); serial != "" {
		cfg.Serial = serial
	}
	if adbPath := c.String("adb"); adbPath != "" {
		cfg.ADBPath = adbPath
	}
	if c.Bool("verbose") {
		cfg.Verbose = true
	}
	if logFile := c.String("log-file"); logFile != "" {
		cfg.LogFile = logFile
	}

	return cfg, nil
}

// adbConn initializes logging and opens a bridge connection per the
// merged config.
func adbConn(c *cli.Context) (*adb.Conn, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	if err := logger.Init(cfg.LogFile, cfg.Verbose); err != nil {
		return nil, nil, err
	}

	conn, err := adb.NewWithPath(cfg.ADBPath, cfg.Serial)
	if err != nil {
		return nil, nil, err
	}

	return conn, cfg, nil
}

// setup opens a full driver session for commands that need the UI layer.
func setup(c *cli.Context) (*device.Driver, *config.Config, error) {
	conn, cfg, err := adbConn(c)
	if err != nil {
		return nil, nil, err
	}

	d := device.New(conn, conn.Serial())
	if cfg.DumpPath != "" {
		d.SetDumpPath(cfg.DumpPath)
	}

	return d, cfg, nil
}
