package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/adbpilot/pkg/adb"
)

var devicesCommand = &cli.Command{
	Name:  "devices",
	Usage: "List devices known to the adb server",
	Description: `List every device the adb server can see, with its state and model.

Examples:
  adbpilot devices`,
	Action: runDevices,
}

var connectCommand = &cli.Command{
	Name:      "connect",
	Usage:     "Connect to a device over TCP/IP",
	ArgsUsage: "HOST:PORT",
	Description: `Connect the adb server to a networked device.

Examples:
  adbpilot connect 192.168.1.50:5555`,
	Action: runConnect,
}

var infoCommand = &cli.Command{
	Name:  "info",
	Usage: "Print device properties as YAML",
	Description: `Collect common device properties (resolution, density, Android
version, SDK level, network address, focused activity) and print them
as a YAML document.

Examples:
  adbpilot info
  adbpilot -s emulator-5554 info`,
	Action: runInfo,
}

func runDevices(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	adbPath := cfg.ADBPath
	if adbPath == "" {
		adbPath, err = adb.FindADB()
		if err != nil {
			return err
		}
	}

	entries, err := adb.Devices(adbPath)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no devices found")
		return nil
	}

	for _, e := range entries {
		if e.Model != "" {
			fmt.Printf("%-24s %-12s %s\n", e.Serial, e.State, e.Model)
		} else {
			fmt.Printf("%-24s %s\n", e.Serial, e.State)
		}
	}
	return nil
}

func runConnect(c *cli.Context) error {
	addr := c.Args().First()
	if addr == "" {
		return fmt.Errorf("usage: adbpilot connect HOST:PORT")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	adbPath := cfg.ADBPath
	if adbPath == "" {
		adbPath, err = adb.FindADB()
		if err != nil {
			return err
		}
	}

	if err := adb.Connect(adbPath, addr); err != nil {
		return err
	}
	fmt.Printf("connected to %s\n", addr)
	return nil
}

// deviceInfo is the YAML shape printed by the info command. Fields that
// fail to resolve are left empty rather than failing the whole report.
type deviceInfo struct {
	Serial          string `yaml:"serial"`
	Model           string `yaml:"model,omitempty"`
	AndroidVersion  string `yaml:"androidVersion,omitempty"`
	SDKVersion      string `yaml:"sdkVersion,omitempty"`
	AndroidID       string `yaml:"androidId,omitempty"`
	Resolution      string `yaml:"resolution,omitempty"`
	Density         int    `yaml:"density,omitempty"`
	IPAddr          string `yaml:"ipAddr,omitempty"`
	MAC             string `yaml:"mac,omitempty"`
	FocusedActivity string `yaml:"focusedActivity,omitempty"`
}

func runInfo(c *cli.Context) error {
	d, _, err := setup(c)
	if err != nil {
		return err
	}

	info := deviceInfo{Serial: d.Serial()}

	if model, err := d.Shell("getprop", "ro.product.model"); err == nil {
		info.Model = strings.TrimSpace(model)
	}
	info.AndroidVersion, _ = d.AndroidVersion()
	info.SDKVersion, _ = d.SDKVersion()
	info.AndroidID, _ = d.AndroidID()
	if w, h, err := d.Resolution(); err == nil {
		info.Resolution = fmt.Sprintf("%dx%d", w, h)
	}
	info.Density, _ = d.ScreenDensity()
	info.IPAddr, _ = d.IPAddr()
	info.MAC, _ = d.DeviceMAC()
	info.FocusedActivity, _ = d.FocusedActivity()

	return printYAML(info)
}
