package device

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/devicelab-dev/adbpilot/pkg/core"
)

var (
	ipv4Pattern     = regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`)
	activityPattern = regexp.MustCompile(`m(?:Focused|Resumed)Activity[:=].*?([A-Za-z0-9_.]+/[A-Za-z0-9_.$]+)`)
	focusPattern    = regexp.MustCompile(`mCurrentFocus=.*?([A-Za-z0-9_.]+/[A-Za-z0-9_.$]+)`)
)

// Resolution returns the device display size in pixels.
func (d *Driver) Resolution() (width, height int, err error) {
	out, _, err := d.shell("wm", "size")
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("unexpected wm size output: %q", out)
	}
	// "Physical size: 1080x1920" - the size is the last field
	parts := strings.Split(fields[len(fields)-1], "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unexpected wm size output: %q", out)
	}
	width, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected wm size output: %q", out)
	}
	height, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected wm size output: %q", out)
	}
	return width, height, nil
}

// ScreenDensity returns the display density in PPI.
func (d *Driver) ScreenDensity() (int, error) {
	out, _, err := d.shell("wm", "density")
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return 0, fmt.Errorf("unexpected wm density output: %q", out)
	}
	density, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, fmt.Errorf("unexpected wm density output: %q", out)
	}
	return density, nil
}

// DisplaysParams returns the raw display parameters dump.
func (d *Driver) DisplaysParams() (string, error) {
	out, _, err := d.shell("dumpsys", "window", "displays")
	return out, err
}

// AndroidID returns the device's Android ID.
func (d *Driver) AndroidID() (string, error) {
	return d.trimmedShell("settings", "get", "secure", "android_id")
}

// AndroidVersion returns the Android release version.
func (d *Driver) AndroidVersion() (string, error) {
	return d.trimmedShell("getprop", "ro.build.version.release")
}

// SDKVersion returns the Android SDK level.
func (d *Driver) SDKVersion() (string, error) {
	return d.trimmedShell("getprop", "ro.build.version.sdk")
}

// DeviceMAC returns the WLAN interface MAC address.
func (d *Driver) DeviceMAC() (string, error) {
	return d.trimmedShell("cat", "/sys/class/net/wlan0/address")
}

// CPUInfo returns the raw /proc/cpuinfo contents.
func (d *Driver) CPUInfo() (string, error) {
	out, _, err := d.shell("cat", "/proc/cpuinfo")
	return out, err
}

// MemoryInfo returns the raw /proc/meminfo contents.
func (d *Driver) MemoryInfo() (string, error) {
	out, _, err := d.shell("cat", "/proc/meminfo")
	return out, err
}

// IPAddr returns the device's WLAN IPv4 address. It fails when the device
// is not on WLAN.
func (d *Driver) IPAddr() (string, error) {
	out, _, err := d.shell("ip", "-f", "inet", "addr", "show", "wlan0")
	if err != nil {
		return "", err
	}
	addr := ipv4Pattern.FindString(out)
	if addr == "" {
		return "", core.ErrNotConnected
	}
	return addr, nil
}

// FocusedActivity returns the package/activity currently in focus.
func (d *Driver) FocusedActivity() (string, error) {
	out, _, err := d.shell("dumpsys", "activity", "activities")
	if err != nil {
		return "", err
	}
	m := activityPattern.FindStringSubmatch(out)
	if m == nil {
		return "", fmt.Errorf("no focused activity in dumpsys output")
	}
	return m[1], nil
}

// CurrentFocus returns the package/activity of the current window.
func (d *Driver) CurrentFocus() (string, error) {
	out, _, err := d.shell("dumpsys", "window", "windows")
	if err != nil {
		return "", err
	}
	m := focusPattern.FindStringSubmatch(out)
	if m == nil {
		return "", fmt.Errorf("no current focus in dumpsys output")
	}
	return m[1], nil
}

// RunningServices returns the services dump, optionally scoped to a package.
func (d *Driver) RunningServices(pkg string) (string, error) {
	args := []string{"dumpsys", "activity", "services"}
	if pkg != "" {
		args = append(args, pkg)
	}
	out, _, err := d.shell(args...)
	return out, err
}

// PackageInfo returns the package manager's dump for a package.
func (d *Driver) PackageInfo(pkg string) (string, error) {
	out, _, err := d.shell("dumpsys", "package", pkg)
	return out, err
}

// Root restarts adbd with root permissions.
func (d *Driver) Root() error {
	out, _, err := d.runner.Execute("root")
	if err != nil {
		return err
	}
	if strings.Contains(out, "cannot run as root") {
		return core.ErrRootUnavailable.WithDetails(map[string]interface{}{"serial": d.serial})
	}
	return nil
}

// Unroot restarts adbd without root permissions.
func (d *Driver) Unroot() error {
	_, _, err := d.runner.Execute("unroot")
	return err
}

func (d *Driver) trimmedShell(args ...string) (string, error) {
	out, _, err := d.shell(args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
