package device

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/devicelab-dev/adbpilot/pkg/core"
)

var totalTimePattern = regexp.MustCompile(`TotalTime:\s*(\d+)`)

// amStart issues `am start <option> <args>` and surfaces activity manager
// rejections. am reports errors on stderr with exit 0.
func (d *Driver) amStart(option string, args ...string) error {
	argv := append([]string{"am", "start", option}, args...)
	_, stderr, err := d.shell(argv...)
	if err != nil {
		return err
	}
	if msg, ok := amError(stderr); ok {
		return core.ErrAppCommand.WithMessage(msg)
	}
	return nil
}

// StartAction starts an intent by action (`am start -a`).
func (d *Driver) StartAction(args ...string) error {
	return d.amStart("-a", args...)
}

// StartCategory starts an intent by category (`am start -c`).
func (d *Driver) StartCategory(args ...string) error {
	return d.amStart("-c", args...)
}

// StartComponent starts an explicit component (`am start -n`).
func (d *Driver) StartComponent(args ...string) error {
	return d.amStart("-n", args...)
}

// StartService starts a service.
func (d *Driver) StartService(args ...string) error {
	argv := append([]string{"am", "startservice"}, args...)
	_, stderr, err := d.shell(argv...)
	if err != nil {
		return err
	}
	if msg, ok := amError(stderr); ok {
		return core.ErrAppCommand.WithMessage(msg)
	}
	return nil
}

// StopService stops a service.
func (d *Driver) StopService(args ...string) error {
	argv := append([]string{"am", "stopservice"}, args...)
	_, stderr, err := d.shell(argv...)
	if err != nil {
		return err
	}
	if msg, ok := amError(stderr); ok {
		return core.ErrAppCommand.WithMessage(msg)
	}
	return nil
}

// Broadcast sends a broadcast intent. Any stderr output is treated as a
// rejection.
func (d *Driver) Broadcast(args ...string) error {
	argv := append([]string{"am", "broadcast"}, args...)
	_, stderr, err := d.shell(argv...)
	if err != nil {
		return err
	}
	if s := strings.TrimSpace(stderr); s != "" {
		return core.ErrAppCommand.WithMessage(amMessage(s))
	}
	return nil
}

// ForceStop closes an application.
func (d *Driver) ForceStop(pkg string) error {
	_, _, err := d.shell("am", "force-stop", pkg)
	return err
}

// TrimMemory asks an app process to trim memory.
// Level: HIDDEN | RUNNING_MODERATE | BACKGROUND | RUNNING_LOW | MODERATE |
// RUNNING_CRITICAL | COMPLETE.
func (d *Driver) TrimMemory(pid int, level string) error {
	_, stderr, err := d.shell("am", "send-trim-memory", strconv.Itoa(pid), level)
	if err != nil {
		return err
	}
	if msg, ok := amError(stderr); ok {
		return core.ErrAppCommand.WithMessage(msg)
	}
	return nil
}

// StartupTime launches a package blocking until drawn and returns the
// reported total launch time in milliseconds.
func (d *Driver) StartupTime(pkg string) (int, error) {
	out, _, err := d.shell("am", "start", "-W", pkg)
	if err != nil {
		return 0, err
	}
	m := totalTimePattern.FindStringSubmatch(out)
	if m == nil {
		return 0, fmt.Errorf("no TotalTime in am start -W output")
	}
	return strconv.Atoi(m[1])
}

// amError reports whether stderr carries an activity manager error.
func amError(stderr string) (string, bool) {
	s := strings.TrimSpace(stderr)
	if !strings.HasPrefix(s, "Error") {
		return "", false
	}
	return amMessage(s), true
}

// amMessage strips the "Error:" prefix from an am diagnostic.
func amMessage(s string) string {
	if i := strings.Index(s, ":"); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
