// Package adb shells out to the Android Debug Bridge and captures its output.
package adb

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Conn binds an adb binary to a single device serial. All commands are
// issued synchronously with `-s <serial>` prepended.
type Conn struct {
	serial  string
	adbPath string
}

// New creates a Conn for the given serial. If serial is empty, it
// auto-detects the first connected device.
func New(serial string) (*Conn, error) {
	return NewWithPath("", serial)
}

// NewWithPath is like New but uses an explicit adb binary.
func NewWithPath(adbPath, serial string) (*Conn, error) {
	var err error
	if adbPath == "" {
		adbPath, err = FindADB()
		if err != nil {
			return nil, err
		}
	}

	if serial == "" {
		serial, err = DetectSerial(adbPath)
		if err != nil {
			return nil, fmt.Errorf("no device specified and auto-detect failed: %w", err)
		}
	}

	c := &Conn{
		serial:  serial,
		adbPath: adbPath,
	}

	// Verify device is connected
	if err := c.WaitForDevice(5 * time.Second); err != nil {
		return nil, fmt.Errorf("device not found: %w", err)
	}

	return c, nil
}

// Serial returns the device serial number.
func (c *Conn) Serial() string {
	return c.serial
}

// Execute runs an adb command against the bound device and returns the
// captured text streams. A non-zero exit reports an error carrying stderr
// (stdout as a fallback, adb is inconsistent about which stream it uses).
func (c *Conn) Execute(args ...string) (string, string, error) {
	cmdArgs := make([]string, 0, len(args)+2)
	if c.serial != "" {
		cmdArgs = append(cmdArgs, "-s", c.serial)
	}
	cmdArgs = append(cmdArgs, args...)

	log.WithFields(log.Fields{"serial": c.serial, "args": strings.Join(args, " ")}).Debug("exec adb")

	cmd := exec.Command(c.adbPath, cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = strings.TrimSpace(stdout.String())
		}
		return stdout.String(), stderr.String(),
			fmt.Errorf("adb %s: %w: %s", strings.Join(args, " "), err, errMsg)
	}

	return stdout.String(), stderr.String(), nil
}

// Pull copies a file from the device. A missing remote path fails: modern
// adb exits non-zero, legacy versions report `error:` on stdout with exit 0.
func (c *Conn) Pull(remote, local string) error {
	stdout, _, err := c.Execute("pull", remote, local)
	if err != nil {
		return err
	}
	if pullFailed(stdout) {
		return fmt.Errorf("adb pull %s: %s", remote, strings.TrimSpace(stdout))
	}
	return nil
}

// pullFailed detects legacy adb error reporting: an `error:` or
// `adb: error:` line on stdout. Matching the line prefix keeps pulled
// paths that merely contain "error" from false-positiving.
func pullFailed(stdout string) bool {
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "error:") || strings.HasPrefix(line, "adb: error:") {
			return true
		}
	}
	return false
}

// Push copies a local file to the device.
func (c *Conn) Push(local, remote string) error {
	if _, err := os.Stat(local); err != nil {
		return fmt.Errorf("local %q does not exist: %w", local, err)
	}
	_, _, err := c.Execute("push", local, remote)
	return err
}

// TCPIP restarts the device's adbd listening on TCP on the given port.
func (c *Conn) TCPIP(port int) error {
	_, _, err := c.Execute("tcpip", fmt.Sprintf("%d", port))
	return err
}

// WaitForDevice waits for the device to be available.
func (c *Conn) WaitForDevice(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if c.isConnected() {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("timeout waiting for device %s", c.serial)
}

// isConnected checks if the device is connected.
func (c *Conn) isConnected() bool {
	out, _, err := c.Execute("get-state")
	if err != nil {
		return false
	}
	return strings.TrimSpace(out) == "device"
}

// FindADB locates the adb binary on PATH.
func FindADB() (string, error) {
	if path, err := exec.LookPath("adb"); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("adb not found in PATH; ensure Android SDK platform-tools are installed")
}
