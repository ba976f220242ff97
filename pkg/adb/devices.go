package adb

import (
	"fmt"
	"os/exec"
	"strings"
)

// DeviceEntry is one row of `adb devices -l` output.
type DeviceEntry struct {
	Serial string `yaml:"serial" json:"serial"`
	State  string `yaml:"state" json:"state"`
	Model  string `yaml:"model,omitempty" json:"model,omitempty"`
}

// Devices lists devices known to the adb server.
func Devices(adbPath string) ([]DeviceEntry, error) {
	out, err := exec.Command(adbPath, "devices", "-l").Output()
	if err != nil {
		return nil, fmt.Errorf("adb devices: %w", err)
	}
	return parseDevicesOutput(string(out)), nil
}

// parseDevicesOutput parses `adb devices -l` output into entries.
func parseDevicesOutput(out string) []DeviceEntry {
	var entries []DeviceEntry
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of") || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		entry := DeviceEntry{Serial: fields[0], State: fields[1]}
		for _, f := range fields[2:] {
			if v, ok := strings.CutPrefix(f, "model:"); ok {
				entry.Model = v
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// DetectSerial finds the first connected device serial.
func DetectSerial(adbPath string) (string, error) {
	entries, err := Devices(adbPath)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.State == "device" {
			return e.Serial, nil
		}
	}
	return "", fmt.Errorf("no connected devices found")
}

// Connect connects the adb server to a device over TCP/IP.
func Connect(adbPath, addr string) error {
	out, err := exec.Command(adbPath, "connect", addr).CombinedOutput()
	if err != nil {
		return fmt.Errorf("adb connect %s: %w: %s", addr, err, strings.TrimSpace(string(out)))
	}
	// adb connect reports failures on stdout with exit 0
	if strings.Contains(string(out), "failed") || strings.Contains(string(out), "unable") {
		return fmt.Errorf("adb connect %s: %s", addr, strings.TrimSpace(string(out)))
	}
	return nil
}

// StartServer ensures the adb server is running.
func StartServer(adbPath string) error {
	return exec.Command(adbPath, "start-server").Run()
}

// KillServer stops the adb server.
func KillServer(adbPath string) error {
	return exec.Command(adbPath, "kill-server").Run()
}
