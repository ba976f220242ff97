package device

import "strconv"

// Default remote paths for capture output, matching the stock sdcard layout.
const (
	DefaultScreencapPath    = "/sdcard/screencap.png"
	DefaultScreenrecordPath = "/sdcard/screenrecord.mp4"
)

// Screencap takes a screenshot and stores it at the given remote path.
func (d *Driver) Screencap(remote string) error {
	if remote == "" {
		remote = DefaultScreencapPath
	}
	_, _, err := d.shell("screencap", "-p", remote)
	return err
}

// PullScreencap takes a screenshot and copies it to the local path.
func (d *Driver) PullScreencap(local string) error {
	if err := d.Screencap(DefaultScreencapPath); err != nil {
		return err
	}
	return d.runner.Pull(DefaultScreencapPath, local)
}

// ScreenshotPNG captures the screen and returns the PNG bytes directly,
// without a remote temp file. exec-out keeps the stream binary-clean.
func (d *Driver) ScreenshotPNG() ([]byte, error) {
	out, _, err := d.runner.Execute("exec-out", "screencap", "-p")
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// Screenrecord records the display to the given remote path. bitRate is in
// bits per second; timeLimit is in seconds, capped at 180 by the device.
// The call blocks for the duration of the recording.
func (d *Driver) Screenrecord(bitRate, timeLimitSec int, remote string) error {
	if remote == "" {
		remote = DefaultScreenrecordPath
	}
	_, _, err := d.shell("screenrecord",
		"--bit-rate", strconv.Itoa(bitRate),
		"--time-limit", strconv.Itoa(timeLimitSec),
		remote)
	return err
}

// PullScreenrecord records the display, then copies the result to the
// local path.
func (d *Driver) PullScreenrecord(bitRate, timeLimitSec int, local string) error {
	if err := d.Screenrecord(bitRate, timeLimitSec, DefaultScreenrecordPath); err != nil {
		return err
	}
	return d.runner.Pull(DefaultScreenrecordPath, local)
}

// Reboot reboots the device.
func (d *Driver) Reboot() error {
	_, _, err := d.runner.Execute("reboot")
	return err
}

// RebootRecovery reboots into recovery mode.
func (d *Driver) RebootRecovery() error {
	_, _, err := d.runner.Execute("reboot", "recovery")
	return err
}

// RebootBootloader reboots into the bootloader.
func (d *Driver) RebootBootloader() error {
	_, _, err := d.runner.Execute("reboot", "bootloader")
	return err
}
