package adb

import (
	gocmd "github.com/go-cmd/cmd"
	log "github.com/sirupsen/logrus"
)

// LogcatStream is a running `adb logcat` child process with line-streamed
// output. Lines carries logcat's stdout; the stream runs until Stop or
// until the device disconnects.
type LogcatStream struct {
	cmd    *gocmd.Cmd
	status <-chan gocmd.Status

	Lines  <-chan string
	Errors <-chan string
}

// StreamLogcat starts `adb logcat` with the given extra arguments
// (e.g. a tag filter) and streams its output line by line.
func (c *Conn) StreamLogcat(extra ...string) *LogcatStream {
	args := []string{"-s", c.serial, "logcat"}
	args = append(args, extra...)

	cmd := gocmd.NewCmdOptions(gocmd.Options{Buffered: false, Streaming: true}, c.adbPath, args...)

	log.WithFields(log.Fields{"serial": c.serial}).Info("logcat stream start")

	return &LogcatStream{
		cmd:    cmd,
		status: cmd.Start(),
		Lines:  cmd.Stdout,
		Errors: cmd.Stderr,
	}
}

// Stop terminates the logcat process.
func (s *LogcatStream) Stop() error {
	return s.cmd.Stop()
}

// Wait blocks until the process exits and returns its final status.
func (s *LogcatStream) Wait() gocmd.Status {
	return <-s.status
}

// ClearLogcat empties the device log buffers.
func (c *Conn) ClearLogcat() error {
	_, _, err := c.Execute("logcat", "-c")
	return err
}
