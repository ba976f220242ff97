package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

var logcatCommand = &cli.Command{
	Name:      "logcat",
	Usage:     "Stream device logs",
	ArgsUsage: "[logcat filters...]",
	Description: `Stream logcat output line by line until interrupted. Extra arguments
are passed to logcat as filters.

Examples:
  adbpilot logcat
  adbpilot logcat --clear
  adbpilot logcat ActivityManager:I *:S`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "clear",
			Usage: "Empty the device log buffers before streaming",
		},
	},
	Action: runLogcat,
}

func runLogcat(c *cli.Context) error {
	conn, _, err := adbConn(c)
	if err != nil {
		return err
	}

	if c.Bool("clear") {
		if err := conn.ClearLogcat(); err != nil {
			return err
		}
	}

	stream := conn.StreamLogcat(c.Args().Slice()...)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	lines, errs := stream.Lines, stream.Errors
	for lines != nil || errs != nil {
		select {
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			fmt.Println(line)
		case line, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			fmt.Fprintln(os.Stderr, line)
		case <-sig:
			if err := stream.Stop(); err != nil {
				return err
			}
			stream.Wait()
			return nil
		}
	}

	status := stream.Wait()
	if status.Error != nil {
		return status.Error
	}
	return nil
}
