package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"
)

var screenshotCommand = &cli.Command{
	Name:  "screenshot",
	Usage: "Capture the screen and pull it locally",
	Description: `Take a screenshot and copy the PNG to the local filesystem. Without
--out a timestamped file name is generated in the configured
screenshot directory (or the working directory).

Examples:
  adbpilot screenshot
  adbpilot screenshot --out login.png`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Local destination path",
		},
	},
	Action: runScreenshot,
}

var recordCommand = &cli.Command{
	Name:  "record",
	Usage: "Record the screen and pull the video locally",
	Description: `Record the display for the given time limit, then copy the MP4 to
the local filesystem. The command blocks for the duration of the
recording.

Examples:
  adbpilot record --time-limit 10
  adbpilot record --bit-rate 8000000 --out demo.mp4`,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "bit-rate",
			Usage: "Video bit rate in bits per second",
			Value: 4000000,
		},
		&cli.IntFlag{
			Name:  "time-limit",
			Usage: "Recording length in seconds (device caps at 180)",
			Value: 30,
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Local destination path",
		},
	},
	Action: runRecord,
}

// resolveOut picks the local destination: an explicit path wins, otherwise
// a timestamped name inside dir (empty dir = working directory).
func resolveOut(out, dir, prefix, ext string) string {
	if out != "" {
		return out
	}
	name := fmt.Sprintf("%s-%s%s", prefix, time.Now().Format("20060102-150405"), ext)
	return filepath.Join(dir, name)
}

func runScreenshot(c *cli.Context) error {
	d, cfg, err := setup(c)
	if err != nil {
		return err
	}

	local := resolveOut(c.String("out"), cfg.ScreenshotDir, "screenshot", ".png")
	if err := d.PullScreencap(local); err != nil {
		return err
	}
	fmt.Printf("screenshot written to %s\n", local)
	return nil
}

func runRecord(c *cli.Context) error {
	d, cfg, err := setup(c)
	if err != nil {
		return err
	}

	local := resolveOut(c.String("out"), cfg.RecordingDir, "recording", ".mp4")
	fmt.Printf("recording for %d seconds...\n", c.Int("time-limit"))
	if err := d.PullScreenrecord(c.Int("bit-rate"), c.Int("time-limit"), local); err != nil {
		return err
	}
	fmt.Printf("recording written to %s\n", local)
	return nil
}
