// Package device drives an Android device over the adb command line:
// property getters, app lifecycle, input simulation, screen capture, and
// UI-element discovery against a dumped accessibility-tree snapshot.
package device

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/devicelab-dev/adbpilot/pkg/adb"
)

// Runner executes commands against the bound device. *adb.Conn satisfies
// it; tests inject a fake.
type Runner interface {
	// Execute runs an argv against the device and returns captured
	// stdout and stderr. A device-bridge failure is reported as err.
	Execute(args ...string) (stdout, stderr string, err error)

	// Pull copies a remote file to local storage. It fails if the
	// remote path does not exist.
	Pull(remote, local string) error
}

// Driver is one device automation session. It owns the cached UI snapshot;
// the snapshot is replaced wholesale on every refresh and never partially
// mutated. Scans and refreshes may run from different goroutines, so the
// node sequence is guarded.
type Driver struct {
	runner   Runner
	serial   string
	dumpPath string

	// refreshMu serializes whole refresh cycles: concurrent refreshes on
	// one session share the dump destination file.
	refreshMu sync.Mutex

	mu    sync.RWMutex
	nodes []Node
}

// New creates a Driver over an existing Runner. The default dump
// destination is a per-session temp file keyed by serial, so concurrent
// sessions do not race on one path.
func New(r Runner, serial string) *Driver {
	name := fmt.Sprintf("uidump-%s.xml", sanitizeSerial(serial))
	return &Driver{
		runner:   r,
		serial:   serial,
		dumpPath: filepath.Join(os.TempDir(), name),
	}
}

// Connect creates a Driver bound to a connected device via adb. Empty
// adbPath searches PATH; empty serial auto-detects.
func Connect(adbPath, serial string) (*Driver, error) {
	conn, err := adb.NewWithPath(adbPath, serial)
	if err != nil {
		return nil, err
	}
	return New(conn, conn.Serial()), nil
}

// Serial returns the device serial number.
func (d *Driver) Serial() string {
	return d.serial
}

// DumpPath returns the local destination used for UI dumps.
func (d *Driver) DumpPath() string {
	return d.dumpPath
}

// SetDumpPath overrides the local destination used for UI dumps.
func (d *Driver) SetDumpPath(path string) {
	if path != "" {
		d.dumpPath = path
	}
}

// Shell runs a shell command on the device and returns its stdout.
func (d *Driver) Shell(args ...string) (string, error) {
	out, _, err := d.shell(args...)
	return out, err
}

// shell prefixes the argv with "shell".
func (d *Driver) shell(args ...string) (string, string, error) {
	return d.runner.Execute(append([]string{"shell"}, args...)...)
}

// sanitizeSerial makes a serial safe for use in a file name
// (TCP serials contain colons).
func sanitizeSerial(serial string) string {
	r := strings.NewReplacer(":", "-", "/", "-")
	return r.Replace(serial)
}
