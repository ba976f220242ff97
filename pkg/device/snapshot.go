package device

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/devicelab-dev/adbpilot/pkg/core"
)

// remoteDumpPath is where uiautomator serializes the hierarchy on-device.
const remoteDumpPath = "/data/local/tmp/uidump.xml"

// Node is one element of the dumped UI tree: its raw attribute mapping in
// document order. Tree structure is not retained; locator scans only need
// flat iteration order.
type Node map[string]string

// Attr returns an attribute value, empty when absent.
func (n Node) Attr(key string) string {
	return n[key]
}

// Refresh pulls a fresh UI hierarchy snapshot from the device and replaces
// the cached node sequence. dest overrides the local dump destination for
// this call; empty uses the session default. The previous sequence stays
// visible to in-flight scans until the replacement lands.
func (d *Driver) Refresh(dest string) error {
	if dest == "" {
		dest = d.dumpPath
	}

	// One refresh at a time: the dump, pull, and read all touch the shared
	// destination file.
	d.refreshMu.Lock()
	defer d.refreshMu.Unlock()

	_, stderr, err := d.shell("uiautomator", "dump", "--compressed", remoteDumpPath)
	if err != nil {
		return core.ErrDeviceCommand.WithCause(err).WithDetails(map[string]interface{}{
			"stderr": strings.TrimSpace(stderr),
		})
	}

	if err := d.runner.Pull(remoteDumpPath, dest); err != nil {
		return core.ErrSnapshotUnavailable.WithCause(err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		return core.ErrSnapshotUnavailable.WithCause(err)
	}

	nodes, err := parseNodes(data)
	if err != nil {
		return core.ErrSnapshotParse.WithCause(err)
	}

	d.mu.Lock()
	d.nodes = nodes
	d.mu.Unlock()

	log.WithFields(log.Fields{"serial": d.serial, "nodes": len(nodes)}).Debug("snapshot refreshed")
	return nil
}

// Stale reports whether no snapshot has ever been loaded. Snapshots do not
// expire by time; callers declare staleness with an explicit refresh flag.
func (d *Driver) Stale() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.nodes == nil
}

// NodeCount returns the size of the cached node sequence.
func (d *Driver) NodeCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.nodes)
}

// Nodes returns the cached node sequence for read-only inspection.
func (d *Driver) Nodes() []Node {
	return d.snapshot()
}

// snapshot borrows the current node sequence for one scan. The slice is
// replaced, never mutated, so holding the header outside the lock is safe.
func (d *Driver) snapshot() []Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.nodes
}

// parseNodes walks the dump markup and materializes every <node> element's
// attributes in document order. The result is re-scannable: multiple
// queries run against it without forcing another dump.
func parseNodes(data []byte) ([]Node, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	nodes := make([]Node, 0, 64)
	foundHierarchy := false

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "hierarchy":
			foundHierarchy = true
		case "node":
			n := make(Node, len(start.Attr))
			for _, attr := range start.Attr {
				n[attr.Name.Local] = attr.Value
			}
			nodes = append(nodes, n)
		}
	}

	if !foundHierarchy {
		return nil, fmt.Errorf("no hierarchy element in dump")
	}

	return nodes, nil
}
