package device

import (
	"os"
	"strings"
	"sync"
)

// fakeRunner records every argv and serves canned outputs, so driver tests
// run against fixture markup instead of a real device. Safe for concurrent
// use, like the real executor.
type fakeRunner struct {
	mu    sync.Mutex
	calls [][]string

	// canned Execute outputs keyed by the joined argv
	stdout map[string]string
	stderr map[string]string

	execErr error // returned by every Execute when set
	pullErr error // returned by every Pull when set

	dumpXML string // written to the local path on Pull
}

func (f *fakeRunner) Execute(args ...string) (string, string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, args)
	f.mu.Unlock()
	if f.execErr != nil {
		return "", "", f.execErr
	}
	key := strings.Join(args, " ")
	return f.stdout[key], f.stderr[key], nil
}

func (f *fakeRunner) Pull(remote, local string) error {
	f.mu.Lock()
	f.calls = append(f.calls, []string{"pull", remote, local})
	f.mu.Unlock()
	if f.pullErr != nil {
		return f.pullErr
	}
	return os.WriteFile(local, []byte(f.dumpXML), 0644)
}

// dumpCount returns how many uiautomator dump commands were issued.
func (f *fakeRunner) dumpCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, call := range f.calls {
		if len(call) >= 3 && call[0] == "shell" && call[1] == "uiautomator" && call[2] == "dump" {
			count++
		}
	}
	return count
}

// lastCall returns the most recent argv.
func (f *fakeRunner) lastCall() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func argvEqual(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// newTestDriver wires a Driver to a fakeRunner with a temp dump path.
func newTestDriver(f *fakeRunner, tempDir string) *Driver {
	d := New(f, "emulator-5554")
	d.SetDumpPath(tempDir + "/uidump.xml")
	return d
}
