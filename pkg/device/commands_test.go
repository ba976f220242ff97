package device

import (
	"errors"
	"testing"

	"github.com/devicelab-dev/adbpilot/pkg/core"
)

func TestTapArgv(t *testing.T) {
	f := &fakeRunner{}
	d := newTestDriver(f, t.TempDir())

	if err := d.Tap(540, 960); err != nil {
		t.Fatal(err)
	}
	want := []string{"shell", "input", "tap", "540", "960"}
	if !argvEqual(f.lastCall(), want) {
		t.Errorf("argv = %v, want %v", f.lastCall(), want)
	}
}

func TestSwipeAndLongPressArgv(t *testing.T) {
	f := &fakeRunner{}
	d := newTestDriver(f, t.TempDir())

	if err := d.Swipe(0, 100, 0, 900, 250); err != nil {
		t.Fatal(err)
	}
	want := []string{"shell", "input", "swipe", "0", "100", "0", "900", "250"}
	if !argvEqual(f.lastCall(), want) {
		t.Errorf("swipe argv = %v", f.lastCall())
	}

	if err := d.LongPress(50, 60, 1000); err != nil {
		t.Fatal(err)
	}
	want = []string{"shell", "input", "swipe", "50", "60", "50", "60", "1000"}
	if !argvEqual(f.lastCall(), want) {
		t.Errorf("long press argv = %v", f.lastCall())
	}
}

func TestInputText(t *testing.T) {
	f := &fakeRunner{}
	d := newTestDriver(f, t.TempDir())

	if err := d.InputText("hello world"); err != nil {
		t.Fatal(err)
	}
	want := []string{"shell", "input", "text", "hello%sworld"}
	if !argvEqual(f.lastCall(), want) {
		t.Errorf("argv = %v, want %v", f.lastCall(), want)
	}
}

func TestInputTextNonASCII(t *testing.T) {
	f := &fakeRunner{}
	d := newTestDriver(f, t.TempDir())

	err := d.InputText("héllo")
	if !errors.Is(err, core.ErrNonASCIIText) {
		t.Errorf("expected non_ascii_text, got %v", err)
	}
	if len(f.calls) != 0 {
		t.Error("expected no device command for rejected text")
	}
}

func TestEscapeInputText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"two words", "two%swords"},
		{"a&b", `a\&b`},
		{"q?", `q\?`},
		{`say "hi"`, `say%s\"hi\"`},
		{"50%", "50%"},
	}

	for _, tt := range tests {
		if got := escapeInputText(tt.input); got != tt.want {
			t.Errorf("escapeInputText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestKeyEventArgv(t *testing.T) {
	f := &fakeRunner{}
	d := newTestDriver(f, t.TempDir())

	if err := d.KeyEvent(26); err != nil {
		t.Fatal(err)
	}
	if !argvEqual(f.lastCall(), []string{"shell", "input", "keyevent", "26"}) {
		t.Errorf("argv = %v", f.lastCall())
	}

	if err := d.KeyEventLongPress(3); err != nil {
		t.Fatal(err)
	}
	if !argvEqual(f.lastCall(), []string{"shell", "input", "keyevent", "--longpress", "3"}) {
		t.Errorf("argv = %v", f.lastCall())
	}
}

func TestStartComponentError(t *testing.T) {
	f := &fakeRunner{stderr: map[string]string{
		"shell am start -n com.app/.Missing": "Error: Activity class {com.app/.Missing} does not exist.",
	}}
	d := newTestDriver(f, t.TempDir())

	err := d.StartComponent("com.app/.Missing")
	if !errors.Is(err, core.ErrAppCommand) {
		t.Fatalf("expected am_command_failed, got %v", err)
	}
	if err.Error() != "Activity class {com.app/.Missing} does not exist." {
		t.Errorf("expected stripped am message, got %q", err.Error())
	}
}

func TestStartComponentOK(t *testing.T) {
	f := &fakeRunner{}
	d := newTestDriver(f, t.TempDir())

	if err := d.StartComponent("com.app/.Main"); err != nil {
		t.Fatal(err)
	}
	if !argvEqual(f.lastCall(), []string{"shell", "am", "start", "-n", "com.app/.Main"}) {
		t.Errorf("argv = %v", f.lastCall())
	}
}

func TestBroadcastAnyStderrFails(t *testing.T) {
	f := &fakeRunner{stderr: map[string]string{
		"shell am broadcast -a com.app.PING": "Exception: permission denial",
	}}
	d := newTestDriver(f, t.TempDir())

	err := d.Broadcast("-a", "com.app.PING")
	if !errors.Is(err, core.ErrAppCommand) {
		t.Errorf("expected am_command_failed, got %v", err)
	}
}

func TestForceStopArgv(t *testing.T) {
	f := &fakeRunner{}
	d := newTestDriver(f, t.TempDir())

	if err := d.ForceStop("com.app"); err != nil {
		t.Fatal(err)
	}
	if !argvEqual(f.lastCall(), []string{"shell", "am", "force-stop", "com.app"}) {
		t.Errorf("argv = %v", f.lastCall())
	}
}

func TestStartupTime(t *testing.T) {
	f := &fakeRunner{stdout: map[string]string{
		"shell am start -W com.app": "Status: ok\nActivity: com.app/.Main\nTotalTime: 321\nWaitTime: 345\n",
	}}
	d := newTestDriver(f, t.TempDir())

	ms, err := d.StartupTime("com.app")
	if err != nil {
		t.Fatal(err)
	}
	if ms != 321 {
		t.Errorf("StartupTime = %d, want 321", ms)
	}
}

func TestResolution(t *testing.T) {
	f := &fakeRunner{stdout: map[string]string{
		"shell wm size": "Physical size: 1080x1920\n",
	}}
	d := newTestDriver(f, t.TempDir())

	w, h, err := d.Resolution()
	if err != nil {
		t.Fatal(err)
	}
	if w != 1080 || h != 1920 {
		t.Errorf("Resolution = %dx%d", w, h)
	}
}

func TestResolutionBadOutput(t *testing.T) {
	f := &fakeRunner{stdout: map[string]string{
		"shell wm size": "garbage\n",
	}}
	d := newTestDriver(f, t.TempDir())

	if _, _, err := d.Resolution(); err == nil {
		t.Error("expected error for unparseable wm size output")
	}
}

func TestScreenDensity(t *testing.T) {
	f := &fakeRunner{stdout: map[string]string{
		"shell wm density": "Physical density: 420\n",
	}}
	d := newTestDriver(f, t.TempDir())

	density, err := d.ScreenDensity()
	if err != nil {
		t.Fatal(err)
	}
	if density != 420 {
		t.Errorf("ScreenDensity = %d", density)
	}
}

func TestPropertyGettersTrim(t *testing.T) {
	f := &fakeRunner{stdout: map[string]string{
		"shell settings get secure android_id":   "a1b2c3d4e5f60718\n",
		"shell getprop ro.build.version.release": "14\n",
		"shell getprop ro.build.version.sdk":     "34\n",
		"shell cat /sys/class/net/wlan0/address": "aa:bb:cc:dd:ee:ff\n",
	}}
	d := newTestDriver(f, t.TempDir())

	if id, _ := d.AndroidID(); id != "a1b2c3d4e5f60718" {
		t.Errorf("AndroidID = %q", id)
	}
	if v, _ := d.AndroidVersion(); v != "14" {
		t.Errorf("AndroidVersion = %q", v)
	}
	if sdk, _ := d.SDKVersion(); sdk != "34" {
		t.Errorf("SDKVersion = %q", sdk)
	}
	if mac, _ := d.DeviceMAC(); mac != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("DeviceMAC = %q", mac)
	}
}

func TestIPAddr(t *testing.T) {
	f := &fakeRunner{stdout: map[string]string{
		"shell ip -f inet addr show wlan0": "24: wlan0: <BROADCAST,MULTICAST,UP>\n    inet 192.168.1.42/24 brd 192.168.1.255 scope global wlan0\n",
	}}
	d := newTestDriver(f, t.TempDir())

	addr, err := d.IPAddr()
	if err != nil {
		t.Fatal(err)
	}
	if addr != "192.168.1.42" {
		t.Errorf("IPAddr = %q", addr)
	}
}

func TestIPAddrNotConnected(t *testing.T) {
	f := &fakeRunner{stdout: map[string]string{
		"shell ip -f inet addr show wlan0": "24: wlan0: <BROADCAST,MULTICAST> state DOWN\n",
	}}
	d := newTestDriver(f, t.TempDir())

	_, err := d.IPAddr()
	if !errors.Is(err, core.ErrNotConnected) {
		t.Errorf("expected wlan_unavailable, got %v", err)
	}
}

func TestFocusedActivity(t *testing.T) {
	f := &fakeRunner{stdout: map[string]string{
		"shell dumpsys activity activities": "  mResumedActivity: ActivityRecord{1234 u0 com.app/.MainActivity t42}\n",
	}}
	d := newTestDriver(f, t.TempDir())

	activity, err := d.FocusedActivity()
	if err != nil {
		t.Fatal(err)
	}
	if activity != "com.app/.MainActivity" {
		t.Errorf("FocusedActivity = %q", activity)
	}
}

func TestRootDenied(t *testing.T) {
	f := &fakeRunner{stdout: map[string]string{
		"root": "adbd cannot run as root in production builds\n",
	}}
	d := newTestDriver(f, t.TempDir())

	if err := d.Root(); !errors.Is(err, core.ErrRootUnavailable) {
		t.Errorf("expected root_unavailable, got %v", err)
	}
}

func TestScreencapArgv(t *testing.T) {
	f := &fakeRunner{}
	d := newTestDriver(f, t.TempDir())

	if err := d.Screencap(""); err != nil {
		t.Fatal(err)
	}
	if !argvEqual(f.lastCall(), []string{"shell", "screencap", "-p", DefaultScreencapPath}) {
		t.Errorf("argv = %v", f.lastCall())
	}
}

func TestPullScreencapSequence(t *testing.T) {
	f := &fakeRunner{}
	d := newTestDriver(f, t.TempDir())

	local := t.TempDir() + "/shot.png"
	if err := d.PullScreencap(local); err != nil {
		t.Fatal(err)
	}
	if len(f.calls) != 2 {
		t.Fatalf("expected capture then pull, got %d calls", len(f.calls))
	}
	if !argvEqual(f.calls[1], []string{"pull", DefaultScreencapPath, local}) {
		t.Errorf("pull argv = %v", f.calls[1])
	}
}

func TestScreenrecordArgv(t *testing.T) {
	f := &fakeRunner{}
	d := newTestDriver(f, t.TempDir())

	if err := d.Screenrecord(5000000, 60, ""); err != nil {
		t.Fatal(err)
	}
	want := []string{"shell", "screenrecord", "--bit-rate", "5000000", "--time-limit", "60", DefaultScreenrecordPath}
	if !argvEqual(f.lastCall(), want) {
		t.Errorf("argv = %v", f.lastCall())
	}
}
