package cli

import (
	"strings"
	"testing"

	"github.com/devicelab-dev/adbpilot/pkg/device"
)

func TestByFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    device.By
		wantErr bool
	}{
		{"id", device.ByID, false},
		{"name", device.ByName, false},
		{"text", device.ByName, false},
		{"class", device.ByClass, false},
		{"xpath", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := byFromString(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("byFromString(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("byFromString(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestResolveOutExplicit(t *testing.T) {
	if got := resolveOut("shot.png", "/ignored", "screenshot", ".png"); got != "shot.png" {
		t.Errorf("resolveOut = %q, want explicit path to win", got)
	}
}

func TestResolveOutGenerated(t *testing.T) {
	got := resolveOut("", "captures", "screenshot", ".png")
	if !strings.HasPrefix(got, "captures/screenshot-") {
		t.Errorf("resolveOut = %q, want generated name under dir", got)
	}
	if !strings.HasSuffix(got, ".png") {
		t.Errorf("resolveOut = %q, want .png extension", got)
	}
}

func TestResolveOutEmptyDir(t *testing.T) {
	got := resolveOut("", "", "recording", ".mp4")
	if strings.Contains(got, "/") {
		t.Errorf("resolveOut = %q, want bare file name for empty dir", got)
	}
	if !strings.HasPrefix(got, "recording-") || !strings.HasSuffix(got, ".mp4") {
		t.Errorf("resolveOut = %q", got)
	}
}

func TestParamHelpers(t *testing.T) {
	params := map[string]interface{}{
		"name":  "Login",
		"x":     float64(540),
		"all":   true,
		"wrong": 42,
	}

	if got := stringParam(params, "name", ""); got != "Login" {
		t.Errorf("stringParam = %q", got)
	}
	if got := stringParam(params, "missing", "fallback"); got != "fallback" {
		t.Errorf("stringParam default = %q", got)
	}
	if got := intParam(params, "x", 0); got != 540 {
		t.Errorf("intParam = %d", got)
	}
	if got := intParam(params, "wrong", 7); got != 7 {
		t.Errorf("intParam wrong type = %d, want default", got)
	}
	if !boolParam(params, "all", false) {
		t.Error("boolParam = false, want true")
	}
	if boolParam(params, "missing", false) {
		t.Error("boolParam default = true, want false")
	}
}
