package platform

import (
	"errors"
	"testing"
)

func lookPathWith(found ...string) func(string) (string, error) {
	set := make(map[string]bool)
	for _, name := range found {
		set[name] = true
	}
	return func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		found    []string
		expected Variant
	}{
		{"DarwinWithBrew", "darwin", []string{"brew"}, MacOS},
		{"DarwinWithoutBrew", "darwin", nil, MacOS},
		{"LinuxWithApt", "linux", []string{"apt-get"}, LinuxApt},
		{"LinuxWithoutApt", "linux", nil, LinuxOther},
		{"Windows", "windows", nil, Windows},
		{"WindowsWithChoco", "windows", []string{"choco"}, Windows},
		{"FreeBSD", "freebsd", nil, Unsupported},
		{"Plan9", "plan9", nil, Unsupported},
		{"EmptyGOOS", "", nil, Unsupported},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Detect(tc.goos, lookPathWith(tc.found...))
			if got != tc.expected {
				t.Errorf("Detect(%q) = %v, expected %v", tc.goos, got, tc.expected)
			}
		})
	}
}

func TestVariantString(t *testing.T) {
	tests := []struct {
		variant  Variant
		expected string
	}{
		{MacOS, "macOS"},
		{LinuxApt, "Linux (apt)"},
		{LinuxOther, "Linux"},
		{Windows, "Windows"},
		{Unsupported, "unsupported"},
		{Variant(99), "unsupported"},
	}

	for _, tc := range tests {
		if got := tc.variant.String(); got != tc.expected {
			t.Errorf("Variant(%d).String() = %q, expected %q", tc.variant, got, tc.expected)
		}
	}
}

func TestDetectHost(t *testing.T) {
	// Whatever the host is, DetectHost must classify it into the closed set.
	v := DetectHost()
	switch v {
	case MacOS, LinuxApt, LinuxOther, Windows, Unsupported:
	default:
		t.Errorf("DetectHost() returned out-of-range variant %d", v)
	}
}
