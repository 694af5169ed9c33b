package platform

import (
	"os/exec"
	"runtime"
)

// Variant identifies the host platform branch the installer dispatches on.
// It is determined once per run and never mutated afterward.
type Variant int

const (
	// Unsupported covers any OS the installer has no branch for.
	Unsupported Variant = iota
	// MacOS is any darwin host, with or without Homebrew.
	MacOS
	// LinuxApt is a Linux host with apt-get on the search path.
	LinuxApt
	// LinuxOther is a Linux host without a recognized package manager.
	LinuxOther
	// Windows is any windows host.
	Windows
)

// String returns a human-readable name for the variant.
func (v Variant) String() string {
	switch v {
	case MacOS:
		return "macOS"
	case LinuxApt:
		return "Linux (apt)"
	case LinuxOther:
		return "Linux"
	case Windows:
		return "Windows"
	default:
		return "unsupported"
	}
}

// Detect classifies the host from an OS identifier (runtime.GOOS values) and
// a PATH-lookup function. It is a pure query: darwin is always MacOS even
// when Homebrew is absent (absence is reported later, not fatal), while the
// Linux split depends on whether apt-get resolves on the search path.
func Detect(goos string, lookPath func(string) (string, error)) Variant {
	switch goos {
	case "darwin":
		return MacOS
	case "linux":
		if _, err := lookPath("apt-get"); err == nil {
			return LinuxApt
		}
		return LinuxOther
	case "windows":
		return Windows
	default:
		return Unsupported
	}
}

// DetectHost detects the variant for the running process.
func DetectHost() Variant {
	return Detect(runtime.GOOS, exec.LookPath)
}
