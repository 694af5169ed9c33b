package installer

import (
	"runtime"
	"strings"

	logger "github.com/ceca-federico-dev/manage-secret/internal/logging"
	"github.com/ceca-federico-dev/manage-secret/internal/platform"
	"github.com/ceca-federico-dev/manage-secret/internal/ui"
)

// Native tools the secret manager depends on.
const (
	PkgKeePassXC = "keepassxc"
	PkgJQ        = "jq"
	PkgGnuPG     = "gnupg"

	// PkgGpg4win is the Windows-specific name used in manual-install guidance.
	PkgGpg4win = "gpg4win"
)

// Installer installs the native dependencies through the platform's package
// manager. Only a required command failure propagates from
// InstallDependencies; a missing package manager is always a warning path.
type Installer struct {
	Runner Runner
	Logger logger.Logger

	// GOOS overrides the reported OS name in unsupported-platform guidance.
	// Defaults to runtime.GOOS.
	GOOS string
}

// run executes argv through the Runner. When required is false, failure is
// logged at warning severity and swallowed, modeling best-effort installs
// such as the optional GUI package.
func (inst *Installer) run(argv []string, required bool) error {
	err := inst.Runner.Run(argv)
	if err == nil {
		return nil
	}
	if required {
		return err
	}
	inst.Logger.Warnf("Optional command %s failed: %v", ui.Code.Sprint(strings.Join(argv, " ")), err)
	return nil
}

func (inst *Installer) goos() string {
	if inst.GOOS != "" {
		return inst.GOOS
	}
	return runtime.GOOS
}

// strategy is one platform's install behavior. The set is closed: one
// strategy per platform.Variant, each independently testable with a fake
// Runner.
type strategy interface {
	// Describe names the package-manager route taken.
	Describe() string
	// Install runs the platform's command sequence.
	Install(inst *Installer) error
}

func strategyFor(variant platform.Variant) strategy {
	switch variant {
	case platform.MacOS:
		return brewStrategy{}
	case platform.LinuxApt:
		return aptStrategy{}
	case platform.Windows:
		return chocoStrategy{}
	case platform.LinuxOther:
		return manualStrategy{reason: "No supported package manager found"}
	default:
		return manualStrategy{unsupported: true}
	}
}

// InstallDependencies installs keepassxc, jq, and gnupg for the detected
// platform. Side effects are native package installations; the only error
// returned is a required command failure.
func (inst *Installer) InstallDependencies(variant platform.Variant) error {
	strat := strategyFor(variant)
	inst.Logger.Debugf("Install strategy for %s: %s", variant, strat.Describe())
	return strat.Install(inst)
}

// brewStrategy installs through Homebrew on macOS. The GUI application gets a
// best-effort cask install; the command-line tools are required.
type brewStrategy struct{}

func (brewStrategy) Describe() string { return "Homebrew" }

func (brewStrategy) Install(inst *Installer) error {
	if _, err := inst.Runner.LookPath("brew"); err != nil {
		inst.Logger.Errorf("Homebrew not found. Please install %s, %s, and %s manually.",
			PkgKeePassXC, PkgJQ, PkgGnuPG)
		return nil
	}

	inst.Logger.Warnf("Installing dependencies via Homebrew...")
	if err := inst.run([]string{"brew", "install", "--cask", PkgKeePassXC}, false); err != nil {
		return err
	}
	return inst.run([]string{"brew", "install", PkgJQ, PkgGnuPG}, true)
}

// aptStrategy installs through apt-get on Debian-family Linux. Both commands
// are required; sudo manages its own elevation prompt.
type aptStrategy struct{}

func (aptStrategy) Describe() string { return "apt-get" }

func (aptStrategy) Install(inst *Installer) error {
	inst.Logger.Warnf("Installing dependencies via apt-get (sudo required)...")
	if err := inst.run([]string{"sudo", "apt-get", "update"}, true); err != nil {
		return err
	}
	return inst.run([]string{"sudo", "apt-get", "install", "-y", PkgKeePassXC, PkgJQ, PkgGnuPG}, true)
}

// chocoStrategy installs through Chocolatey on Windows when it is present.
type chocoStrategy struct{}

func (chocoStrategy) Describe() string { return "Chocolatey" }

func (chocoStrategy) Install(inst *Installer) error {
	inst.Logger.Warnf("Windows detected. Please ensure Chocolatey is installed.")
	if _, err := inst.Runner.LookPath("choco"); err != nil {
		inst.Logger.Errorf("Chocolatey not found. Please install %s, %s, and %s manually.",
			PkgKeePassXC, PkgJQ, PkgGpg4win)
		return nil
	}
	return inst.run([]string{"choco", "install", PkgKeePassXC, PkgJQ, PkgGnuPG, "-y"}, true)
}

// manualStrategy covers platforms with no usable package manager: it only
// logs manual-install guidance.
type manualStrategy struct {
	reason      string
	unsupported bool
}

func (manualStrategy) Describe() string { return "manual install" }

func (s manualStrategy) Install(inst *Installer) error {
	if s.unsupported {
		inst.Logger.Errorf("Unsupported OS: %s. Please manually install %s, %s, and %s.",
			inst.goos(), PkgKeePassXC, PkgJQ, PkgGnuPG)
		return nil
	}
	inst.Logger.Errorf("%s. Please install %s, %s, and %s manually.",
		s.reason, PkgKeePassXC, PkgJQ, PkgGnuPG)
	return nil
}
