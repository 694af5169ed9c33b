package shellcfg

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ceca-federico-dev/manage-secret/internal/deploy"
	logger "github.com/ceca-federico-dev/manage-secret/internal/logging"
	"github.com/ceca-federico-dev/manage-secret/internal/ui"
)

// Marker identifies a previously-installed configuration block. Its presence
// anywhere in the profile means the block is installed; the block is
// all-or-nothing, never partially rewritten.
const Marker = "SECRETS_MANAGER_PATH"

// Outcome describes what ConfigureShell did.
type Outcome int

const (
	// OutcomeConfigured means the block was appended to the profile.
	OutcomeConfigured Outcome = iota
	// OutcomeAlreadyConfigured means the marker was already present.
	OutcomeAlreadyConfigured
	// OutcomeSkipped means the shell could not be classified.
	OutcomeSkipped
	// OutcomeFailed means profile I/O failed; the failure was logged, not
	// propagated.
	OutcomeFailed
)

// Result reports the profile that was (or would have been) touched.
type Result struct {
	ProfilePath string
	Outcome     Outcome
}

// Configurator patches the user's shell startup file so the deployed manager
// script is reachable via SECRETS_MANAGER_PATH and the secret-* aliases.
//
// Zero-value fields fall back to the real environment: $SHELL, runtime.GOOS,
// and os.UserHomeDir.
type Configurator struct {
	Logger  logger.Logger
	Shell   string
	GOOS    string
	HomeDir string
}

func (c *Configurator) shell() string {
	if c.Shell != "" {
		return c.Shell
	}
	return os.Getenv("SHELL")
}

func (c *Configurator) goos() string {
	if c.GOOS != "" {
		return c.GOOS
	}
	return runtime.GOOS
}

func (c *Configurator) homeDir() (string, error) {
	if c.HomeDir != "" {
		return c.HomeDir, nil
	}
	return os.UserHomeDir()
}

// ProfilePath classifies $SHELL and returns the startup file to patch. The
// boolean is false when the shell is neither zsh nor bash. zsh is checked
// before bash, by substring, case-sensitively; bash on macOS uses the login
// profile rather than the interactive rc file.
func (c *Configurator) ProfilePath() (string, bool) {
	home, err := c.homeDir()
	if err != nil {
		return "", false
	}

	shell := c.shell()
	switch {
	case strings.Contains(shell, "zsh"):
		return filepath.Join(home, ".zshrc"), true
	case strings.Contains(shell, "bash"):
		if c.goos() == "darwin" {
			return filepath.Join(home, ".bash_profile"), true
		}
		return filepath.Join(home, ".bashrc"), true
	default:
		return "", false
	}
}

// ConfigBlock returns the lines appended to the profile: a comment header,
// the export binding SECRETS_MANAGER_PATH to the deployed manager script, and
// the three aliases.
func ConfigBlock(installPath string) []string {
	scriptPath := filepath.Join(installPath, deploy.ManagerScript)
	return []string{
		"# Secret Manager Configuration",
		`export SECRETS_MANAGER_PATH="` + scriptPath + `"`,
		`alias secret-add='$SECRETS_MANAGER_PATH add'`,
		`alias secret-ls='$SECRETS_MANAGER_PATH ls'`,
		`alias secret-apply='$SECRETS_MANAGER_PATH apply'`,
	}
}

// Configured reports whether the profile already carries the marker.
func (c *Configurator) Configured() bool {
	profile, ok := c.ProfilePath()
	if !ok {
		return false
	}
	content, err := os.ReadFile(profile)
	if err != nil {
		return false
	}
	return strings.Contains(string(content), Marker)
}

// ConfigureShell appends the configuration block to the user's shell profile
// unless the marker is already present. Shell configuration is best-effort
// relative to the rest of the install: every failure here is logged and
// neutralized locally, never returned.
func (c *Configurator) ConfigureShell(installPath string) Result {
	profile, ok := c.ProfilePath()
	if !ok {
		c.Logger.Warnf("Could not detect shell RC file from SHELL=%q. Please add configuration manually.", c.shell())
		return Result{Outcome: OutcomeSkipped}
	}

	c.Logger.Infof("Configuring %s...", ui.Path.Sprint(profile))

	content, err := os.ReadFile(profile)
	if err == nil && strings.Contains(string(content), Marker) {
		c.Logger.Warnf("Configuration already exists in %s. Skipping append.", profile)
		return Result{ProfilePath: profile, Outcome: OutcomeAlreadyConfigured}
	}
	if err != nil && !os.IsNotExist(err) {
		c.Logger.Errorf("Failed to read %s: %v", profile, err)
		return Result{ProfilePath: profile, Outcome: OutcomeFailed}
	}

	if err := appendBlock(profile, ConfigBlock(installPath)); err != nil {
		c.Logger.Errorf("Failed to update %s: %v", profile, err)
		return Result{ProfilePath: profile, Outcome: OutcomeFailed}
	}

	c.Logger.Infof("Successfully configured %s", ui.Path.Sprint(profile))
	return Result{ProfilePath: profile, Outcome: OutcomeConfigured}
}

// appendBlock appends the block, preceded by one blank line and terminated
// with a newline, creating the profile if absent.
func appendBlock(profile string, lines []string) error {
	f, err := os.OpenFile(profile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString("\n" + strings.Join(lines, "\n") + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
