package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ceca-federico-dev/manage-secret/internal/deploy"
	"github.com/ceca-federico-dev/manage-secret/internal/shellcfg"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Result holds the complete result of a doctor run.
type Result struct {
	Checks      []CheckResult `json:"checks"`
	Summary     Summary       `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// Summary holds counts of checks by status.
type Summary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// Doctor runs read-only health checks against an installed toolkit: native
// tool availability, deployed assets, and shell configuration. It never
// mutates the filesystem.
type Doctor struct {
	LookPath func(string) (string, error)
	Deployer *deploy.Deployer
	Shell    *shellcfg.Configurator
}

// Run executes all checks and aggregates the results.
func (d *Doctor) Run() *Result {
	var results []CheckResult
	results = append(results, d.checkTools()...)
	results = append(results, d.checkInstallDir())
	results = append(results, d.checkAssets()...)
	results = append(results, d.checkShellConfig())

	var summary Summary
	for _, r := range results {
		switch r.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}

	// Collect suggestions (deduplicated).
	var suggestions []string
	seen := make(map[string]bool)
	for _, r := range results {
		if r.Suggestion != "" && r.Status != CheckPass && !seen[r.Suggestion] {
			suggestions = append(suggestions, r.Suggestion)
			seen[r.Suggestion] = true
		}
	}

	return &Result{Checks: results, Summary: summary, Suggestions: suggestions}
}

// checkTools verifies the native dependencies resolve on the search path.
// KeePassXC is a GUI application and frequently not on PATH, so its absence
// is only a warning; jq and gpg are hard requirements of the manager script.
func (d *Doctor) checkTools() []CheckResult {
	var results []CheckResult

	if _, err := d.lookPath("keepassxc-cli"); err != nil {
		if _, err := d.lookPath("keepassxc"); err != nil {
			results = append(results, CheckResult{
				Name:       "KeePassXC",
				Status:     CheckWarning,
				Message:    "keepassxc not found on PATH",
				Suggestion: "Install KeePassXC through your package manager, or re-run 'manage-secret install'",
			})
		} else {
			results = append(results, toolPass("KeePassXC", "keepassxc"))
		}
	} else {
		results = append(results, toolPass("KeePassXC", "keepassxc-cli"))
	}

	for _, tool := range []string{"jq", "gpg"} {
		if _, err := d.lookPath(tool); err != nil {
			results = append(results, CheckResult{
				Name:       tool,
				Status:     CheckError,
				Message:    tool + " not found on PATH",
				Suggestion: "Re-run 'manage-secret install' to install missing dependencies",
			})
			continue
		}
		results = append(results, toolPass(tool, tool))
	}

	return results
}

func toolPass(name, binary string) CheckResult {
	return CheckResult{
		Name:    name,
		Status:  CheckPass,
		Message: binary + " found on PATH",
	}
}

func (d *Doctor) checkInstallDir() CheckResult {
	dir, err := d.Deployer.InstallDir()
	if err != nil {
		return CheckResult{
			Name:    "Install directory",
			Status:  CheckError,
			Message: fmt.Sprintf("Failed to resolve install directory: %v", err),
		}
	}

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return CheckResult{
			Name:       "Install directory",
			Status:     CheckError,
			Message:    dir + " does not exist",
			Suggestion: "Run 'manage-secret install' to deploy the toolkit",
		}
	}
	if err != nil {
		return CheckResult{
			Name:    "Install directory",
			Status:  CheckError,
			Message: fmt.Sprintf("Failed to stat %s: %v", dir, err),
		}
	}
	if !info.IsDir() {
		return CheckResult{
			Name:    "Install directory",
			Status:  CheckError,
			Message: dir + " exists but is not a directory",
		}
	}
	return CheckResult{
		Name:    "Install directory",
		Status:  CheckPass,
		Message: dir + " exists",
	}
}

func (d *Doctor) checkAssets() []CheckResult {
	dir, err := d.Deployer.InstallDir()
	if err != nil {
		return nil
	}

	var results []CheckResult
	for _, name := range deploy.AssetNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			results = append(results, CheckResult{
				Name:       name,
				Status:     CheckError,
				Message:    name + " is not deployed",
				Suggestion: "Run 'manage-secret install' to deploy the toolkit",
			})
			continue
		}
		if err != nil {
			results = append(results, CheckResult{
				Name:    name,
				Status:  CheckError,
				Message: fmt.Sprintf("Failed to stat %s: %v", path, err),
			})
			continue
		}
		if info.Mode().Perm()&0o100 == 0 {
			results = append(results, CheckResult{
				Name:       name,
				Status:     CheckWarning,
				Message:    name + " is deployed but not executable",
				Suggestion: "Run 'manage-secret install' to restore permissions",
			})
			continue
		}
		results = append(results, CheckResult{
			Name:    name,
			Status:  CheckPass,
			Message: name + " deployed and executable",
		})
	}
	return results
}

func (d *Doctor) checkShellConfig() CheckResult {
	profile, ok := d.Shell.ProfilePath()
	if !ok {
		return CheckResult{
			Name:       "Shell configuration",
			Status:     CheckWarning,
			Message:    "Shell could not be classified from SHELL",
			Suggestion: "Add the SECRETS_MANAGER_PATH export and aliases to your shell startup file manually",
		}
	}
	if !d.Shell.Configured() {
		return CheckResult{
			Name:       "Shell configuration",
			Status:     CheckError,
			Message:    profile + " has no secret-manager configuration block",
			Suggestion: "Run 'manage-secret install' to configure your shell",
		}
	}
	return CheckResult{
		Name:    "Shell configuration",
		Status:  CheckPass,
		Message: profile + " contains the configuration block",
	}
}

func (d *Doctor) lookPath(name string) (string, error) {
	return d.LookPath(name)
}
