package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ceca-federico-dev/manage-secret/internal/deploy"
	logger "github.com/ceca-federico-dev/manage-secret/internal/logging"
	"github.com/ceca-federico-dev/manage-secret/internal/platform"
	"github.com/ceca-federico-dev/manage-secret/internal/ui"

	"github.com/spf13/cobra"
)

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current install state",
	Long: `Display the current state of the secret-management toolkit install.

Shows the detected platform, package-manager availability, install directory
contents, and shell configuration state. This command is read-only.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{Verbose: verbose, Debug: debug}
	},
	RunE: runStatus,
}

func init() {
	StatusCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	StatusCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

// installStatus holds everything the status command reports.
type installStatus struct {
	Variant        platform.Variant
	PackageManager string
	ManagerOnPath  bool

	InstallDir       string
	InstallDirExists bool
	Assets           []assetStatus

	ShellName       string
	ProfilePath     string
	ShellConfigured bool
}

type assetStatus struct {
	Name       string
	Deployed   bool
	Executable bool
}

func runStatus(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting status command")

	spinner, cleanup := startSpinner("Gathering install status...", verbose)
	defer cleanup()

	status, err := gatherInstallStatus()
	if err != nil {
		printError("Failed to gather install status", err)
		return err
	}

	spinner.FinalMSG = formatInstallStatus(status)
	return nil
}

func gatherInstallStatus() (*installStatus, error) {
	status := &installStatus{
		Variant: platform.Detect(installGOOS, installRunner.LookPath),
	}

	switch status.Variant {
	case platform.MacOS:
		status.PackageManager = "brew"
	case platform.LinuxApt:
		status.PackageManager = "apt-get"
	case platform.Windows:
		status.PackageManager = "choco"
	}
	if status.PackageManager != "" {
		_, err := installRunner.LookPath(status.PackageManager)
		status.ManagerOnPath = err == nil
	}

	dep := newDeployer()
	dir, err := dep.InstallDir()
	if err != nil {
		return nil, err
	}
	status.InstallDir = dir

	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		status.InstallDirExists = true
	}

	for _, name := range deploy.AssetNames {
		asset := assetStatus{Name: name}
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil {
			asset.Deployed = true
			asset.Executable = info.Mode().Perm()&0o100 != 0
		}
		status.Assets = append(status.Assets, asset)
	}

	cfg := newConfigurator()
	status.ShellName = filepath.Base(os.Getenv("SHELL"))
	if installShell != "" {
		status.ShellName = filepath.Base(installShell)
	}
	if profile, ok := cfg.ProfilePath(); ok {
		status.ProfilePath = profile
		status.ShellConfigured = cfg.Configured()
	}

	return status, nil
}

func formatInstallStatus(status *installStatus) string {
	var b strings.Builder

	b.WriteString("Secret Manager Status\n")
	b.WriteString("=====================\n\n")

	b.WriteString(fmt.Sprintf("Platform: %s\n", status.Variant))
	if status.PackageManager != "" {
		icon := ui.Error.Sprint("✗")
		if status.ManagerOnPath {
			icon = ui.Success.Sprint("✓")
		}
		b.WriteString(fmt.Sprintf("Package manager: %s %s\n", ui.Highlight.Sprint(status.PackageManager), icon))
	} else {
		b.WriteString("Package manager: " + ui.Muted.Sprint("none detected") + "\n")
	}

	b.WriteString("\n")
	if status.InstallDirExists {
		b.WriteString(fmt.Sprintf("Install directory: %s %s\n", ui.Path.Sprint(status.InstallDir), ui.Success.Sprint("✓")))
	} else {
		b.WriteString(fmt.Sprintf("Install directory: %s %s\n", ui.Path.Sprint(status.InstallDir), ui.Error.Sprint("✗")))
	}
	for _, asset := range status.Assets {
		switch {
		case asset.Deployed && asset.Executable:
			b.WriteString(fmt.Sprintf("  %s %s\n", ui.Success.Sprint("✓"), asset.Name))
		case asset.Deployed:
			b.WriteString(fmt.Sprintf("  %s %s %s\n", ui.Warning.Sprint("⚠"), asset.Name, ui.Muted.Sprint("not executable")))
		default:
			b.WriteString(fmt.Sprintf("  %s %s %s\n", ui.Error.Sprint("✗"), asset.Name, ui.Muted.Sprint("not deployed")))
		}
	}

	b.WriteString("\n")
	if status.ProfilePath == "" {
		b.WriteString("Shell: " + ui.Muted.Sprint("not recognized") + "\n")
	} else if status.ShellConfigured {
		b.WriteString(fmt.Sprintf("Shell: %s, configured in %s %s\n",
			ui.Highlight.Sprint(status.ShellName), ui.Path.Sprint(status.ProfilePath), ui.Success.Sprint("✓")))
	} else {
		b.WriteString(fmt.Sprintf("Shell: %s, not configured in %s %s\n",
			ui.Highlight.Sprint(status.ShellName), ui.Path.Sprint(status.ProfilePath), ui.Error.Sprint("✗")))
	}

	if !status.InstallDirExists || !status.ShellConfigured {
		b.WriteString("\n" + ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("manage-secret install") + " to complete setup\n")
	}

	return b.String()
}
