package cmd

import (
	"fmt"
	"runtime"

	"github.com/ceca-federico-dev/manage-secret/internal/deploy"
	"github.com/ceca-federico-dev/manage-secret/internal/installer"
	logger "github.com/ceca-federico-dev/manage-secret/internal/logging"
	"github.com/ceca-federico-dev/manage-secret/internal/platform"
	"github.com/ceca-federico-dev/manage-secret/internal/shellcfg"
	"github.com/ceca-federico-dev/manage-secret/internal/ui"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger
)

// Environment seams shared by install, doctor, and status. Production values
// talk to the real host; tests substitute fakes so no package manager runs
// and no real dotfile is touched.
var (
	installRunner    installer.Runner = installer.ExecRunner{}
	installGOOS                       = runtime.GOOS
	installHomeDir   string
	installAssetsDir string
	installShell     string
)

var InstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the secret-management toolkit on this machine",
	Long: `Installs the secret-management toolkit in three stages:

  1. Install the native dependencies (keepassxc, jq, gnupg) through the
     platform package manager (brew, apt-get, or choco).
  2. Deploy the manage-secrets.sh and get-secrets.js helper scripts into
     ~/.secret-manager with executable permission.
  3. Append the SECRETS_MANAGER_PATH export and secret-* aliases to your
     shell startup file, unless already present.

The command is idempotent: re-running it overwrites the deployed scripts in
place and never duplicates the shell configuration. A missing package manager
or an unrecognized shell degrades the install with a warning instead of
failing it; only a failed required package-manager command aborts the run.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{Verbose: verbose, Debug: debug}
		Logger.Debugf("Initializing install command with verbose=%t, debug=%t", verbose, debug)
	},
	RunE: runInstall,
}

func init() {
	InstallCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	InstallCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

func runInstall(cmd *cobra.Command, args []string) error {
	fmt.Println()
	figure.NewColorFigure("Secrets", "alligator2", "green", true).Print()
	fmt.Println()

	spinner, cleanup := startSpinner("Installing secret-management toolkit...", verbose)
	defer cleanup()

	variant := platform.Detect(installGOOS, installRunner.LookPath)
	Logger.Infof("Detected OS: %s", variant)

	inst := &installer.Installer{Runner: installRunner, Logger: Logger, GOOS: installGOOS}
	if err := inst.InstallDependencies(variant); err != nil {
		spinner.FinalMSG = ui.Error.Sprint("✗") + " Installation failed: " + err.Error()
		return err
	}

	target, err := newDeployer().DeployAssets()
	if err != nil {
		spinner.FinalMSG = ui.Error.Sprint("✗") + " Installation failed: " + err.Error()
		return err
	}

	result := newConfigurator().ConfigureShell(target)

	finalMessage := ui.Success.Sprint("✓") + " Installation complete!\n" +
		ui.Info.Sprint("→") + " Toolkit deployed to " + ui.Path.Sprint(target) + "\n"
	switch result.Outcome {
	case shellcfg.OutcomeConfigured:
		finalMessage += ui.Info.Sprint("→") + " Restart your terminal or run " +
			ui.Code.Sprint("source "+result.ProfilePath) + "\n"
	case shellcfg.OutcomeAlreadyConfigured:
		finalMessage += ui.Info.Sprint("→") + " Shell configuration already present in " +
			ui.Path.Sprint(result.ProfilePath) + "\n"
	case shellcfg.OutcomeSkipped:
		finalMessage += ui.Warning.Sprint("⚠") + " Shell not configured; add the " +
			"SECRETS_MANAGER_PATH export and aliases to your startup file manually\n"
	case shellcfg.OutcomeFailed:
		finalMessage += ui.Warning.Sprint("⚠") + " Could not update " +
			ui.Path.Sprint(result.ProfilePath) + "; see the error above\n"
	}

	spinner.FinalMSG = finalMessage
	return nil
}

func newDeployer() *deploy.Deployer {
	return &deploy.Deployer{
		Logger:    Logger,
		AssetsDir: installAssetsDir,
		HomeDir:   installHomeDir,
	}
}

func newConfigurator() *shellcfg.Configurator {
	return &shellcfg.Configurator{
		Logger:  Logger,
		Shell:   installShell,
		GOOS:    installGOOS,
		HomeDir: installHomeDir,
	}
}
