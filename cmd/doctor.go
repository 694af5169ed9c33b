package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ceca-federico-dev/manage-secret/internal/doctor"
	logger "github.com/ceca-federico-dev/manage-secret/internal/logging"
	"github.com/ceca-federico-dev/manage-secret/internal/ui"

	"github.com/spf13/cobra"
)

var (
	doctorJSONOutput bool
	// doctorExitFunc is the function called to exit with a specific code.
	// Can be overridden for testing.
	doctorExitFunc = os.Exit
)

func init() {
	DoctorCmd.Flags().BoolVar(&doctorJSONOutput, "json", false, "output in JSON format")
	DoctorCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	DoctorCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

// SetDoctorExitFunc sets the exit function for testing purposes.
func SetDoctorExitFunc(f func(int)) {
	doctorExitFunc = f
}

var DoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks on the installed toolkit",
	Long: `Runs a series of health checks on the installed toolkit and reports issues.

The doctor command checks:
  - keepassxc, jq, and gpg availability on the search path
  - Install directory existence
  - Deployed helper scripts and their executable permission
  - Shell startup file configuration

Exit codes:
  0 - All checks passed
  1 - Warnings found (non-critical issues)
  2 - Errors found (critical issues)

Use --json for machine-readable output.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{Verbose: verbose, Debug: debug}
	},
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting doctor command")

	spinner, cleanup := startSpinner("Running health checks...", verbose)
	defer cleanup()

	d := &doctor.Doctor{
		LookPath: installRunner.LookPath,
		Deployer: newDeployer(),
		Shell:    newConfigurator(),
	}
	result := d.Run()

	for _, check := range result.Checks {
		Logger.Debugf("Check %s: status=%s, message=%s", check.Name, check.Status.String(), check.Message)
	}

	// Output results.
	if doctorJSONOutput {
		spinner.FinalMSG = ""
		if err := outputDoctorJSON(result); err != nil {
			return err
		}
	} else {
		spinner.FinalMSG = ""
		printDoctorResults(result)
		if result.Summary.Errors > 0 {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Health checks completed with errors"
		} else if result.Summary.Warnings > 0 {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Health checks completed with warnings"
		} else {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Health checks completed"
		}
	}

	// Set exit code based on results.
	if result.Summary.Errors > 0 {
		doctorExitFunc(2)
	}
	if result.Summary.Warnings > 0 {
		doctorExitFunc(1)
	}
	return nil
}

// outputDoctorJSON outputs the result as JSON.
func outputDoctorJSON(result *doctor.Result) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// printDoctorResults prints the doctor results in a human-readable format.
func printDoctorResults(result *doctor.Result) {
	fmt.Println("Running health checks...")
	fmt.Println()

	for _, check := range result.Checks {
		var statusIcon string
		switch check.Status {
		case doctor.CheckPass:
			statusIcon = ui.Success.Sprint("✓")
		case doctor.CheckWarning:
			statusIcon = ui.Warning.Sprint("⚠")
		case doctor.CheckError:
			statusIcon = ui.Error.Sprint("✗")
		}
		fmt.Printf("%s %s\n", statusIcon, check.Message)
	}

	fmt.Println()
	fmt.Printf("Summary: %d passed", result.Summary.Passed)
	if result.Summary.Warnings > 0 {
		fmt.Printf(", %s", ui.Warning.Sprint(fmt.Sprintf("%d warning(s)", result.Summary.Warnings)))
	}
	if result.Summary.Errors > 0 {
		fmt.Printf(", %s", ui.Error.Sprint(fmt.Sprintf("%d error(s)", result.Summary.Errors)))
	}
	fmt.Println()

	if len(result.Suggestions) > 0 {
		fmt.Println()
		fmt.Println("Suggestions:")
		for _, suggestion := range result.Suggestions {
			fmt.Printf("  %s %s\n", ui.Info.Sprint("→"), suggestion)
		}
	}
}
