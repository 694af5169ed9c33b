package main

import (
	"fmt"
	"os"

	"github.com/ceca-federico-dev/manage-secret/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "manage-secret",
	Short: "Installer for the local secret-management toolkit.",
	Long: `manage-secret provisions a local secret-management toolkit on this machine.

It detects the host operating system, installs the required native tools
(keepassxc, jq, gnupg) through the platform package manager, deploys the
bundled helper scripts into ~/.secret-manager, and configures your shell so
the toolkit is reachable through the secret-add, secret-ls, and secret-apply
aliases.

Available Commands:
  install    Install dependencies, deploy scripts, and configure the shell
  doctor     Run health checks on the installed toolkit
  status     Show the current install state

Run 'manage-secret help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Run 'manage-secret install' to set up the secret-management toolkit.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.InstallCmd)
	rootCmd.AddCommand(cmd.DoctorCmd)
	rootCmd.AddCommand(cmd.StatusCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
