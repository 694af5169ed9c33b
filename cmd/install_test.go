package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ceca-federico-dev/manage-secret/internal/deploy"
	"github.com/ceca-federico-dev/manage-secret/internal/installer"
	"github.com/ceca-federico-dev/manage-secret/internal/shellcfg"

	"github.com/spf13/cobra"
)

// fakeRunner records invocations and returns configured results so no real
// package manager runs during tests.
type fakeRunner struct {
	onPath []string
	failOn map[string]error
	calls  [][]string
}

func (f *fakeRunner) Run(argv []string) error {
	f.calls = append(f.calls, argv)
	if err, ok := f.failOn[strings.Join(argv, " ")]; ok {
		return &installer.CommandError{Argv: argv, Err: err}
	}
	return nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	for _, p := range f.onPath {
		if p == name {
			return "/usr/bin/" + name, nil
		}
	}
	return "", errors.New("executable file not found in $PATH")
}

func writeTestAssets(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\necho payload\n"), 0o644); err != nil {
			t.Fatalf("Failed to write asset %s: %v", name, err)
		}
	}
}

func executeCommand(sub *cobra.Command, args ...string) (string, error) {
	rootCmd := &cobra.Command{Use: "manage-secret"}
	rootCmd.AddCommand(sub)
	rootCmd.SetArgs(append([]string{sub.Name()}, args...))
	return captureOutput(func() error {
		return rootCmd.Execute()
	})
}

func TestInstallCmd_EndToEndLinuxApt(t *testing.T) {
	home := t.TempDir()
	assets := t.TempDir()
	writeTestAssets(t, assets, deploy.AssetNames...)
	runner := &fakeRunner{onPath: []string{"apt-get"}}
	setupTestEnvironment(t, runner, "linux", home, assets, "/bin/bash")

	output, err := executeCommand(InstallCmd)
	if err != nil {
		t.Fatalf("Install failed: %v\noutput: %s", err, output)
	}

	// Both apt commands ran, in order.
	if len(runner.calls) != 2 {
		t.Fatalf("Expected 2 package-manager calls, got: %v", runner.calls)
	}
	if strings.Join(runner.calls[0], " ") != "sudo apt-get update" {
		t.Errorf("Expected apt-get update first, got: %v", runner.calls[0])
	}
	if strings.Join(runner.calls[1], " ") != "sudo apt-get install -y keepassxc jq gnupg" {
		t.Errorf("Expected apt-get install second, got: %v", runner.calls[1])
	}

	// Both assets deployed with executable permission.
	installDir := filepath.Join(home, deploy.InstallDirName)
	for _, name := range deploy.AssetNames {
		info, statErr := os.Stat(filepath.Join(installDir, name))
		if statErr != nil {
			t.Fatalf("Expected %s to be deployed: %v", name, statErr)
		}
		if info.Mode().Perm()&0o100 == 0 {
			t.Errorf("Expected %s to be owner-executable, got mode %v", name, info.Mode().Perm())
		}
	}

	// The five-line block landed in .bashrc with the export path bound to the
	// deployed manager script.
	content, readErr := os.ReadFile(filepath.Join(home, ".bashrc"))
	if readErr != nil {
		t.Fatalf("Expected .bashrc to be created: %v", readErr)
	}
	wantExport := `export SECRETS_MANAGER_PATH="` + filepath.Join(installDir, deploy.ManagerScript) + `"`
	if !strings.Contains(string(content), wantExport) {
		t.Errorf("Expected export line %q in .bashrc, got: %s", wantExport, content)
	}
	for _, alias := range []string{"secret-add", "secret-ls", "secret-apply"} {
		if !strings.Contains(string(content), "alias "+alias) {
			t.Errorf("Expected alias %s in .bashrc", alias)
		}
	}

	if !strings.Contains(output, "Installation complete!") {
		t.Errorf("Expected success message, got: %s", output)
	}
}

func TestInstallCmd_SecondRunIsIdempotent(t *testing.T) {
	home := t.TempDir()
	assets := t.TempDir()
	writeTestAssets(t, assets, deploy.AssetNames...)
	runner := &fakeRunner{onPath: []string{"apt-get"}}
	setupTestEnvironment(t, runner, "linux", home, assets, "/bin/bash")

	if _, err := executeCommand(InstallCmd); err != nil {
		t.Fatalf("First install failed: %v", err)
	}

	rcFile := filepath.Join(home, ".bashrc")
	first, err := os.ReadFile(rcFile)
	if err != nil {
		t.Fatalf("Failed to read .bashrc: %v", err)
	}

	output, err := executeCommand(InstallCmd)
	if err != nil {
		t.Fatalf("Second install failed: %v", err)
	}

	second, err := os.ReadFile(rcFile)
	if err != nil {
		t.Fatalf("Failed to read .bashrc: %v", err)
	}
	if string(first) != string(second) {
		t.Error("Expected .bashrc to be unchanged after second run")
	}
	if strings.Count(string(second), shellcfg.Marker) != 1 {
		t.Errorf("Expected exactly one configuration block, got %d markers", strings.Count(string(second), shellcfg.Marker))
	}
	if !strings.Contains(output, "already exists") {
		t.Errorf("Expected already-exists message on second run, got: %s", output)
	}

	// Same file set in the install directory.
	entries, err := os.ReadDir(filepath.Join(home, deploy.InstallDirName))
	if err != nil {
		t.Fatalf("Failed to read install dir: %v", err)
	}
	if len(entries) != len(deploy.AssetNames) {
		t.Errorf("Expected %d deployed files, got %d", len(deploy.AssetNames), len(entries))
	}
}

func TestInstallCmd_RequiredCommandFailureAborts(t *testing.T) {
	home := t.TempDir()
	assets := t.TempDir()
	writeTestAssets(t, assets, deploy.AssetNames...)
	runner := &fakeRunner{
		onPath: []string{"apt-get"},
		failOn: map[string]error{"sudo apt-get update": errors.New("exit status 100")},
	}
	setupTestEnvironment(t, runner, "linux", home, assets, "/bin/bash")

	output, err := executeCommand(InstallCmd)
	if err == nil {
		t.Fatal("Expected install to fail when a required command fails")
	}
	if !strings.Contains(err.Error(), "sudo apt-get update") {
		t.Errorf("Expected error to name the failed command, got: %v", err)
	}
	if !strings.Contains(output, "Installation failed") {
		t.Errorf("Expected failure message, got: %s", output)
	}

	// Deployment never ran.
	if _, statErr := os.Stat(filepath.Join(home, deploy.InstallDirName)); !os.IsNotExist(statErr) {
		t.Error("Expected install directory not to be created after fatal failure")
	}
}

func TestInstallCmd_OptionalCaskFailureStillSucceeds(t *testing.T) {
	home := t.TempDir()
	assets := t.TempDir()
	writeTestAssets(t, assets, deploy.AssetNames...)
	runner := &fakeRunner{
		onPath: []string{"brew"},
		failOn: map[string]error{"brew install --cask keepassxc": errors.New("exit status 1")},
	}
	setupTestEnvironment(t, runner, "darwin", home, assets, "/bin/zsh")

	output, err := executeCommand(InstallCmd)
	if err != nil {
		t.Fatalf("Expected optional failure not to abort the install, got: %v", err)
	}
	if !strings.Contains(output, "Installation complete!") {
		t.Errorf("Expected success message, got: %s", output)
	}

	// zsh profile configured.
	if _, statErr := os.Stat(filepath.Join(home, ".zshrc")); statErr != nil {
		t.Errorf("Expected .zshrc to be created: %v", statErr)
	}
}

func TestInstallCmd_MissingAssetDegradesGracefully(t *testing.T) {
	home := t.TempDir()
	assets := t.TempDir()
	writeTestAssets(t, assets, deploy.ManagerScript) // companion script absent
	runner := &fakeRunner{onPath: []string{"apt-get"}}
	setupTestEnvironment(t, runner, "linux", home, assets, "/bin/bash")

	output, err := executeCommand(InstallCmd)
	if err != nil {
		t.Fatalf("Expected missing asset to be non-fatal, got: %v", err)
	}
	if !strings.Contains(output, deploy.GetSecretsScript) {
		t.Errorf("Expected warning naming the missing asset, got: %s", output)
	}
	if _, statErr := os.Stat(filepath.Join(home, deploy.InstallDirName, deploy.GetSecretsScript)); !os.IsNotExist(statErr) {
		t.Error("Expected missing asset to be omitted from the target directory")
	}
}

func TestInstallCmd_UnclassifiableShellSkipsConfiguration(t *testing.T) {
	home := t.TempDir()
	assets := t.TempDir()
	writeTestAssets(t, assets, deploy.AssetNames...)
	runner := &fakeRunner{onPath: []string{"apt-get"}}
	setupTestEnvironment(t, runner, "linux", home, assets, "/usr/bin/fish")

	output, err := executeCommand(InstallCmd)
	if err != nil {
		t.Fatalf("Expected unknown shell to be non-fatal, got: %v", err)
	}
	if !strings.Contains(output, "manually") {
		t.Errorf("Expected manual-configuration guidance, got: %s", output)
	}
}

func TestInstallCmd_UnsupportedOSStillDeploys(t *testing.T) {
	home := t.TempDir()
	assets := t.TempDir()
	writeTestAssets(t, assets, deploy.AssetNames...)
	runner := &fakeRunner{}
	setupTestEnvironment(t, runner, "freebsd", home, assets, "/bin/bash")

	output, err := executeCommand(InstallCmd)
	if err != nil {
		t.Fatalf("Expected unsupported OS to be non-fatal, got: %v", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("Expected no package-manager commands, got: %v", runner.calls)
	}
	if !strings.Contains(output, "manually install") {
		t.Errorf("Expected manual-install guidance, got: %s", output)
	}
	if _, statErr := os.Stat(filepath.Join(home, deploy.InstallDirName, deploy.ManagerScript)); statErr != nil {
		t.Errorf("Expected scripts to deploy anyway: %v", statErr)
	}
}
