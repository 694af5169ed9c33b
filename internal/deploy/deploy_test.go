package deploy

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	logger "github.com/ceca-federico-dev/manage-secret/internal/logging"
)

func newTestDeployer(t *testing.T) (*Deployer, string, *bytes.Buffer) {
	t.Helper()

	home := t.TempDir()
	assets := t.TempDir()
	var buf bytes.Buffer

	d := &Deployer{
		Logger:    logger.Logger{Verbose: true, Out: &buf, Err: &buf},
		AssetsDir: assets,
		HomeDir:   home,
	}
	return d, home, &buf
}

func writeAsset(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write asset: %v", err)
	}
}

func TestDeployAssets_CopiesBothScriptsExecutable(t *testing.T) {
	d, home, _ := newTestDeployer(t)
	writeAsset(t, d.AssetsDir, ManagerScript, "#!/bin/sh\necho manager\n")
	writeAsset(t, d.AssetsDir, GetSecretsScript, "console.log('secrets')\n")

	target, err := d.DeployAssets()
	if err != nil {
		t.Fatalf("DeployAssets failed: %v", err)
	}

	expectedTarget := filepath.Join(home, InstallDirName)
	if target != expectedTarget {
		t.Errorf("Expected target %s, got %s", expectedTarget, target)
	}

	for _, name := range AssetNames {
		info, err := os.Stat(filepath.Join(target, name))
		if err != nil {
			t.Fatalf("Expected %s to be deployed: %v", name, err)
		}
		if runtime.GOOS != "windows" && info.Mode().Perm() != 0o755 {
			t.Errorf("Expected %s to have mode 0755, got %v", name, info.Mode().Perm())
		}
	}
}

func TestDeployAssets_MissingSourceIsSkippedWithWarning(t *testing.T) {
	d, _, buf := newTestDeployer(t)
	writeAsset(t, d.AssetsDir, ManagerScript, "#!/bin/sh\n")
	// get-secrets.js deliberately absent.

	target, err := d.DeployAssets()
	if err != nil {
		t.Fatalf("Expected missing asset to be non-fatal, got: %v", err)
	}

	if _, err := os.Stat(filepath.Join(target, ManagerScript)); err != nil {
		t.Errorf("Expected %s to be deployed: %v", ManagerScript, err)
	}
	if _, err := os.Stat(filepath.Join(target, GetSecretsScript)); !os.IsNotExist(err) {
		t.Errorf("Expected %s to be absent from target", GetSecretsScript)
	}
	if !strings.Contains(buf.String(), GetSecretsScript) {
		t.Errorf("Expected warning naming the missing asset, got: %s", buf.String())
	}
}

func TestDeployAssets_SecondRunOverwritesInPlace(t *testing.T) {
	d, _, _ := newTestDeployer(t)
	writeAsset(t, d.AssetsDir, ManagerScript, "#!/bin/sh\necho v1\n")
	writeAsset(t, d.AssetsDir, GetSecretsScript, "// v1\n")

	target, err := d.DeployAssets()
	if err != nil {
		t.Fatalf("First DeployAssets failed: %v", err)
	}

	// Change a source and deploy again: same file set, updated contents.
	writeAsset(t, d.AssetsDir, ManagerScript, "#!/bin/sh\necho v2\n")
	if _, err := d.DeployAssets(); err != nil {
		t.Fatalf("Second DeployAssets failed: %v", err)
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		t.Fatalf("Failed to read target dir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected exactly 2 deployed files after re-run, got %d", len(entries))
	}

	content, err := os.ReadFile(filepath.Join(target, ManagerScript))
	if err != nil {
		t.Fatalf("Failed to read deployed script: %v", err)
	}
	if !strings.Contains(string(content), "v2") {
		t.Errorf("Expected overwrite with new content, got: %s", content)
	}
}

func TestDeployAssets_PreExistingDirectoryIsNotAnError(t *testing.T) {
	d, home, buf := newTestDeployer(t)
	writeAsset(t, d.AssetsDir, ManagerScript, "#!/bin/sh\n")
	writeAsset(t, d.AssetsDir, GetSecretsScript, "// js\n")

	if err := os.MkdirAll(filepath.Join(home, InstallDirName), 0o755); err != nil {
		t.Fatalf("Failed to pre-create install dir: %v", err)
	}

	if _, err := d.DeployAssets(); err != nil {
		t.Fatalf("Expected pre-existing directory to be success, got: %v", err)
	}
	if !strings.Contains(buf.String(), "already exists") {
		t.Errorf("Expected informational already-exists log, got: %s", buf.String())
	}
}

func TestInstallDir(t *testing.T) {
	d, home, _ := newTestDeployer(t)

	dir, err := d.InstallDir()
	if err != nil {
		t.Fatalf("InstallDir failed: %v", err)
	}
	if dir != filepath.Join(home, InstallDirName) {
		t.Errorf("Expected %s, got %s", filepath.Join(home, InstallDirName), dir)
	}

	// InstallDir is a pure query: it must not create the directory.
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("Expected InstallDir not to create the directory")
	}
}
