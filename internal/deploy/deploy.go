package deploy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	logger "github.com/ceca-federico-dev/manage-secret/internal/logging"
	"github.com/ceca-federico-dev/manage-secret/internal/ui"
)

// InstallDirName is the per-user directory housing the deployed scripts.
const InstallDirName = ".secret-manager"

// ManagerScript is the entry-point script the shell configuration binds to.
const ManagerScript = "manage-secrets.sh"

// GetSecretsScript is the companion script invoked by the manager.
const GetSecretsScript = "get-secrets.js"

// AssetNames lists the bundled scripts, manager first.
var AssetNames = []string{ManagerScript, GetSecretsScript}

// Deployer copies the bundled helper scripts into the install directory.
// Both scripts are opaque payloads: the deployer only knows their names and
// that they must land executable.
type Deployer struct {
	Logger logger.Logger

	// AssetsDir overrides where source assets are resolved from. Defaults to
	// the assets directory next to the running executable, not the current
	// working directory.
	AssetsDir string

	// HomeDir overrides the user home directory. Defaults to os.UserHomeDir.
	HomeDir string
}

func (d *Deployer) assetsDir() (string, error) {
	if d.AssetsDir != "" {
		return d.AssetsDir, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate installer executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), "assets"), nil
}

func (d *Deployer) homeDir() (string, error) {
	if d.HomeDir != "" {
		return d.HomeDir, nil
	}
	return os.UserHomeDir()
}

// InstallDir returns the install directory path without creating it.
func (d *Deployer) InstallDir() (string, error) {
	home, err := d.homeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, InstallDirName), nil
}

// DeployAssets idempotently creates the install directory and copies each
// bundled script into it with 0755 permissions, overwriting prior copies.
// A missing source asset is logged as a warning and skipped so partial
// installs can proceed. Returns the install directory path.
func (d *Deployer) DeployAssets() (string, error) {
	targetDir, err := d.InstallDir()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(targetDir); os.IsNotExist(err) {
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create %s: %w", targetDir, err)
		}
		d.Logger.Infof("Created directory: %s", ui.Path.Sprint(targetDir))
	} else {
		d.Logger.Infof("Install directory already exists: %s", ui.Path.Sprint(targetDir))
	}

	assetsDir, err := d.assetsDir()
	if err != nil {
		return "", err
	}

	for _, name := range AssetNames {
		src := filepath.Join(assetsDir, name)
		dst := filepath.Join(targetDir, name)

		if _, err := os.Stat(src); os.IsNotExist(err) {
			d.Logger.Warnf("Asset %s not found in %s", name, assetsDir)
			continue
		}

		if err := copyExecutable(src, dst); err != nil {
			return "", fmt.Errorf("failed to copy %s: %w", name, err)
		}
		d.Logger.Infof("Copied %s to %s", name, ui.Path.Sprint(targetDir))
	}

	return targetDir, nil
}

// copyExecutable copies src to dst, preserving the source modification time
// and leaving dst with owner rwx, group/other rx.
func copyExecutable(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// An overwritten destination keeps its old mode, and umask can narrow a
	// fresh one; chmod to the invariant bits explicitly.
	if err := os.Chmod(dst, 0o755); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
