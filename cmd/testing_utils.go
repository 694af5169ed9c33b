// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for overriding the environment seams,
// capturing output, and restoring global state between tests.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"runtime"
	"testing"

	"github.com/ceca-federico-dev/manage-secret/internal/installer"
	logger "github.com/ceca-federico-dev/manage-secret/internal/logging"
)

// setupTestEnvironment points every environment seam at test-controlled
// values and registers cleanup restoring the defaults.
func setupTestEnvironment(t *testing.T, runner installer.Runner, goos, home, assets, shell string) {
	t.Helper()

	installRunner = runner
	installGOOS = goos
	installHomeDir = home
	installAssetsDir = assets
	installShell = shell

	t.Cleanup(func() {
		installRunner = installer.ExecRunner{}
		installGOOS = runtime.GOOS
		installHomeDir = ""
		installAssetsDir = ""
		installShell = ""
		ResetGlobalState()
	})
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	Logger = logger.Logger{}
	doctorJSONOutput = false
	doctorExitFunc = os.Exit
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr.
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output.
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr.
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output.
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes.
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function.
	err := fn()

	// Close writers to signal EOF.
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr.
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output.
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}
