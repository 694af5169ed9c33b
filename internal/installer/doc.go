// Package installer runs the platform package manager to install the native
// tools the secret manager depends on: keepassxc, jq, and gnupg.
//
// Each platform variant has its own install strategy (Homebrew, apt-get,
// Chocolatey, or manual guidance). Commands run synchronously with inherited
// standard streams; only exit status is interpreted.
//
// # Error policy
//
// A required command that exits non-zero (or cannot be spawned) returns a
// *CommandError and aborts the run. An optional command failure, or a missing
// package manager, is logged and swallowed so the rest of the install can
// still do useful work.
package installer
