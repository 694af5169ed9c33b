// Package shellcfg patches the user's shell startup file so the deployed
// secret manager is reachable via SECRETS_MANAGER_PATH and the secret-add,
// secret-ls, and secret-apply aliases.
//
// The appended block is guarded by a marker substring: re-running the
// installer never duplicates it. Profile selection follows the interactive
// shell ($SHELL): ~/.zshrc for zsh, ~/.bash_profile for bash on macOS,
// ~/.bashrc for bash elsewhere. Anything else is skipped with a warning.
package shellcfg
