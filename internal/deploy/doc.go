// Package deploy places the bundled secret-manager scripts into the per-user
// install directory (~/.secret-manager) with executable permission.
//
// Deployment is idempotent: a pre-existing directory is success, and copies
// overwrite rather than accumulate. Sources are resolved relative to the
// installer binary's own assets directory, so the tool behaves the same from
// any working directory.
package deploy
