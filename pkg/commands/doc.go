// Package commands provides high-level command implementations for dotdot.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the core packages: every command discovers
// the workspace from its working directory, re-reads the config files,
// merges them and drives pkg/reconcile or pkg/links.
//
// Commands return result structs; rendering is left to the caller.
package commands
