// Package git is the Git capability consumed by the reconciler and the
// clone command. The Git interface is what the core depends on; CLI is
// the implementation that shells out to the git binary, targeting each
// repository with `git -C <dir>`.
package git
