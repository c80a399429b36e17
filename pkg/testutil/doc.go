// Package testutil provides utilities for testing dotdot components.
//
// Key components:
//   - TestEnvironment: a workspace root on an isolated filesystem plus fake
//     git and shell capabilities wired to it
//   - FakeGit: in-memory git that materialises clones on the test filesystem
//     and records every call
//   - FakeShell: records commands and fails on demand
//
// Most tests should use EnvMemoryOnly. Tests that need real symlinks or the
// git binary use EnvIsolated.
package testutil
