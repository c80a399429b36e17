// Package config discovers, loads, merges and writes workspace config
// files (dotdot.toml), and loads the user's tool settings.
//
// A workspace is the nearest ancestor directory holding a dotdot.toml.
// Its direct child directories may carry their own dotdot.toml; those are
// merged after the root with first-seen-wins precedence.
package config
