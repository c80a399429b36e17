// Package types defines the core types and interfaces used throughout dotdot.
// This includes the declarative workspace model (RepoConfig, WorkspaceConfig,
// ConfigSource), the derived ExposeMapping, and the FS capability consumed
// by discovery, reconciliation and link resolution.
package types
