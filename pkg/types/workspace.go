package types

import (
	"path/filepath"
	"sort"
)

// RootLabel is the provenance label of the workspace root config.
const RootLabel = "(root)"

// RepoConfig is one declared repository.
type RepoConfig struct {
	// URL is the clone locator handed to git as is.
	URL string `toml:"url"`
	// Revision is the pinned commit, or a prefix of it.
	Revision string `toml:"revision,omitempty"`
	// Install runs in the repo directory after a fresh clone.
	Install string `toml:"install,omitempty"`
	// Expose lists repo-relative paths surfaced at the workspace root.
	Expose []string `toml:"expose,omitempty"`
}

// HasRevision reports whether the repo is pinned.
func (c RepoConfig) HasRevision() bool { return c.Revision != "" }

// WorkspaceConfig maps repo names to their declarations.
type WorkspaceConfig struct {
	Repos map[string]RepoConfig `toml:"repos"`
}

// NewWorkspaceConfig returns an empty config with an allocated repo map.
func NewWorkspaceConfig() WorkspaceConfig {
	return WorkspaceConfig{Repos: map[string]RepoConfig{}}
}

// Names returns the repo names in sorted order. This is the repo-entry
// order used for merging and expose traversal.
func (c WorkspaceConfig) Names() []string {
	names := make([]string, 0, len(c.Repos))
	for name := range c.Repos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy so callers can modify it before a write.
func (c WorkspaceConfig) Clone() WorkspaceConfig {
	out := NewWorkspaceConfig()
	for name, repo := range c.Repos {
		if repo.Expose != nil {
			repo.Expose = append([]string(nil), repo.Expose...)
		}
		out.Repos[name] = repo
	}
	return out
}

// ConfigSource is a loaded config plus where it came from.
type ConfigSource struct {
	Config WorkspaceConfig
	IsRoot bool
	// Dir is the absolute directory that holds the config file.
	Dir string
	// Path is the absolute path of the config file itself.
	Path string
}

// Label returns the human readable origin used in reports.
func (s ConfigSource) Label() string {
	if s.IsRoot {
		return RootLabel
	}
	return filepath.Base(s.Dir)
}

// DeclaredRepo is one entry of the merged repo set.
type DeclaredRepo struct {
	Name   string
	Config RepoConfig
	// Source is the config that won the declaration.
	Source ConfigSource
}

// Path returns the repo's checkout directory under the workspace root.
func (r DeclaredRepo) Path(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, r.Name)
}

// ExposeMapping is derived from an expose declaration.
type ExposeMapping struct {
	// Source is workspaceRoot/repo/exposePath.
	Source string
	// Target is workspaceRoot/basename(exposePath).
	Target string
	// TargetName is the collision key.
	TargetName string
	// DeclaredBy is the provenance label of the declaring config.
	DeclaredBy string
	// SourceRepo owns the exposed path.
	SourceRepo string
	// ExposePath is the path as written in the config.
	ExposePath string
}

// RelativeSource returns repo/exposePath, the value written into the symlink.
func (m ExposeMapping) RelativeSource() string {
	return filepath.Join(m.SourceRepo, filepath.Clean(m.ExposePath))
}
