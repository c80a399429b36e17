package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotdot/pkg/config"
	"github.com/arthur-debert/dotdot/pkg/filesystem"
	"github.com/arthur-debert/dotdot/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is a workspace root with its capabilities.
type TestEnvironment struct {
	Root  string
	FS    types.FS
	Git   *FakeGit
	Shell *FakeShell
	Type  EnvType

	t *testing.T
}

// NewTestEnvironment creates an empty workspace directory (no config file).
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewMemory()
		env.Root = "/workspace"
	case EnvIsolated:
		env.FS = filesystem.NewOS()
		root := t.TempDir()
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			root = resolved
		}
		env.Root = filepath.Join(root, "workspace")
	}

	if err := env.FS.MkdirAll(env.Root, 0755); err != nil {
		t.Fatalf("failed to create workspace root: %v", err)
	}
	env.Git = NewFakeGit(env.FS)
	env.Shell = &FakeShell{}
	return env
}

// Path joins rel onto the workspace root.
func (e *TestEnvironment) Path(rel ...string) string {
	return filepath.Join(append([]string{e.Root}, rel...)...)
}

// WriteFile writes content at a workspace relative path, creating parents.
func (e *TestEnvironment) WriteFile(rel, content string) string {
	e.t.Helper()
	path := e.Path(rel)
	if err := e.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := e.FS.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content at a workspace relative path.
func (e *TestEnvironment) ReadFile(rel string) string {
	e.t.Helper()
	data, err := e.FS.ReadFile(e.Path(rel))
	if err != nil {
		e.t.Fatalf("failed to read %s: %v", rel, err)
	}
	return string(data)
}

// Mkdir creates a workspace relative directory.
func (e *TestEnvironment) Mkdir(rel string) string {
	e.t.Helper()
	path := e.Path(rel)
	if err := e.FS.MkdirAll(path, 0755); err != nil {
		e.t.Fatalf("failed to create %s: %v", path, err)
	}
	return path
}

// WriteConfig writes cfg as the config file of a workspace relative
// directory; "" is the root.
func (e *TestEnvironment) WriteConfig(relDir string, cfg types.WorkspaceConfig) string {
	e.t.Helper()
	dir := e.Mkdir(relDir)
	path := filepath.Join(dir, config.ConfigFileName)
	if err := config.WriteConfigFile(e.FS, path, cfg); err != nil {
		e.t.Fatalf("failed to write config %s: %v", path, err)
	}
	return path
}

// Config builds a WorkspaceConfig from name/repo pairs.
func Config(repos map[string]types.RepoConfig) types.WorkspaceConfig {
	cfg := types.NewWorkspaceConfig()
	for name, repo := range repos {
		cfg.Repos[name] = repo
	}
	return cfg
}

// AddClone materialises an existing checkout of url at rev, as if it had
// been cloned earlier.
func (e *TestEnvironment) AddClone(name, url, rev string) *FakeRepo {
	e.t.Helper()
	dir := e.Mkdir(name)
	repo := &FakeRepo{URL: url, Rev: rev, Branch: "main"}
	e.Git.Repos[dir] = repo
	return repo
}

// Sources collects and returns the config sources of the workspace.
func (e *TestEnvironment) Sources() []types.ConfigSource {
	e.t.Helper()
	sources, err := config.CollectAllConfigs(e.FS, e.Root)
	if err != nil {
		e.t.Fatalf("failed to collect configs: %v", err)
	}
	return sources
}

// Declared returns the merged declared repo set of the workspace.
func (e *TestEnvironment) Declared() []types.DeclaredRepo {
	e.t.Helper()
	return config.DeclaredRepos(e.Sources())
}
