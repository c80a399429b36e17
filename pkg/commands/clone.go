package commands

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotdot/pkg/config"
	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/arthur-debert/dotdot/pkg/filesystem"
	"github.com/arthur-debert/dotdot/pkg/logging"
	"github.com/arthur-debert/dotdot/pkg/types"
)

// CloneOptions defines the options for the Clone command.
type CloneOptions struct {
	WorkingDir string
	URL        string
	// Name is the target directory; derived from URL when empty.
	Name string
	// Install runs in the new checkout and is recorded in the config.
	Install string
}

// CloneResult describes the new checkout.
type CloneResult struct {
	Name       string
	Path       string
	Revision   string
	ConfigPath string
	Installed  bool
}

// RepoNameFromURL derives a directory name from a clone URL:
// git@host:org/repo.git, https://host/org/repo and /path/repo.git all give
// "repo".
func RepoNameFromURL(url string) string {
	name := strings.TrimRight(strings.TrimSpace(url), "/")
	name = strings.TrimSuffix(name, ".git")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Clone clones a repo into the workspace root and declares it, pinned at
// the cloned revision, in the root config. A pre-existing target aborts
// before anything is written.
func (r *Runner) Clone(ctx context.Context, opts CloneOptions) (*CloneResult, error) {
	logger := logging.GetLogger("core.commands")
	logger.Debug().Str("command", "Clone").Str("url", opts.URL).Str("name", opts.Name).Msg("Executing command")

	if strings.TrimSpace(opts.URL) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "url cannot be empty")
	}

	ws, err := r.LoadWorkspace(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	name := opts.Name
	if name == "" {
		name = RepoNameFromURL(opts.URL)
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, errors.Newf(errors.ErrInvalidInput, "cannot use %q as a repo directory name", name).
			WithDetail("url", opts.URL)
	}

	target := filepath.Join(ws.Root, name)
	if kind, _ := filesystem.TypeOf(r.FS, target); kind != filesystem.EntryMissing {
		return nil, errors.Newf(errors.ErrTargetExists, "target directory '%s' already exists", name).
			WithDetail("path", target)
	}

	if err := r.Git.Clone(ctx, opts.URL, target); err != nil {
		return nil, err
	}
	rev, err := r.Git.CurrentRev(ctx, target)
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(ws.Root, config.ConfigFileName)
	entry := types.RepoConfig{URL: opts.URL, Revision: rev, Install: opts.Install}
	if existing, ok := ws.Sources[0].Config.Repos[name]; ok {
		entry.Expose = existing.Expose
	}
	if err := config.UpsertRepo(r.FS, configPath, name, entry); err != nil {
		return nil, err
	}

	result := &CloneResult{Name: name, Path: target, Revision: rev, ConfigPath: configPath}
	logger.Info().Str("repo", name).Str("revision", rev).Msg("Repo cloned and declared")

	if opts.Install != "" {
		if err := r.Shell.Run(ctx, opts.Install, target); err != nil {
			return result, errors.Wrap(err, errors.ErrShell, "install failed")
		}
		result.Installed = true
	}
	return result, nil
}
