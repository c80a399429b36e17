package commands

import (
	"path/filepath"

	"github.com/arthur-debert/dotdot/pkg/config"
	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/arthur-debert/dotdot/pkg/filesystem"
	"github.com/arthur-debert/dotdot/pkg/git"
	"github.com/arthur-debert/dotdot/pkg/logging"
	"github.com/arthur-debert/dotdot/pkg/reconcile"
	"github.com/arthur-debert/dotdot/pkg/shell"
	"github.com/arthur-debert/dotdot/pkg/types"
)

// NoReposMessage is reported when the workspace declares nothing.
const NoReposMessage = "No repos declared"

// Runner bundles the capabilities every command needs.
type Runner struct {
	FS    types.FS
	Git   git.Git
	Shell shell.Runner
}

// NewRunner creates a Runner. A nil fs defaults to the OS filesystem.
func NewRunner(fs types.FS, g git.Git, sh shell.Runner) *Runner {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	return &Runner{FS: fs, Git: g, Shell: sh}
}

// NewDefaultRunner wires the real git and shell using settings.
func NewDefaultRunner(settings *config.Settings) *Runner {
	gitBinary, program := git.DefaultBinary, shell.DefaultProgram
	if settings != nil {
		gitBinary, program = settings.Git.Binary, settings.Shell.Program
	}
	return NewRunner(filesystem.NewOS(), git.NewCLI(gitBinary), shell.New(program))
}

func (r *Runner) reconciler() *reconcile.Reconciler {
	return reconcile.New(r.FS, r.Git, r.Shell)
}

// Workspace is the state every command starts from.
type Workspace struct {
	Root    string
	Sources []types.ConfigSource
	Repos   []types.DeclaredRepo
}

// LoadWorkspace finds the workspace containing workingDir and merges its
// configs. workingDir must be absolute.
func (r *Runner) LoadWorkspace(workingDir string) (*Workspace, error) {
	logger := logging.GetLogger("core.commands")
	dir, err := resolveWorkingDir(workingDir)
	if err != nil {
		return nil, err
	}

	root, err := config.FindWorkspaceRoot(r.FS, dir)
	if err != nil {
		return nil, err
	}
	sources, err := config.CollectAllConfigs(r.FS, root)
	if err != nil {
		return nil, err
	}

	ws := &Workspace{Root: root, Sources: sources, Repos: config.DeclaredRepos(sources)}
	logger.Debug().
		Str("root", root).
		Int("sources", len(sources)).
		Int("repos", len(ws.Repos)).
		Msg("Workspace loaded")
	return ws, nil
}

// resolveWorkingDir checks the caller supplied an absolute directory.
// The core never consults the process working directory.
func resolveWorkingDir(workingDir string) (string, error) {
	if workingDir == "" {
		return "", errors.New(errors.ErrInvalidInput, "working directory is required")
	}
	if !filepath.IsAbs(workingDir) {
		return "", errors.Newf(errors.ErrInvalidInput, "working directory %q is not absolute", workingDir)
	}
	return filepath.Clean(workingDir), nil
}

// RepoReport is the result of a command that visits every declared repo.
type RepoReport struct {
	Root    string
	Results []reconcile.Result
	Summary reconcile.Summary
	DryRun  bool
	// NoRepos is set when the workspace declares no repos at all.
	NoRepos bool
}

func newReport(root string, results []reconcile.Result, dryRun bool) *RepoReport {
	return &RepoReport{
		Root:    root,
		Results: results,
		Summary: reconcile.Summarize(results),
		DryRun:  dryRun,
	}
}

func emptyReport(root string, dryRun bool) *RepoReport {
	return &RepoReport{Root: root, DryRun: dryRun, NoRepos: true}
}
