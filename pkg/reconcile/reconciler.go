package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/arthur-debert/dotdot/pkg/filesystem"
	"github.com/arthur-debert/dotdot/pkg/git"
	"github.com/arthur-debert/dotdot/pkg/logging"
	"github.com/arthur-debert/dotdot/pkg/shell"
	"github.com/arthur-debert/dotdot/pkg/types"
	"github.com/rs/zerolog"
)

// Reconciler applies per-repo state transitions through its capabilities.
type Reconciler struct {
	FS    types.FS
	Git   git.Git
	Shell shell.Runner

	logger zerolog.Logger
}

// New creates a Reconciler. A nil fs defaults to the OS filesystem.
func New(fs types.FS, g git.Git, sh shell.Runner) *Reconciler {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	return &Reconciler{
		FS:     fs,
		Git:    g,
		Shell:  sh,
		logger: logging.GetLogger("reconcile"),
	}
}

// Restore brings a repo to its declared presence and pin: clone when
// missing, check out the pin when the checkout does not match it.
func (r *Reconciler) Restore(ctx context.Context, root string, repo types.DeclaredRepo) Result {
	start := time.Now()
	result := r.restore(ctx, root, repo)
	result.Duration = time.Since(start)
	r.log(result)
	return result
}

func (r *Reconciler) restore(ctx context.Context, root string, repo types.DeclaredRepo) Result {
	dir := repo.Path(root)
	cfg := repo.Config

	if !filesystem.Exists(r.FS, dir) {
		if err := r.Git.Clone(ctx, cfg.URL, dir); err != nil {
			return failed(repo.Name, err)
		}
		if cfg.HasRevision() {
			if err := r.Git.Checkout(ctx, dir, cfg.Revision); err != nil {
				return failed(repo.Name, err)
			}
		}
		if cfg.Install != "" {
			if err := r.Shell.Run(ctx, cfg.Install, dir); err != nil {
				return failed(repo.Name, errors.Wrap(err, errors.ErrShell, "install failed"))
			}
		}
		rev, err := r.Git.CurrentRev(ctx, dir)
		if err != nil {
			return failed(repo.Name, err)
		}
		msg := "cloned at " + ShortRev(rev)
		if cfg.Install != "" {
			msg += " (installed)"
		}
		return Result{Name: repo.Name, Outcome: OutcomeCloned, Message: msg, Revision: rev}
	}

	isRepo, err := r.Git.IsRepo(ctx, dir)
	if err != nil {
		return failed(repo.Name, err)
	}
	if !isRepo {
		return failed(repo.Name, errors.New(errors.ErrInvalidInput, "directory exists but is not a git repo").
			WithDetail("dir", dir))
	}

	if cfg.HasRevision() {
		current, err := r.Git.CurrentRev(ctx, dir)
		if err != nil {
			return failed(repo.Name, err)
		}
		if !RevisionMatches(current, cfg.Revision) {
			if err := r.Git.Checkout(ctx, dir, cfg.Revision); err != nil {
				return failed(repo.Name, err)
			}
			return Result{
				Name:     repo.Name,
				Outcome:  OutcomeCheckedOut,
				Message:  "checked out " + ShortRev(cfg.Revision),
				Revision: cfg.Revision,
			}
		}
	}

	return skipped(repo.Name, "already exists")
}

// PlanRestore reports what Restore would do without changing anything.
// Only read-only git queries are issued.
func (r *Reconciler) PlanRestore(ctx context.Context, root string, repo types.DeclaredRepo) Result {
	dir := repo.Path(root)
	cfg := repo.Config
	plan := func(o Outcome, msg string) Result {
		return Result{Name: repo.Name, Outcome: o, Message: msg, DryRun: true}
	}

	if !filesystem.Exists(r.FS, dir) {
		return plan(OutcomeCloned, "would clone from "+cfg.URL)
	}

	isRepo, err := r.Git.IsRepo(ctx, dir)
	if err != nil {
		return failed(repo.Name, err)
	}
	if !isRepo {
		res := failed(repo.Name, errors.New(errors.ErrInvalidInput, "directory exists but is not a git repo"))
		res.DryRun = true
		return res
	}

	if cfg.HasRevision() {
		current, err := r.Git.CurrentRev(ctx, dir)
		if err != nil {
			return failed(repo.Name, err)
		}
		if !RevisionMatches(current, cfg.Revision) {
			return plan(OutcomeCheckedOut, "would check out "+ShortRev(cfg.Revision))
		}
	}

	return plan(OutcomeSkipped, "would skip (already exists)")
}

// Pull fast-forwards a repo, but only when that cannot lose work or move a
// deliberately detached checkout.
func (r *Reconciler) Pull(ctx context.Context, root string, repo types.DeclaredRepo) Result {
	start := time.Now()
	result := r.pull(ctx, root, repo)
	result.Duration = time.Since(start)
	r.log(result)
	return result
}

func (r *Reconciler) pull(ctx context.Context, root string, repo types.DeclaredRepo) Result {
	dir := repo.Path(root)

	if !filesystem.Exists(r.FS, dir) {
		return skipped(repo.Name, "directory does not exist")
	}

	isRepo, err := r.Git.IsRepo(ctx, dir)
	if err != nil {
		return failed(repo.Name, err)
	}
	if !isRepo {
		return skipped(repo.Name, "not a git repo")
	}

	branch, err := r.Git.CurrentBranch(ctx, dir)
	if err != nil {
		return failed(repo.Name, err)
	}
	if branch == git.DetachedHEAD {
		return skipped(repo.Name, "detached HEAD")
	}

	dirty, err := r.Git.IsDirty(ctx, dir)
	if err != nil {
		return failed(repo.Name, err)
	}
	if dirty {
		return skipped(repo.Name, "uncommitted changes")
	}

	if err := r.Git.Pull(ctx, dir); err != nil {
		return failed(repo.Name, err)
	}

	result := Result{Name: repo.Name, Outcome: OutcomePulled, Message: "pulled"}
	if repo.Config.HasRevision() {
		current, err := r.Git.CurrentRev(ctx, dir)
		if err != nil {
			return failed(repo.Name, err)
		}
		result.Revision = current
		if !RevisionMatches(current, repo.Config.Revision) {
			result.Diverged = true
			result.Message = fmt.Sprintf("pulled (now diverged from pinned %s)", ShortRev(repo.Config.Revision))
		}
	}
	return result
}

// Exec runs command inside an existing repo directory.
func (r *Reconciler) Exec(ctx context.Context, root string, repo types.DeclaredRepo, command string) Result {
	start := time.Now()
	dir := repo.Path(root)

	var result Result
	if !filesystem.Exists(r.FS, dir) {
		result = skipped(repo.Name, "directory does not exist")
	} else if err := r.Shell.Run(ctx, command, dir); err != nil {
		result = failed(repo.Name, err)
	} else {
		result = Result{Name: repo.Name, Outcome: OutcomeSuccess, Message: "done"}
	}

	result.Duration = time.Since(start)
	r.log(result)
	return result
}

func (r *Reconciler) log(result Result) {
	r.logger.Debug().
		Err(result.Err).
		Str("repo", result.Name).
		Str("outcome", string(result.Outcome)).
		Str("message", result.Message).
		Dur("duration", result.Duration).
		Msg("Repo reconciled")
}
