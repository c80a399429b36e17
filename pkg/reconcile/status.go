package reconcile

import (
	"context"

	"github.com/arthur-debert/dotdot/pkg/filesystem"
	"github.com/arthur-debert/dotdot/pkg/git"
	"github.com/arthur-debert/dotdot/pkg/types"
)

// RepoStatus is a read-only snapshot of one declared repo.
type RepoStatus struct {
	Name     string
	Declared string
	Exists   bool
	IsRepo   bool
	Branch   string
	Detached bool
	Dirty    bool
	Revision string
	Pinned   string
	// Matches is true when unpinned or when Revision satisfies the pin.
	Matches bool
	Err     error
}

// Inspect reads the state of a repo without changing it.
func (r *Reconciler) Inspect(ctx context.Context, root string, repo types.DeclaredRepo) RepoStatus {
	dir := repo.Path(root)
	st := RepoStatus{
		Name:     repo.Name,
		Declared: repo.Source.Label(),
		Pinned:   repo.Config.Revision,
	}

	if st.Exists = filesystem.Exists(r.FS, dir); !st.Exists {
		return st
	}

	var err error
	if st.IsRepo, err = r.Git.IsRepo(ctx, dir); err != nil || !st.IsRepo {
		st.Err = err
		return st
	}
	if st.Branch, err = r.Git.CurrentBranch(ctx, dir); err != nil {
		st.Err = err
		return st
	}
	st.Detached = st.Branch == git.DetachedHEAD
	if st.Dirty, err = r.Git.IsDirty(ctx, dir); err != nil {
		st.Err = err
		return st
	}
	if st.Revision, err = r.Git.CurrentRev(ctx, dir); err != nil {
		st.Err = err
		return st
	}
	st.Matches = st.Pinned == "" || RevisionMatches(st.Revision, st.Pinned)
	return st
}
