package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/arthur-debert/dotdot/pkg/config"
	"github.com/arthur-debert/dotdot/pkg/filesystem"
	"github.com/arthur-debert/dotdot/pkg/types"
)

// Update records each selected repo's current revision as its pin, in the
// config file that declared it. names restricts the selection; unknown
// names are ignored. Each touched file is rewritten once, and nothing is
// written in dry-run mode or when no pin changes.
func (r *Reconciler) Update(ctx context.Context, root string, repos []types.DeclaredRepo, names []string, dryRun bool) ([]Result, error) {
	selected := Select(repos, names)

	var results []Result
	pending := map[string]map[string]string{}
	var order []string

	for _, repo := range selected {
		start := time.Now()
		result := r.updateOne(ctx, root, repo)
		result.DryRun = dryRun
		result.Duration = time.Since(start)
		r.log(result)
		results = append(results, result)

		if result.Outcome != OutcomeUpdated {
			continue
		}
		path := repo.Source.Path
		if _, ok := pending[path]; !ok {
			pending[path] = map[string]string{}
			order = append(order, path)
		}
		pending[path][repo.Name] = result.Revision
	}

	if dryRun {
		return results, nil
	}

	for _, path := range order {
		if err := config.SetRevisions(r.FS, path, pending[path]); err != nil {
			return results, err
		}
		r.logger.Info().Str("path", path).Int("pins", len(pending[path])).Msg("Pinned revisions written")
	}
	return results, nil
}

func (r *Reconciler) updateOne(ctx context.Context, root string, repo types.DeclaredRepo) Result {
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

	current, err := r.Git.CurrentRev(ctx, dir)
	if err != nil {
		return failed(repo.Name, err)
	}

	pinned := repo.Config.Revision
	if current == pinned {
		return Result{Name: repo.Name, Outcome: OutcomeUnchanged, Message: "already at " + ShortRev(current), Revision: current}
	}

	msg := "pinned at " + ShortRev(current)
	if pinned != "" {
		msg = fmt.Sprintf("%s -> %s", ShortRev(pinned), ShortRev(current))
	}
	return Result{Name: repo.Name, Outcome: OutcomeUpdated, Message: msg, Revision: current}
}

// Select keeps the repos named in names, in declared order. An empty names
// selects everything.
func Select(repos []types.DeclaredRepo, names []string) []types.DeclaredRepo {
	if len(names) == 0 {
		return repos
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var out []types.DeclaredRepo
	for _, repo := range repos {
		if wanted[repo.Name] {
			out = append(out, repo)
		}
	}
	return out
}
