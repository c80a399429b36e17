package commands

import (
	"context"

	"github.com/arthur-debert/dotdot/pkg/logging"
	"github.com/arthur-debert/dotdot/pkg/reconcile"
)

// RestoreOptions defines the options for the Restore command.
type RestoreOptions struct {
	WorkingDir string
	DryRun     bool
}

// Restore clones missing repos and checks out pins.
func (r *Runner) Restore(ctx context.Context, opts RestoreOptions) (*RepoReport, error) {
	logger := logging.GetLogger("core.commands")
	logger.Debug().Str("command", "Restore").Bool("dry_run", opts.DryRun).Msg("Executing command")

	ws, err := r.LoadWorkspace(opts.WorkingDir)
	if err != nil {
		return nil, err
	}
	if len(ws.Repos) == 0 {
		return emptyReport(ws.Root, opts.DryRun), nil
	}

	rec := r.reconciler()
	results := make([]reconcile.Result, 0, len(ws.Repos))
	for _, repo := range ws.Repos {
		if opts.DryRun {
			results = append(results, rec.PlanRestore(ctx, ws.Root, repo))
		} else {
			results = append(results, rec.Restore(ctx, ws.Root, repo))
		}
	}
	return newReport(ws.Root, results, opts.DryRun), nil
}
