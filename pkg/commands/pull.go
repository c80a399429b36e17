package commands

import (
	"context"

	"github.com/arthur-debert/dotdot/pkg/logging"
	"github.com/arthur-debert/dotdot/pkg/reconcile"
)

// PullOptions defines the options for the Pull command.
type PullOptions struct {
	WorkingDir string
}

// Pull fast-forwards every declared repo that is safe to pull.
func (r *Runner) Pull(ctx context.Context, opts PullOptions) (*RepoReport, error) {
	logger := logging.GetLogger("core.commands")
	logger.Debug().Str("command", "Pull").Msg("Executing command")

	ws, err := r.LoadWorkspace(opts.WorkingDir)
	if err != nil {
		return nil, err
	}
	if len(ws.Repos) == 0 {
		return emptyReport(ws.Root, false), nil
	}

	rec := r.reconciler()
	results := make([]reconcile.Result, 0, len(ws.Repos))
	for _, repo := range ws.Repos {
		results = append(results, rec.Pull(ctx, ws.Root, repo))
	}
	return newReport(ws.Root, results, false), nil
}
