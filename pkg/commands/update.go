package commands

import (
	"context"

	"github.com/arthur-debert/dotdot/pkg/logging"
)

// UpdateOptions defines the options for the Update command.
type UpdateOptions struct {
	WorkingDir string
	// Repos restricts the update; empty means every declared repo.
	Repos  []string
	DryRun bool
}

// Update pins repos to the revisions currently checked out.
func (r *Runner) Update(ctx context.Context, opts UpdateOptions) (*RepoReport, error) {
	logger := logging.GetLogger("core.commands")
	logger.Debug().Str("command", "Update").Strs("repos", opts.Repos).Bool("dry_run", opts.DryRun).Msg("Executing command")

	ws, err := r.LoadWorkspace(opts.WorkingDir)
	if err != nil {
		return nil, err
	}
	if len(ws.Repos) == 0 {
		return emptyReport(ws.Root, opts.DryRun), nil
	}

	results, err := r.reconciler().Update(ctx, ws.Root, ws.Repos, opts.Repos, opts.DryRun)
	if err != nil {
		return newReport(ws.Root, results, opts.DryRun), err
	}
	return newReport(ws.Root, results, opts.DryRun), nil
}
