package commands

import (
	"context"

	"github.com/arthur-debert/dotdot/pkg/logging"
	"github.com/arthur-debert/dotdot/pkg/reconcile"
)

// StatusOptions defines the options for the Status command.
type StatusOptions struct {
	WorkingDir string
}

// StatusReport lists the state of every declared repo.
type StatusReport struct {
	Root    string
	Repos   []reconcile.RepoStatus
	NoRepos bool
}

// Status inspects every declared repo without changing anything.
func (r *Runner) Status(ctx context.Context, opts StatusOptions) (*StatusReport, error) {
	logger := logging.GetLogger("core.commands")
	logger.Debug().Str("command", "Status").Msg("Executing command")

	ws, err := r.LoadWorkspace(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	report := &StatusReport{Root: ws.Root, NoRepos: len(ws.Repos) == 0}
	rec := r.reconciler()
	for _, repo := range ws.Repos {
		report.Repos = append(report.Repos, rec.Inspect(ctx, ws.Root, repo))
	}
	return report, nil
}
