package commands

import (
	"context"
	"strings"

	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/arthur-debert/dotdot/pkg/logging"
	"github.com/arthur-debert/dotdot/pkg/reconcile"
)

// ExecOptions defines the options for the Exec command.
type ExecOptions struct {
	WorkingDir string
	Command    string
}

// Exec runs a shell command in every declared repo that exists.
func (r *Runner) Exec(ctx context.Context, opts ExecOptions) (*RepoReport, error) {
	logger := logging.GetLogger("core.commands")
	logger.Debug().Str("command", "Exec").Str("shell_command", opts.Command).Msg("Executing command")

	if strings.TrimSpace(opts.Command) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "command cannot be empty")
	}

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
		results = append(results, rec.Exec(ctx, ws.Root, repo, opts.Command))
	}
	return newReport(ws.Root, results, false), nil
}
