package commands

import (
	"github.com/arthur-debert/dotdot/pkg/links"
	"github.com/arthur-debert/dotdot/pkg/logging"
	"github.com/arthur-debert/dotdot/pkg/types"
)

// LinkOptions defines the options for the link commands.
type LinkOptions struct {
	WorkingDir string
	DryRun     bool
	Force      bool
}

// LinkStatusReport lists every mapping's state plus any conflicts.
type LinkStatusReport struct {
	Root      string
	Mappings  []types.ExposeMapping
	Conflicts []links.Conflict
	Entries   []links.Entry
}

// LinkStatus reports the state of every exposed path.
func (r *Runner) LinkStatus(opts LinkOptions) (*LinkStatusReport, error) {
	logger := logging.GetLogger("core.commands")
	logger.Debug().Str("command", "LinkStatus").Msg("Executing command")

	ws, err := r.LoadWorkspace(opts.WorkingDir)
	if err != nil {
		return nil, err
	}
	mappings := links.CollectMappings(ws.Root, ws.Sources)
	return &LinkStatusReport{
		Root:      ws.Root,
		Mappings:  mappings,
		Conflicts: links.FindConflicts(mappings),
		Entries:   links.Status(r.FS, ws.Root, mappings),
	}, nil
}

// LinkCreateReport wraps links.CreateResult with its workspace.
type LinkCreateReport struct {
	Root     string
	Mappings []types.ExposeMapping
	*links.CreateResult
}

// LinkCreate creates the exposed symlinks.
func (r *Runner) LinkCreate(opts LinkOptions) (*LinkCreateReport, error) {
	logger := logging.GetLogger("core.commands")
	logger.Debug().Str("command", "LinkCreate").Bool("dry_run", opts.DryRun).Bool("force", opts.Force).Msg("Executing command")

	ws, err := r.LoadWorkspace(opts.WorkingDir)
	if err != nil {
		return nil, err
	}
	mappings := links.CollectMappings(ws.Root, ws.Sources)
	result, err := links.Create(r.FS, ws.Root, mappings, links.CreateOptions{DryRun: opts.DryRun, Force: opts.Force})
	if err != nil {
		return nil, err
	}
	return &LinkCreateReport{Root: ws.Root, Mappings: mappings, CreateResult: result}, nil
}

// LinkRemoveReport wraps links.RemoveResult with its workspace.
type LinkRemoveReport struct {
	Root     string
	Mappings []types.ExposeMapping
	*links.RemoveResult
}

// LinkRemove removes the exposed symlinks.
func (r *Runner) LinkRemove(opts LinkOptions) (*LinkRemoveReport, error) {
	logger := logging.GetLogger("core.commands")
	logger.Debug().Str("command", "LinkRemove").Bool("dry_run", opts.DryRun).Msg("Executing command")

	ws, err := r.LoadWorkspace(opts.WorkingDir)
	if err != nil {
		return nil, err
	}
	mappings := links.CollectMappings(ws.Root, ws.Sources)
	result, err := links.Remove(r.FS, ws.Root, mappings, links.RemoveOptions{DryRun: opts.DryRun})
	if err != nil {
		return nil, err
	}
	return &LinkRemoveReport{Root: ws.Root, Mappings: mappings, RemoveResult: result}, nil
}
