package commands

import (
	"github.com/arthur-debert/dotdot/pkg/config"
	"github.com/arthur-debert/dotdot/pkg/logging"
)

// InitOptions defines the options for the Init command.
type InitOptions struct {
	WorkingDir string
}

// InitResult reports where the config lives and whether it was new.
type InitResult struct {
	Path    string
	Created bool
}

// Init writes an empty workspace config in the working directory. An
// existing config is left untouched.
func (r *Runner) Init(opts InitOptions) (*InitResult, error) {
	logger := logging.GetLogger("core.commands")
	logger.Debug().Str("command", "Init").Msg("Executing command")

	dir, err := resolveWorkingDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	path, created, err := config.CreateEmpty(r.FS, dir)
	if err != nil {
		return nil, err
	}
	return &InitResult{Path: path, Created: created}, nil
}
