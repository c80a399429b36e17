package links

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/arthur-debert/dotdot/pkg/filesystem"
	"github.com/arthur-debert/dotdot/pkg/logging"
	"github.com/arthur-debert/dotdot/pkg/types"
)

// ErrTargetNotEmpty is reported when force would have to delete a
// non-empty directory, such as another repo's checkout.
var ErrTargetNotEmpty = stderrors.New("target is a non-empty directory")

// Action is what happened (or would happen) to one target.
type Action string

const (
	ActionCreated Action = "created"
	ActionRemoved Action = "removed"
	ActionSkipped Action = "skipped"
	ActionFailed  Action = "failed"
)

// Item is the per-target outcome of Create or Remove.
type Item struct {
	TargetName string
	// Link is the relative path written into the symlink.
	Link   string
	Action Action
	Reason string
	Err    error
	DryRun bool
}

// CreateOptions control Create.
type CreateOptions struct {
	DryRun bool
	// Force replaces existing targets and lets the first mapping win
	// conflicts.
	Force bool
}

// CreateResult is the outcome of Create.
type CreateResult struct {
	// Aborted is set when conflicts stopped the run before any change.
	Aborted   bool
	Conflicts []Conflict
	Items     []Item
}

// Summary renders "2 created, 1 skipped".
func (r *CreateResult) Summary() string { return summarize(r.Items) }

// RemoveOptions control Remove.
type RemoveOptions struct {
	DryRun bool
}

// RemoveResult is the outcome of Remove.
type RemoveResult struct {
	Items []Item
}

// Summary renders "1 removed, 1 skipped".
func (r *RemoveResult) Summary() string { return summarize(r.Items) }

// Create links every unique mapping whose source exists. Without Force,
// any conflict aborts the whole run with no changes.
func Create(fs types.FS, root string, mappings []types.ExposeMapping, opts CreateOptions) (*CreateResult, error) {
	logger := logging.GetLogger("links")
	if !filesystem.IsDir(fs, root) {
		return nil, errors.Newf(errors.ErrNotFound, "workspace root %s is not a directory", root)
	}

	result := &CreateResult{Conflicts: FindConflicts(mappings)}
	if len(result.Conflicts) > 0 && !opts.Force {
		result.Aborted = true
		logger.Info().Int("conflicts", len(result.Conflicts)).Msg("Link creation aborted on conflicts")
		return result, nil
	}

	for _, m := range UniqueMappings(mappings) {
		item := createOne(fs, m, opts)
		logger.Debug().
			Str("target", m.TargetName).
			Str("action", string(item.Action)).
			Str("reason", item.Reason).
			Bool("dry_run", opts.DryRun).
			Msg("Link processed")
		result.Items = append(result.Items, item)
	}
	return result, nil
}

func createOne(fs types.FS, m types.ExposeMapping, opts CreateOptions) Item {
	item := Item{TargetName: m.TargetName, Link: m.RelativeSource(), DryRun: opts.DryRun}

	if !filesystem.Exists(fs, m.Source) {
		item.Action = ActionSkipped
		item.Reason = "source does not exist"
		return item
	}

	kind, err := filesystem.TypeOf(fs, m.Target)
	if err != nil {
		return linkFailure(item, err, "failed to inspect target")
	}
	if kind != filesystem.EntryMissing {
		if !opts.Force {
			item.Action = ActionSkipped
			item.Reason = "target already exists"
			return item
		}
		if kind == filesystem.EntryDirectory {
			entries, err := fs.ReadDir(m.Target)
			if err != nil {
				return linkFailure(item, err, "failed to inspect target")
			}
			if len(entries) > 0 {
				return linkFailure(item, ErrTargetNotEmpty, "cannot replace existing target")
			}
		}
		if !opts.DryRun {
			if err := fs.Remove(m.Target); err != nil {
				return linkFailure(item, err, "failed to remove existing target")
			}
		}
		item.Reason = fmt.Sprintf("replaced existing %s", kind)
	}

	if !opts.DryRun {
		if err := fs.Symlink(item.Link, m.Target); err != nil {
			return linkFailure(item, err, "failed to create symlink")
		}
	}
	item.Action = ActionCreated
	return item
}

// Remove deletes the symlink at every target name any mapping declares.
// Entries that are not symlinks are left alone.
func Remove(fs types.FS, root string, mappings []types.ExposeMapping, opts RemoveOptions) (*RemoveResult, error) {
	if !filesystem.IsDir(fs, root) {
		return nil, errors.Newf(errors.ErrNotFound, "workspace root %s is not a directory", root)
	}

	result := &RemoveResult{}
	for _, m := range UniqueMappings(mappings) {
		item := Item{TargetName: m.TargetName, DryRun: opts.DryRun}

		kind, err := filesystem.TypeOf(fs, m.Target)
		switch {
		case err != nil:
			item = linkFailure(item, err, "failed to inspect target")
		case kind == filesystem.EntryMissing:
			// Nothing to do and nothing worth reporting.
			item.Action = ActionSkipped
		case kind != filesystem.EntrySymlink:
			item.Action = ActionSkipped
			item.Reason = "not a symlink"
		default:
			item.Action = ActionRemoved
			if !opts.DryRun {
				if err := fs.Remove(m.Target); err != nil {
					item = linkFailure(item, err, "failed to remove symlink")
				}
			}
		}
		result.Items = append(result.Items, item)
	}
	return result, nil
}

func linkFailure(item Item, err error, msg string) Item {
	item.Action = ActionFailed
	item.Err = errors.Wrap(err, errors.ErrLink, msg).WithDetail("target", item.TargetName)
	item.Reason = errors.Summary(item.Err)
	return item
}

func summarize(items []Item) string {
	var order []Action
	counts := map[Action]int{}
	for _, it := range items {
		if counts[it.Action] == 0 {
			order = append(order, it.Action)
		}
		counts[it.Action]++
	}
	if len(order) == 0 {
		return "nothing to do"
	}
	parts := make([]string, 0, len(order))
	for _, a := range order {
		parts = append(parts, fmt.Sprintf("%d %s", counts[a], a))
	}
	return strings.Join(parts, ", ")
}

// Count returns how many items took action a.
func Count(items []Item, a Action) int {
	n := 0
	for _, it := range items {
		if it.Action == a {
			n++
		}
	}
	return n
}
