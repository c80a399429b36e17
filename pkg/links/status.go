package links

import (
	"github.com/arthur-debert/dotdot/pkg/filesystem"
	"github.com/arthur-debert/dotdot/pkg/types"
)

// State of one exposed target.
type State string

const (
	StateSourceMissing State = "source missing"
	StateNotLinked     State = "not linked"
	StateLinked        State = "linked"
	StateBlocked       State = "blocked (not a symlink)"
	// StateError means the target could not be inspected; Err says why.
	StateError State = "error"
)

// Entry is the state of one unique mapping.
type Entry struct {
	Mapping types.ExposeMapping
	State   State
	// LinkDest is what an existing symlink at the target points to.
	LinkDest string
	Err      error
}

// Status reports the state of every unique mapping. It never modifies the
// filesystem.
func Status(fs types.FS, root string, mappings []types.ExposeMapping) []Entry {
	unique := UniqueMappings(mappings)
	entries := make([]Entry, 0, len(unique))

	for _, m := range unique {
		entry := Entry{Mapping: m}
		switch {
		case !filesystem.Exists(fs, m.Source):
			entry.State = StateSourceMissing
		default:
			kind, err := filesystem.TypeOf(fs, m.Target)
			if err != nil {
				entry.State = StateError
				entry.Err = err
				break
			}
			switch kind {
			case filesystem.EntryMissing:
				entry.State = StateNotLinked
			case filesystem.EntrySymlink:
				entry.State = StateLinked
				entry.LinkDest, _ = fs.Readlink(m.Target)
			default:
				entry.State = StateBlocked
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
