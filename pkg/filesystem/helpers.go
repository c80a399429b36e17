package filesystem

import (
	"errors"
	"io/fs"

	"github.com/arthur-debert/dotdot/pkg/types"
)

// Exists reports whether path resolves to an existing entry, following
// symlinks. A dangling symlink does not exist.
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// IsDir reports whether path resolves to a directory.
func IsDir(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// EntryType classifies a directory entry without following symlinks.
type EntryType string

const (
	EntryMissing   EntryType = "missing"
	EntryFile      EntryType = "file"
	EntryDirectory EntryType = "directory"
	EntrySymlink   EntryType = "symlink"
)

// TypeOf returns the type of the entry at path itself.
func TypeOf(fsys types.FS, path string) (EntryType, error) {
	info, err := fsys.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return EntryMissing, nil
		}
		return EntryMissing, err
	}
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return EntrySymlink, nil
	case info.IsDir():
		return EntryDirectory, nil
	default:
		return EntryFile, nil
	}
}
