// Package paths normalises user supplied directories.
package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotdot/pkg/errors"
)

// EnvHome is consulted when os.UserHomeDir fails.
const EnvHome = "HOME"

// GetHomeDirectory returns the user's home directory, falling back to $HOME.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}

// ExpandHome expands a leading "~" or "~/". Other forms ("~user") and
// paths that cannot be expanded are returned as is.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return homeDir
	}
	return filepath.Join(homeDir, path[2:])
}

// Normalize expands home, makes path absolute and cleans it.
func Normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path").
			WithDetail("path", path)
	}
	return filepath.Clean(abs), nil
}
