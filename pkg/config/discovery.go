package config

import (
	iofs "io/fs"
	"path/filepath"

	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/arthur-debert/dotdot/pkg/logging"
	"github.com/arthur-debert/dotdot/pkg/types"
)

// FindWorkspaceRoot walks upward from startDir to the first directory that
// holds a config file.
func FindWorkspaceRoot(fs types.FS, startDir string) (string, error) {
	logger := logging.GetLogger("config")
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "failed to resolve working directory").
			WithDetail("dir", startDir)
	}

	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := fs.Stat(candidate); err == nil && !info.IsDir() {
			logger.Debug().Str("root", dir).Msg("Workspace root found")
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Newf(errors.ErrWorkspaceNotFound,
				"no %s found in %s or any parent directory", ConfigFileName, startDir).
				WithDetail("start", startDir)
		}
		dir = parent
	}
}

// CollectAllConfigs loads the root config followed by the config of every
// direct child directory that has one, in name order. Symlinked children
// are not followed and nesting stops at one level.
func CollectAllConfigs(fs types.FS, root string) ([]types.ConfigSource, error) {
	logger := logging.GetLogger("config")
	rootPath := filepath.Join(root, ConfigFileName)
	rootCfg, err := LoadConfigFile(fs, rootPath)
	if err != nil {
		return nil, err
	}

	sources := []types.ConfigSource{{
		Config: rootCfg,
		IsRoot: true,
		Dir:    root,
		Path:   rootPath,
	}}

	entries, err := fs.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to list workspace root").
			WithDetail("root", root)
	}

	for _, entry := range entries {
		if !entry.IsDir() || entry.Type()&iofs.ModeSymlink != 0 {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		path := filepath.Join(dir, ConfigFileName)
		if info, err := fs.Stat(path); err != nil || info.IsDir() {
			continue
		}

		cfg, err := LoadConfigFile(fs, path)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("dir", dir).Int("repos", len(cfg.Repos)).Msg("Nested config found")
		sources = append(sources, types.ConfigSource{
			Config: cfg,
			Dir:    dir,
			Path:   path,
		})
	}

	return sources, nil
}
