package config

import (
	"bytes"
	stderrors "errors"
	iofs "io/fs"
	"path/filepath"

	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/arthur-debert/dotdot/pkg/logging"
	"github.com/arthur-debert/dotdot/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
)

// FileHeader opens every config file dotdot writes.
const FileHeader = `# dotdot workspace configuration.
# Each [repos.<name>] table declares a repository cloned into ./<name>.
`

// Encode renders cfg deterministically: repo tables in name order, fields
// in declaration order and empty optional fields omitted.
func Encode(cfg types.WorkspaceConfig) ([]byte, error) {
	if cfg.Repos == nil {
		cfg = types.NewWorkspaceConfig()
	}

	var buf bytes.Buffer
	buf.WriteString(FileHeader)
	buf.WriteString("\n")

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigWrite, "failed to encode config")
	}
	return buf.Bytes(), nil
}

// WriteConfigFile replaces the whole file at path with cfg.
func WriteConfigFile(fs types.FS, path string, cfg types.WorkspaceConfig) error {
	logger := logging.GetLogger("config")
	data, err := Encode(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to write config file").WithDetail("path", path)
	}
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to write config file").WithDetail("path", path)
	}
	logger.Debug().Str("path", path).Int("repos", len(cfg.Repos)).Msg("Config written")
	return nil
}

// CreateEmpty writes an empty config in dir. It reports false without
// touching anything when a config already exists there.
func CreateEmpty(fs types.FS, dir string) (string, bool, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := fs.Stat(path); err == nil {
		return path, false, nil
	} else if !stderrors.Is(err, iofs.ErrNotExist) {
		return path, false, errors.Wrap(err, errors.ErrFileAccess, "failed to check for existing config").
			WithDetail("path", path)
	}

	if err := WriteConfigFile(fs, path, types.NewWorkspaceConfig()); err != nil {
		return path, false, err
	}
	return path, true, nil
}

// UpsertRepo adds or replaces one repo entry, rewriting the file. A
// missing file is created.
func UpsertRepo(fs types.FS, path, name string, repo types.RepoConfig) error {
	cfg, err := loadOrEmpty(fs, path)
	if err != nil {
		return err
	}
	cfg.Repos[name] = repo
	if err := Validate(cfg); err != nil {
		return err
	}
	return WriteConfigFile(fs, path, cfg)
}

// SetRevisions pins the given repos to new revisions with a single write.
// Names absent from the file are ignored.
func SetRevisions(fs types.FS, path string, revisions map[string]string) error {
	cfg, err := LoadConfigFile(fs, path)
	if err != nil {
		return err
	}

	changed := false
	for name, rev := range revisions {
		repo, ok := cfg.Repos[name]
		if !ok || repo.Revision == rev {
			continue
		}
		repo.Revision = rev
		cfg.Repos[name] = repo
		changed = true
	}
	if !changed {
		return nil
	}
	return WriteConfigFile(fs, path, cfg)
}

func loadOrEmpty(fs types.FS, path string) (types.WorkspaceConfig, error) {
	if _, err := fs.Stat(path); err != nil {
		if stderrors.Is(err, iofs.ErrNotExist) {
			return types.NewWorkspaceConfig(), nil
		}
		return types.WorkspaceConfig{}, errors.Wrap(err, errors.ErrFileAccess, "failed to stat config").
			WithDetail("path", path)
	}
	return LoadConfigFile(fs, path)
}
