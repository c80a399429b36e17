package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/arthur-debert/dotdot/pkg/logging"
	"github.com/arthur-debert/dotdot/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the workspace config file, both at the root and in
// nested repos.
const ConfigFileName = "dotdot.toml"

// LoadConfigFile reads and validates the config file at path.
func LoadConfigFile(fs types.FS, path string) (types.WorkspaceConfig, error) {
	logger := logging.GetLogger("config").With().Str("path", path).Logger()

	data, err := fs.ReadFile(path)
	if err != nil {
		return types.WorkspaceConfig{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		var de *errors.DotdotError
		if stderrors.As(err, &de) {
			return types.WorkspaceConfig{}, de.WithDetail("path", path)
		}
		return types.WorkspaceConfig{}, err
	}

	logger.Debug().Int("repos", len(cfg.Repos)).Msg("Config loaded")
	return cfg, nil
}

// ParseConfig decodes a config document. Unknown keys are rejected.
func ParseConfig(data []byte) (types.WorkspaceConfig, error) {
	var cfg types.WorkspaceConfig

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return types.WorkspaceConfig{}, errors.Wrap(err, errors.ErrConfigParse, describeDecodeError(err))
	}

	if cfg.Repos == nil {
		cfg.Repos = map[string]types.RepoConfig{}
	}
	if err := Validate(cfg); err != nil {
		return types.WorkspaceConfig{}, err
	}
	return cfg, nil
}

func describeDecodeError(err error) string {
	var strict *toml.StrictMissingError
	if stderrors.As(err, &strict) {
		return "unknown keys in config: " + strings.TrimSpace(strict.String())
	}
	var de *toml.DecodeError
	if stderrors.As(err, &de) {
		row, col := de.Position()
		return fmt.Sprintf("invalid TOML at line %d, column %d", row, col)
	}
	return "invalid config"
}

// Validate checks the declared repos. Errors carry the CONFIG_PARSE code
// and the offending repo name.
func Validate(cfg types.WorkspaceConfig) error {
	for _, name := range cfg.Names() {
		repo := cfg.Repos[name]
		if err := validateRepoName(name); err != nil {
			return err
		}
		if strings.TrimSpace(repo.URL) == "" {
			return errors.Newf(errors.ErrConfigParse, "repo %q has no url", name).
				WithDetail("repo", name)
		}
		for _, expose := range repo.Expose {
			if err := validateExposePath(expose); err != nil {
				return errors.Wrapf(err, errors.ErrConfigParse, "repo %q has an invalid expose path %q", name, expose).
					WithDetail("repo", name)
			}
		}
	}
	return nil
}

func validateRepoName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.Newf(errors.ErrConfigParse, "invalid repo name %q: must be a single directory name", name).
			WithDetail("repo", name)
	}
	return nil
}

func validateExposePath(p string) error {
	if strings.TrimSpace(p) == "" {
		return stderrors.New("path is empty")
	}
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
		return stderrors.New("path must be relative to the repo")
	}
	clean := filepath.Clean(filepath.FromSlash(p))
	if clean == "." {
		return stderrors.New("path must name an entry inside the repo")
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return stderrors.New("path escapes the repo")
	}
	return nil
}
