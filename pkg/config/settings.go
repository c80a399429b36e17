package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultSettings []byte

const (
	settingsDirName  = "dotdot"
	settingsFileName = "settings.toml"
	envPrefix        = "DOTDOT_"
)

// Colour modes accepted by output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Settings are the user's tool preferences. They are independent from
// any workspace.
type Settings struct {
	Git struct {
		Binary string `koanf:"binary"`
	} `koanf:"git"`
	Shell struct {
		Program string `koanf:"program"`
	} `koanf:"shell"`
	Log struct {
		File bool `koanf:"file"`
	} `koanf:"log"`
	Output struct {
		Color string `koanf:"color"`
	} `koanf:"output"`
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// SettingsPath returns the user settings file location.
func SettingsPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = xdg.ConfigHome
	}
	return filepath.Join(base, settingsDirName, settingsFileName)
}

// LoadSettings layers the embedded defaults, the user settings file,
// DOTDOT_* environment variables and finally overrides (dotted keys, as
// set by command line flags).
func LoadSettings(overrides map[string]interface{}) (*Settings, error) {
	return loadSettings(SettingsPath(), overrides)
}

func loadSettings(userPath string, overrides map[string]interface{}) (*Settings, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load default settings")
	}

	// 2. User settings file
	if _, err := os.Stat(userPath); err == nil {
		if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load settings file").
				WithDetail("path", userPath)
		}
	}

	// 3. Environment, DOTDOT_GIT_BINARY -> git.binary
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment settings")
	}

	// 4. Explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply setting overrides")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to decode settings")
	}

	switch s.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return nil, errors.Newf(errors.ErrConfigInvalid,
			"output.color must be one of auto, always or never, got %q", s.Output.Color)
	}

	return &s, nil
}
