package config_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/dotdot/pkg/config"
	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/arthur-debert/dotdot/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Deterministic(t *testing.T) {
	cfg := types.WorkspaceConfig{Repos: map[string]types.RepoConfig{
		"beta":  {URL: "https://example.com/beta.git"},
		"alpha": {URL: "https://example.com/alpha.git", Revision: "abc", Expose: []string{"bin/tool"}},
		"gamma": {URL: "https://example.com/gamma.git", Install: "make install"},
	}}

	first, err := config.Encode(cfg)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := config.Encode(cfg)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}

	text := string(first)
	assert.True(t, strings.HasPrefix(text, config.FileHeader))
	a := strings.Index(text, "[repos.alpha]")
	b := strings.Index(text, "[repos.beta]")
	g := strings.Index(text, "[repos.gamma]")
	assert.True(t, a >= 0 && a < b && b < g, "repo tables sorted by name:\n%s", text)

	betaSection := text[b:g]
	assert.NotContains(t, betaSection, "revision")
	assert.NotContains(t, betaSection, "install")
	assert.NotContains(t, betaSection, "expose")
}

func TestEncode_RoundTrip(t *testing.T) {
	cfg := types.WorkspaceConfig{Repos: map[string]types.RepoConfig{
		"lib": {URL: "git@example.com:lib.git", Revision: "abc", Install: "make", Expose: []string{"bin/a", "b"}},
	}}

	data, err := config.Encode(cfg)
	require.NoError(t, err)

	parsed, err := config.ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}

func TestCreateEmpty(t *testing.T) {
	fs := memWorkspace(t, nil)

	path, created, err := config.CreateEmpty(fs, "/ws")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "/ws/dotdot.toml", path)

	cfg, err := config.LoadConfigFile(fs, path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Repos)

	require.NoError(t, fs.WriteFile(path, []byte("# mine\n"), 0644))
	_, created, err = config.CreateEmpty(fs, "/ws")
	require.NoError(t, err)
	assert.False(t, created)

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))
}

func TestUpsertRepo(t *testing.T) {
	fs := memWorkspace(t, map[string]string{
		"dotdot.toml": "[repos.old]\nurl = \"old-url\"\n",
	})

	err := config.UpsertRepo(fs, "/ws/dotdot.toml", "new", types.RepoConfig{URL: "new-url", Revision: "abc"})
	require.NoError(t, err)

	cfg, err := config.LoadConfigFile(fs, "/ws/dotdot.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, cfg.Names())
	assert.Equal(t, "abc", cfg.Repos["new"].Revision)
}

func TestUpsertRepo_CreatesMissingFile(t *testing.T) {
	fs := memWorkspace(t, nil)

	require.NoError(t, config.UpsertRepo(fs, "/ws/dotdot.toml", "lib", types.RepoConfig{URL: "u"}))

	cfg, err := config.LoadConfigFile(fs, "/ws/dotdot.toml")
	require.NoError(t, err)
	assert.Equal(t, "u", cfg.Repos["lib"].URL)
}

func TestUpsertRepo_RejectsInvalidEntry(t *testing.T) {
	fs := memWorkspace(t, map[string]string{"dotdot.toml": ""})

	err := config.UpsertRepo(fs, "/ws/dotdot.toml", "lib", types.RepoConfig{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	data, err := fs.ReadFile("/ws/dotdot.toml")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestSetRevisions(t *testing.T) {
	fs := memWorkspace(t, map[string]string{
		"dotdot.toml": "[repos.a]\nurl = \"ua\"\nrevision = \"old\"\n\n[repos.b]\nurl = \"ub\"\n",
	})

	err := config.SetRevisions(fs, "/ws/dotdot.toml", map[string]string{
		"a":       "new-a",
		"b":       "new-b",
		"missing": "ignored",
	})
	require.NoError(t, err)

	cfg, err := config.LoadConfigFile(fs, "/ws/dotdot.toml")
	require.NoError(t, err)
	assert.Equal(t, "new-a", cfg.Repos["a"].Revision)
	assert.Equal(t, "new-b", cfg.Repos["b"].Revision)
	assert.NotContains(t, cfg.Repos, "missing")
}

func TestSetRevisions_NoChangeKeepsFileUntouched(t *testing.T) {
	original := "# hand written\n[repos.a]\nurl    = \"ua\"\nrevision = \"same\"\n"
	fs := memWorkspace(t, map[string]string{"dotdot.toml": original})

	require.NoError(t, config.SetRevisions(fs, "/ws/dotdot.toml", map[string]string{"a": "same"}))

	data, err := fs.ReadFile("/ws/dotdot.toml")
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}
