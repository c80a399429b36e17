package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotdot/pkg/config"
	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/arthur-debert/dotdot/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindWorkspaceRoot(t *testing.T) {
	fs := memWorkspace(t, map[string]string{
		"dotdot.toml":          "",
		"lib/src/deep/file.go": "package deep",
	})

	root, err := config.FindWorkspaceRoot(fs, "/ws/lib/src/deep")
	require.NoError(t, err)
	assert.Equal(t, "/ws", root)

	root, err = config.FindWorkspaceRoot(fs, "/ws")
	require.NoError(t, err)
	assert.Equal(t, "/ws", root)
}

func TestFindWorkspaceRoot_NearestWins(t *testing.T) {
	fs := memWorkspace(t, map[string]string{
		"dotdot.toml":       "",
		"inner/dotdot.toml": "",
	})
	require.NoError(t, fs.MkdirAll("/ws/inner/sub", 0755))

	root, err := config.FindWorkspaceRoot(fs, "/ws/inner/sub")
	require.NoError(t, err)
	assert.Equal(t, "/ws/inner", root)
}

func TestFindWorkspaceRoot_NotFound(t *testing.T) {
	fs := memWorkspace(t, map[string]string{"lib/README": "x"})

	_, err := config.FindWorkspaceRoot(fs, "/ws/lib")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrWorkspaceNotFound))
}

func TestCollectAllConfigs(t *testing.T) {
	fs := memWorkspace(t, map[string]string{
		"dotdot.toml":            "[repos.a]\nurl = \"root-a\"\n",
		"zeta/dotdot.toml":       "[repos.z]\nurl = \"zeta-z\"\n",
		"alpha/dotdot.toml":      "[repos.b]\nurl = \"alpha-b\"\n",
		"plain/README":           "no config here",
		"alpha/deep/dotdot.toml": "[repos.deep]\nurl = \"never\"\n",
		"notes.txt":              "a file at the root",
	})

	sources, err := config.CollectAllConfigs(fs, "/ws")
	require.NoError(t, err)
	require.Len(t, sources, 3)

	assert.True(t, sources[0].IsRoot)
	assert.Equal(t, "(root)", sources[0].Label())
	assert.Equal(t, "/ws/dotdot.toml", sources[0].Path)

	assert.Equal(t, "alpha", sources[1].Label())
	assert.False(t, sources[1].IsRoot)
	assert.Equal(t, "/ws/alpha", sources[1].Dir)
	assert.Equal(t, "zeta", sources[2].Label())

	for _, s := range sources {
		_, hasDeep := s.Config.Repos["deep"]
		assert.False(t, hasDeep, "configs nested two levels deep are ignored")
	}
}

func TestCollectAllConfigs_NestedParseErrorAborts(t *testing.T) {
	fs := memWorkspace(t, map[string]string{
		"dotdot.toml":     "",
		"lib/dotdot.toml": "[repos.x]\nbogus = 1\n",
	})

	_, err := config.CollectAllConfigs(fs, "/ws")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestCollectAllConfigs_SkipsSymlinkedDirectories(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.ConfigFileName), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(outside, config.ConfigFileName),
		[]byte("[repos.linked]\nurl = \"u\"\n"), 0644))
	if err := os.Symlink(outside, filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	sources, err := config.CollectAllConfigs(filesystem.NewOS(), root)
	require.NoError(t, err)
	assert.Len(t, sources, 1)
}
