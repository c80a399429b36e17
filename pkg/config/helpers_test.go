package config_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotdot/pkg/filesystem"
	"github.com/arthur-debert/dotdot/pkg/types"
	"github.com/stretchr/testify/require"
)

// memWorkspace returns an in-memory filesystem with the given files
// written relative to /ws.
func memWorkspace(t *testing.T, files map[string]string) types.FS {
	t.Helper()
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/ws", 0755))
	for rel, content := range files {
		path := filepath.Join("/ws", rel)
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
	}
	return fs
}
