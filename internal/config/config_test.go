package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadParsesToml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hlc.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
target = "cpp"
out_dir = "build"
run = true
`), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "cpp", cfg.Target)
	assert.Equal(t, "build", cfg.OutDir)
	assert.True(t, cfg.Run)
}

func TestLoadMalformedTomlErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hlc.toml")
	require.NoError(t, os.WriteFile(path, []byte(`not = [valid toml`), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
}
