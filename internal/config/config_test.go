package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	require.NoError(t, LoadConfig(""))
	cfg := Config()
	require.NotNil(t, cfg)
	assert.Equal(t, runtime.NumCPU(), cfg.NWorkers)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogConsole)
	assert.Empty(t, cfg.CVSource)
}

func TestLoadConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "forcingval.toml")
	require.NoError(t, os.WriteFile(file, []byte(`
cv_source = "gh:v6.6.0"
root_data_dir = "/data/input4mips"
n_workers = 4
log_level = "debug"
`), 0o644))

	require.NoError(t, LoadConfig(file))
	t.Cleanup(func() { _ = LoadConfig("") })

	cfg := Config()
	assert.Equal(t, "gh:v6.6.0", cfg.CVSource)
	assert.Equal(t, "/data/input4mips", cfg.RootDataDir)
	assert.Equal(t, 4, cfg.NWorkers)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Keys absent from the file keep their defaults.
	assert.True(t, cfg.LogConsole)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		require.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "broken.toml")
		require.NoError(t, os.WriteFile(file, []byte("n_workers = [not toml"), 0o644))
		require.Error(t, LoadConfig(file))
	})
}
