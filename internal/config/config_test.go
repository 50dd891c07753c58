package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.yaml")
	yaml := `env: "prod"
log_level: "debug"
storage_path: "data/records.txt"
sql:
  database_path: "data/ambidb.sqlite"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "data/records.txt", cfg.StoragePath)
	assert.Equal(t, "data/ambidb.sqlite", cfg.SQL.DatabasePath)
}

func TestLoadFileAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: staging\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "ambidb_records.txt", cfg.StoragePath)
	assert.Equal(t, "ambidb.sqlite", cfg.DatabasePath)
}

func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("STORAGE_PATH", "/tmp/from-env.txt")
	t.Setenv("SQL_DATABASE_PATH", "/tmp/from-env.sqlite")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "/tmp/from-env.txt", cfg.StoragePath)
	assert.Equal(t, "/tmp/from-env.sqlite", cfg.DatabasePath)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage_path: file.txt\n"), 0o644))
	t.Setenv("STORAGE_PATH", "env.txt")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env.txt", cfg.StoragePath)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestResolvePath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, "flag.yaml", ResolvePath("flag.yaml"))
	assert.Equal(t, "", ResolvePath(""))

	t.Setenv("CONFIG_PATH", "env.yaml")
	assert.Equal(t, "env.yaml", ResolvePath("flag.yaml"))
}
