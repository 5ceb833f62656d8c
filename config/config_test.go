package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults when file is missing", func(t *testing.T) {
		workdir := t.TempDir()
		t.Setenv("PLANTSTORE_SYSTEM_WORKER_DIR", workdir)

		cfg, err := LoadConfig(filepath.Join(workdir, "missing.yml"))
		require.NoError(t, err)

		assert.Equal(t, 5555, cfg.Web.Port)
		assert.Equal(t, "sqlite", cfg.Database.Type)
		assert.Equal(t, filepath.Join(workdir, "data", "plants.db"), cfg.SqlitePath())
		assert.DirExists(t, cfg.GetDataDir())
		assert.DirExists(t, cfg.GetLogDir())
	})

	t.Run("default workdir is the current directory", func(t *testing.T) {
		workdir := t.TempDir()
		cwd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(workdir))
		t.Cleanup(func() { _ = os.Chdir(cwd) })

		cfg, err := LoadConfig(filepath.Join(workdir, "missing.yml"))
		require.NoError(t, err)

		assert.Equal(t, ".", cfg.System.Workdir)
		assert.Equal(t, "data/plants.db", cfg.SqlitePath())
		assert.DirExists(t, filepath.Join(workdir, "data"))
		assert.DirExists(t, filepath.Join(workdir, "logs"))
	})

	t.Run("yaml file overrides defaults", func(t *testing.T) {
		workdir := t.TempDir()
		cfile := filepath.Join(workdir, "plantstore.yml")
		content := "system:\n  workdir: " + workdir + "\n" +
			"web:\n  port: 8080\n" +
			"database:\n  type: postgres\n  name: plants\n  user: plant\n"
		require.NoError(t, os.WriteFile(cfile, []byte(content), 0o600))

		cfg, err := LoadConfig(cfile)
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Web.Port)
		assert.Equal(t, "0.0.0.0", cfg.Web.Host)
		assert.Equal(t, "postgres", cfg.Database.Type)
		assert.Equal(t, "plants", cfg.Database.Name)
		assert.Equal(t, "plant", cfg.Database.User)
		assert.Equal(t, workdir, cfg.System.Workdir)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		cfile := filepath.Join(t.TempDir(), "bad.yml")
		require.NoError(t, os.WriteFile(cfile, []byte("web: [port"), 0o600))

		_, err := LoadConfig(cfile)
		assert.Error(t, err)
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Run("env values replace config values", func(t *testing.T) {
		t.Setenv("PLANTSTORE_WEB_PORT", "9090")
		t.Setenv("PLANTSTORE_DB_TYPE", "postgres")
		t.Setenv("PLANTSTORE_DB_DEBUG", "true")
		t.Setenv("PLANTSTORE_SYSTEM_DEBUG", "1")

		cfg := DefaultAppConfig()
		require.NoError(t, cfg.applyEnvOverrides())

		assert.Equal(t, 9090, cfg.Web.Port)
		assert.Equal(t, "postgres", cfg.Database.Type)
		assert.True(t, cfg.Database.Debug)
		assert.True(t, cfg.System.Debug)
	})

	t.Run("invalid port is rejected", func(t *testing.T) {
		t.Setenv("PLANTSTORE_WEB_PORT", "not-a-port")

		cfg := DefaultAppConfig()
		assert.Error(t, cfg.applyEnvOverrides())
	})
}

func TestSqlitePath(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.System.Workdir = "/srv/plants"

	cfg.Database.Name = ""
	assert.Equal(t, "/srv/plants/data/plants.db", cfg.SqlitePath())

	cfg.Database.Name = "/tmp/other.db"
	assert.Equal(t, "/tmp/other.db", cfg.SqlitePath())

	cfg.Database.Name = ":memory:"
	assert.Equal(t, ":memory:", cfg.SqlitePath())
}
