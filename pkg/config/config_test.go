package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProjects(t *testing.T) {
	t.Run("comma separated", func(t *testing.T) {
		assert.Equal(t, []string{"alpha", "beta"}, ParseProjects("alpha,beta"))
	})

	t.Run("trims whitespace and empties", func(t *testing.T) {
		assert.Equal(t, []string{"alpha", "beta"}, ParseProjects(" alpha , ,beta,"))
	})

	t.Run("empty defaults to placeholder", func(t *testing.T) {
		assert.Equal(t, []string{DefaultProjectID}, ParseProjects(""))
	})
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvProjects, "")
	t.Setenv(EnvKeyPath, "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "firestore", cfg.Database.Backend)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, []string{DefaultProjectID}, cfg.Projects)
	assert.Equal(t, DefaultProjectID, cfg.RawProjects)
	assert.Empty(t, cfg.KeyPathOverride)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvProjects, "prod-a,prod-b")
	t.Setenv(EnvKeyPath, "/etc/keys/sa.json")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"prod-a", "prod-b"}, cfg.Projects)
	assert.Equal(t, "prod-a,prod-b", cfg.RawProjects)
	assert.Equal(t, "/etc/keys/sa.json", cfg.CredentialFile("prod-a"))
}

func TestLoadYAMLFile(t *testing.T) {
	t.Setenv(EnvProjects, "")
	t.Setenv(EnvKeyPath, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  port: 8080\ndatabase:\n  backend: sqlite\n  sqlite:\n    dir: /tmp/docs\ncredentials:\n  dir: /etc/creds\nlogging:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Backend)
	assert.Equal(t, "/tmp/docs", cfg.Database.SQLite.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, filepath.Join("/etc/creds", "demo-project.json"), cfg.CredentialFile("demo-project"))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvProjects, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "firestore", cfg.Database.Backend)
}
