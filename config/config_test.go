package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_FillsMissingSections(t *testing.T) {
	cfg := &Config{}

	ApplyDefaults(cfg)

	require.NotNil(t, cfg.Database)
	assert.Equal(t, "journal.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 8, cfg.Auth.PasswordMinLength)
	assert.Equal(t, 500, cfg.Journal.TitleMaxLength)
	assert.Equal(t, 100, cfg.Journal.SearchFallbackLimit)
	assert.Equal(t, 10, cfg.Journal.DefaultPageSize)
	assert.NotEmpty(t, cfg.Preferences.Dir)
	assert.NotEmpty(t, cfg.Export.BucketURL)
	assert.Equal(t, "info", cfg.Env.Log.Level)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Journal: &JournalConfig{TitleMaxLength: 80},
		Auth:    &AuthConfig{BcryptCost: 4},
	}

	ApplyDefaults(cfg)

	assert.Equal(t, 80, cfg.Journal.TitleMaxLength)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, 100, cfg.Journal.SearchFallbackLimit)
}

func TestLoadWithEnv_ConfigDirAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	content := []byte("database:\n  path: from-file.db\n  busyTimeout: 2s\njournal:\n  titleMaxLength: 120\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	t.Setenv(ConfigDirEnv, dir)
	t.Setenv("DATABASE_PATH", "from-env.db")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	require.NotNil(t, cfg.Database)
	assert.Equal(t, "from-env.db", cfg.Database.Path)
	assert.Equal(t, 2*time.Second, cfg.Database.BusyTimeout)
	require.NotNil(t, cfg.Journal)
	assert.Equal(t, 120, cfg.Journal.TitleMaxLength)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Setenv(ConfigDirEnv, t.TempDir())
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("does-not-exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestNewOrDefault_WithoutFile(t *testing.T) {
	t.Setenv(ConfigDirEnv, t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := NewOrDefault()
	require.NoError(t, err)
	assert.Equal(t, "journal.db", cfg.Database.Path)
	assert.Equal(t, 10, cfg.Journal.DefaultPageSize)
}
