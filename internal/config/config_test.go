package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/swapify/pkg/swapify"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `model: accounts.Member
var_name: ACCOUNTS_MEMBER_MODEL
exclude:
  - vendor/**
  - "**/0001_initial.py"
workers: 4
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "accounts.Member", cfg.Model)
	assert.Equal(t, "ACCOUNTS_MEMBER_MODEL", cfg.VarName)
	assert.Equal(t, []string{"vendor/**", "**/0001_initial.py"}, cfg.Exclude)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("model: auth.User\n"), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "auth.User", cfg.Model)
	assert.Equal(t, "", cfg.VarName)
	assert.Empty(t, cfg.Exclude)
	assert.Equal(t, 0, cfg.Workers)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.ErrorIs(t, err, swapify.ErrInvalidConfig)
	assert.Nil(t, cfg)
}

func TestLoadFile_NegativeWorkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: -2\n"), 0644))

	cfg, err := LoadFile(path)
	assert.ErrorIs(t, err, swapify.ErrInvalidConfig)
	assert.Nil(t, cfg)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvModel:   "accounts.Member",
		EnvVarName: "",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := &ProjectConfig{Model: "auth.User", VarName: "AUTH_USER_MODEL"}
	cfg.ApplyEnv(lookup)

	assert.Equal(t, "accounts.Member", cfg.Model)
	assert.Equal(t, "AUTH_USER_MODEL", cfg.VarName, "empty env values do not override")
}
