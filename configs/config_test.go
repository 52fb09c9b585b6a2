package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBase(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte(yaml), 0o600))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := writeBase(t, "api:\n  base_url: http://localhost:8000\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, "storectl", cfg.App.Name)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.NotEmpty(t, cfg.App.StateDir)
	assert.NotEmpty(t, cfg.App.LogFile)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := writeBase(t, "api:\n  base_url: http://localhost:8000\n")
	t.Setenv("STORECTL_API__BASE_URL", "https://store.example.com")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://store.example.com", cfg.API.BaseURL)
}

func TestLoadRequiresBaseURL(t *testing.T) {
	dir := writeBase(t, "app:\n  name: storectl\n")

	_, err := Load(dir)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}
