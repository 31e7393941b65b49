package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ROOPADMIN_API_BASEURL", "https://jewel.example.com/api")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "https://jewel.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "file", cfg.Session.Backend)
	assert.Equal(t, "accessToken", cfg.Session.Key)
	assert.Equal(t, int64(10<<20), cfg.Upload.ProductMaxBytes)
	assert.Equal(t, int64(5<<20), cfg.Upload.CategoryMaxBytes)
	assert.Equal(t, 5, cfg.Upload.MaxProductImages)
	assert.Equal(t, 3*time.Second, cfg.Dashboard.FlashDuration)
	assert.Equal(t, "api", cfg.Storage.Uploader)
}

func TestLoadRequiresBaseURL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ROOPADMIN_API_BASEURL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ROOPADMIN_API_BASEURL", "http://localhost:4000")
	t.Setenv("ROOPADMIN_SESSION_BACKEND", "redis")
	t.Setenv("ROOPADMIN_DASHBOARD_FLASHDURATION", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, 5*time.Second, cfg.Dashboard.FlashDuration)
}
