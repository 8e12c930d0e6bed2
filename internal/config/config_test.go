package config

import (
	"os"
	"path/filepath"
	"testing"

	"n8n-mcp-server/internal/n8n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv wipes the recognized variables so ambient shell state cannot leak
// into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvAPIURL, EnvAPIKey, EnvWebhookUsername, EnvWebhookPassword, EnvDebug} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIURL, "https://n8n.example.com/api/v1")
	t.Setenv(EnvAPIKey, "secret-key")
	t.Setenv(EnvWebhookUsername, "hook-user")
	t.Setenv(EnvWebhookPassword, "hook-pass")
	t.Setenv(EnvDebug, "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://n8n.example.com/api/v1", cfg.APIURL)
	assert.Equal(t, "secret-key", cfg.APIKey)
	assert.Equal(t, "hook-user", cfg.WebhookUsername)
	assert.Equal(t, "hook-pass", cfg.WebhookPassword)
	assert.True(t, cfg.Debug)
}

func TestLoadTrimsTrailingSlash(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIURL, "https://n8n.example.com/api/v1/")
	t.Setenv(EnvAPIKey, "secret-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://n8n.example.com/api/v1", cfg.APIURL)
}

func TestLoadMissingAPIURL(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "secret-key")

	_, err := Load("")
	require.Error(t, err)

	var apiErr *n8n.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, n8n.ErrInitialization, apiErr.Code)
	assert.Contains(t, apiErr.Message, "Missing required environment variable: N8N_API_URL")
}

func TestLoadMissingAPIKey(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIURL, "https://n8n.example.com/api/v1")

	_, err := Load("")
	require.Error(t, err)

	var apiErr *n8n.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "Missing required environment variable: N8N_API_KEY")
}

func TestLoadRejectsMalformedURL(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIURL, "not a url")
	t.Setenv(EnvAPIKey, "secret-key")

	_, err := Load("")
	require.Error(t, err)

	var apiErr *n8n.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, n8n.ErrInitialization, apiErr.Code)
	assert.Contains(t, apiErr.Message, "Invalid URL format for N8N_API_URL")
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(
		"api_url: https://file.example.com/api/v1\napi_key: file-key\n",
	), 0o600))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com/api/v1", cfg.APIURL)
	assert.Equal(t, "file-key", cfg.APIKey)

	// Environment wins over the file.
	t.Setenv(EnvAPIKey, "env-key")
	cfg, err = Load(file)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var apiErr *n8n.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "Failed to read config file")
}

func TestClientConfig(t *testing.T) {
	cfg := Config{
		APIURL:          "https://n8n.example.com/api/v1",
		APIKey:          "secret-key",
		WebhookUsername: "hook-user",
		WebhookPassword: "hook-pass",
		Debug:           true,
	}
	cc := cfg.ClientConfig()
	assert.Equal(t, cfg.APIURL, cc.BaseURL)
	assert.Equal(t, cfg.APIKey, cc.APIKey)
	assert.Equal(t, cfg.WebhookUsername, cc.WebhookUsername)
	assert.Equal(t, cfg.WebhookPassword, cc.WebhookPassword)
	assert.True(t, cc.Debug)
}
