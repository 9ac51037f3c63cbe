package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("VALYU_API_KEY", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AGENT_RUNTIME_ARN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.DefaultLLM)
	assert.Equal(t, ":8686", cfg.Server.Addr)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, "valyu_gateway_config.json", cfg.Gateway.ConfigPath)
	assert.NotEmpty(t, cfg.DB.Path)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("VALYU_API_KEY", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AGENT_RUNTIME_ARN", "")

	confDir := filepath.Join(dir, "valyuagent")
	require.NoError(t, os.MkdirAll(confDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "config.toml"), []byte(`
default_llm = "local"

[llm.local]
model = "llama3"
base_url = "http://localhost:11434/v1"

[valyu]
api_key = "file-key"
max_results = 7

[server]
addr = ":9999"

[aws]
region = "eu-west-1"
`), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.DefaultLLM)
	assert.Equal(t, "llama3", cfg.LLMs["local"].Model)
	assert.Equal(t, "file-key", cfg.Valyu.APIKey)
	assert.Equal(t, 7, cfg.Valyu.MaxResults)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	confDir := filepath.Join(dir, "valyuagent")
	require.NoError(t, os.MkdirAll(confDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "config.toml"), []byte(`
[valyu]
api_key = "file-key"
`), 0o644))

	t.Setenv("VALYU_API_KEY", "env-key")
	t.Setenv("AWS_REGION", "ap-southeast-2")
	t.Setenv("AGENT_RUNTIME_ARN", "arn:aws:bedrock:ap-southeast-2:123:runtime/agent")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Valyu.APIKey)
	assert.Equal(t, "ap-southeast-2", cfg.AWS.Region)
	assert.Equal(t, "arn:aws:bedrock:ap-southeast-2:123:runtime/agent", cfg.Runtime.AgentARN)
}
