package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DefaultLLM string                `toml:"default_llm"`
	LLMs       map[string]*LLMConfig `toml:"llm"`
	Valyu      ValyuConfig           `toml:"valyu"`
	Server     ServerConfig          `toml:"server"`
	DB         DBConfig              `toml:"db"`
	AWS        AWSConfig             `toml:"aws"`
	Gateway    GatewayConfig         `toml:"gateway"`
	Runtime    RuntimeConfig         `toml:"runtime"`
	Trace      TraceConfig           `toml:"trace"`
}

type LLMConfig struct {
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

type ValyuConfig struct {
	APIKey     string  `toml:"api_key"`
	BaseURL    string  `toml:"base_url"`
	MaxResults int     `toml:"max_results"`
	MaxPrice   float64 `toml:"max_price"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type DBConfig struct {
	Path string `toml:"path"`
}

type AWSConfig struct {
	Region string `toml:"region"`
}

type GatewayConfig struct {
	ConfigPath string `toml:"config_path"`
}

type RuntimeConfig struct {
	AgentARN string `toml:"agent_arn"`
}

type TraceConfig struct {
	Endpoint string `toml:"endpoint"`
	URLPath  string `toml:"url_path"`
	APIKey   string `toml:"api_key"`
}

func Load() (*Config, error) {
	cfg := &Config{
		DefaultLLM: "openai",
		LLMs: map[string]*LLMConfig{
			"openai": {
				Model: "gpt-4o",
			},
		},
		Server: ServerConfig{
			Addr: ":8686",
		},
		DB: DBConfig{
			Path: defaultDBPath(),
		},
		AWS: AWSConfig{
			Region: "us-east-1",
		},
		Gateway: GatewayConfig{
			ConfigPath: "valyu_gateway_config.json",
		},
	}

	path := configPath()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Environment wins over file values for secrets.
	if v := os.Getenv("VALYU_API_KEY"); v != "" {
		cfg.Valyu.APIKey = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.AWS.Region = v
	}
	if v := os.Getenv("AGENT_RUNTIME_ARN"); v != "" {
		cfg.Runtime.AgentARN = v
	}

	return cfg, nil
}

func configPath() string {
	dir, _ := os.UserConfigDir()
	return filepath.Join(dir, "valyuagent", "config.toml")
}

func defaultDBPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, ".local", "share", "valyuagent", "valyuagent.db")
}
