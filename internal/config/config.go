// Package config loads folio's runtime configuration from an optional
// YAML file layered with environment variables. Flags handled by the CLI
// override both.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file the CLI looks for when none is given.
const DefaultPath = "folio.yaml"

// Config holds every tunable the folio binaries read.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	OpenAI OpenAIConfig `yaml:"openai"`
	Chat   ChatConfig   `yaml:"chat"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// RedisConfig configures the optional Redis message store.
// When Addr is empty the in-memory store is used instead.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// OpenAIConfig configures the completion backend.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// ChatConfig configures the turn processor and session bookkeeping.
type ChatConfig struct {
	MaxSessions int           `yaml:"max_sessions"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Default returns the baseline configuration before any file or env overlay.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Chat:   ChatConfig{MaxSessions: 1000, Timeout: 30 * time.Second},
	}
}

// Load reads the config file at path (if it exists), then applies
// environment overrides. A missing file at the default path is not an
// error; a missing file explicitly requested by the user is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file, defaults plus env are enough.
	default:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FOLIO_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.OpenAI.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.OpenAI.BaseURL = v
	}
}
