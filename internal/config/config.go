package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration, loaded from YAML.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
}

type ServerConfig struct {
	Listen         string        `yaml:"listen"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type SessionConfig struct {
	DefaultTTLSeconds uint64 `yaml:"default_ttl_seconds"`
}

// DefaultSessionTTLSeconds is the session lifetime applied when neither
// the config file nor the request specifies one.
const DefaultSessionTTLSeconds uint64 = 3600

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:         ":8080",
			RequestTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{Path: "dicebingo.db"},
		Session:  SessionConfig{DefaultTTLSeconds: DefaultSessionTTLSeconds},
	}
}

// Load reads a YAML config file, filling unset fields with defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "dicebingo.db"
	}
	if cfg.Session.DefaultTTLSeconds == 0 {
		cfg.Session.DefaultTTLSeconds = DefaultSessionTTLSeconds
	}
	return cfg, nil
}
