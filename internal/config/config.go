package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the tool itself. The deploy configuration it
// serves is assembled from the environment, not from this file.
type Config struct {
	EnvFile  string         `yaml:"envFile"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Probe    ProbeConfig    `yaml:"probe"`
	Explorer ExplorerConfig `yaml:"explorer"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port         string   `yaml:"port"`
	ReadTimeout  int      `yaml:"readTimeout"`
	WriteTimeout int      `yaml:"writeTimeout"`
	IdleTimeout  int      `yaml:"idleTimeout"`
	AllowOrigins []string `yaml:"allowOrigins"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// ProbeConfig controls RPC endpoint probing.
type ProbeConfig struct {
	ConnectionTimeoutMs int64 `yaml:"connectionTimeoutMs"`
	RPCCallTimeoutMs    int64 `yaml:"rpcCallTimeoutMs"`
	MaxConcurrent       int   `yaml:"maxConcurrent"`
	RateLimit           int   `yaml:"rateLimit"` // requests per second across all networks
	BurstLimit          int   `yaml:"burstLimit"`
	CacheTTLSeconds     int   `yaml:"cacheTTLSeconds"`
}

// ExplorerConfig controls explorer credential checks.
type ExplorerConfig struct {
	RequestTimeoutMillis int64 `yaml:"requestTimeoutMillis"`
	RateLimit            int   `yaml:"rateLimit"`
	BurstLimit           int   `yaml:"burstLimit"`
	// APIURLs overrides the verification API base URL per explorer key.
	APIURLs map[string]string `yaml:"apiUrls"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)
	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.EnvFile == "" {
		cfg.EnvFile = ".env"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
		logrus.Debugf("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30 // probes can take a while
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Probe.ConnectionTimeoutMs <= 0 {
		cfg.Probe.ConnectionTimeoutMs = 10000
		logrus.Debugf("Probe.ConnectionTimeoutMs not set, defaulting to %d ms", cfg.Probe.ConnectionTimeoutMs)
	}
	if cfg.Probe.RPCCallTimeoutMs <= 0 {
		cfg.Probe.RPCCallTimeoutMs = 5000
		logrus.Debugf("Probe.RPCCallTimeoutMs not set, defaulting to %d ms", cfg.Probe.RPCCallTimeoutMs)
	}
	if cfg.Probe.MaxConcurrent <= 0 {
		cfg.Probe.MaxConcurrent = 4
	}
	if cfg.Probe.RateLimit <= 0 {
		cfg.Probe.RateLimit = 10
	}
	if cfg.Probe.BurstLimit <= 0 {
		cfg.Probe.BurstLimit = cfg.Probe.RateLimit
	}
	if cfg.Probe.CacheTTLSeconds <= 0 {
		cfg.Probe.CacheTTLSeconds = 30
	}

	if cfg.Explorer.RequestTimeoutMillis <= 0 {
		cfg.Explorer.RequestTimeoutMillis = 10000
		logrus.Debugf("Explorer.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Explorer.RequestTimeoutMillis)
	}
	// Free explorer tiers allow 5 calls per second.
	if cfg.Explorer.RateLimit <= 0 {
		cfg.Explorer.RateLimit = 5
	}
	if cfg.Explorer.BurstLimit <= 0 {
		cfg.Explorer.BurstLimit = 1
	}
	if cfg.Explorer.APIURLs == nil {
		cfg.Explorer.APIURLs = map[string]string{}
	}
}
