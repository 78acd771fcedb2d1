package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the batch gateway configuration.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Upstream    UpstreamConfig    `yaml:"upstream"`
	Auth        AuthConfig        `yaml:"auth"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds gateway authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// UpstreamConfig holds ParkHub API client settings.
type UpstreamConfig struct {
	BaseURL     string `yaml:"base_url"`
	Landmark    string `yaml:"landmark"`
	TimeoutSec  int    `yaml:"timeout_sec"`
	MaxRetries  int    `yaml:"max_retries"`
	BaseDelayMs int    `yaml:"base_delay_ms"`
	MaxDelayMs  int    `yaml:"max_delay_ms"`
	ChunkSize   int    `yaml:"chunk_size"`
}

// CredentialsConfig holds the API key store settings.
type CredentialsConfig struct {
	Driver    string   `yaml:"driver"` // memory, redis (default: memory)
	Addrs     []string `yaml:"addrs"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
	KeyPrefix string   `yaml:"key_prefix"`
	TTLSec    int      `yaml:"ttl_sec"`
	// APIKey seeds the store at startup when set (useful for memory driver).
	APIKey string `yaml:"api_key"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Upstream.TimeoutSec <= 0 {
		c.Upstream.TimeoutSec = 30
	}
	if c.Upstream.MaxRetries <= 0 {
		c.Upstream.MaxRetries = 3
	}
	if c.Upstream.BaseDelayMs <= 0 {
		c.Upstream.BaseDelayMs = 1000
	}
	if c.Upstream.MaxDelayMs <= 0 {
		c.Upstream.MaxDelayMs = 30000
	}
	if c.Upstream.ChunkSize <= 0 {
		c.Upstream.ChunkSize = 10
	}
	if c.Credentials.Driver == "" {
		c.Credentials.Driver = "memory"
	}
	if c.Credentials.KeyPrefix == "" {
		c.Credentials.KeyPrefix = "parkhub:"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.base_url is required")
	}
	if c.Upstream.Landmark == "" {
		return fmt.Errorf("upstream.landmark is required")
	}
	switch c.Credentials.Driver {
	case "memory", "redis":
		// ok
	default:
		return fmt.Errorf("credentials.driver must be \"memory\" or \"redis\", got %q", c.Credentials.Driver)
	}
	if c.Credentials.Driver == "redis" && len(c.Credentials.Addrs) == 0 {
		return fmt.Errorf("credentials.addrs is required for the redis driver")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
