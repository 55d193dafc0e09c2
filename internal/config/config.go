package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config represents the server configuration. Values are layered: defaults, then the
// TOML file, then the environment (after loading a .env file). Command line flags are
// applied by the caller on top.
type Config struct {
	Port            string        `toml:"port" env:"SOLITAIRE_PORT"`
	FrontendURL     string        `toml:"frontend_url" env:"SOLITAIRE_FRONTEND_URL"`
	LogLevel        string        `toml:"log_level" env:"SOLITAIRE_LOG_LEVEL"`
	LogFormat       string        `toml:"log_format" env:"SOLITAIRE_LOG_FORMAT"`
	Validate        bool          `toml:"validate" env:"SOLITAIRE_VALIDATE"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"SOLITAIRE_SHUTDOWN_TIMEOUT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:            "8080",
		FrontendURL:     "http://localhost:5173",
		LogLevel:        "info",
		LogFormat:       "text",
		ShutdownTimeout: 10 * time.Second,
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "solitaire", "config.toml")
}

// Options say where Load looks. Empty paths mean the defaults; only an explicit
// ConfigPath has to exist.
type Options struct {
	ConfigPath string
	EnvFile    string
}

// Load builds the configuration from every layer and checks it.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	path := opts.ConfigPath
	if path == "" {
		path = GetConfigFilePath()
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if opts.ConfigPath != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", envFile, err)
	}

	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("error decoding environment: %w", err)
	}

	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Check reports the first invalid setting.
func (c *Config) Check() error {
	if c.Port == "" {
		return errors.New("config: port is required")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// Logger builds the logger the configuration describes. Call Check first.
func (c *Config) Logger() *logrus.Logger {
	log := logrus.New()
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if strings.EqualFold(c.LogFormat, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
