package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Shy5ta/studentSuite/internal/logger"
)

const (
	EnvConfig   = "STUDENTSUITE_CONFIG"
	EnvLogDir   = "STUDENTSUITE_LOG_DIR"
	EnvLogLevel = "STUDENTSUITE_LOG_LEVEL"
	EnvCatalog  = "STUDENTSUITE_CATALOG"
	EnvWrap     = "STUDENTSUITE_WRAP"
	EnvNoColor  = "NO_COLOR"

	DefaultWrapWidth = 80
)

type Config struct {
	LogDir      string `yaml:"log_dir"`
	LogLevel    string `yaml:"log_level"`
	CatalogPath string `yaml:"catalog"`
	WrapWidth   int    `yaml:"wrap_width"`
	NoColor     bool   `yaml:"no_color"`

	// File is the YAML file that was read, if any.
	File string `yaml:"-"`
	// Err records a config file or value that could not be used. Load
	// still returns usable defaults.
	Err error `yaml:"-"`
}

func Load() *Config {
	cfg := &Config{
		LogLevel:  "info",
		WrapWidth: DefaultWrapWidth,
	}

	// .env never overrides variables that are already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		cfg.Err = errors.Join(cfg.Err, fmt.Errorf("failed to read .env: %w", err))
	}

	if path := filePath(); path != "" {
		if err := cfg.readFile(path); err != nil {
			cfg.Err = errors.Join(cfg.Err, err)
		}
	}

	if val := os.Getenv(EnvLogDir); val != "" {
		cfg.LogDir = val
	}
	if val := os.Getenv(EnvLogLevel); val != "" {
		cfg.LogLevel = val
	}
	if val := os.Getenv(EnvCatalog); val != "" {
		cfg.CatalogPath = val
	}
	if val := os.Getenv(EnvWrap); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil || n < 20 {
			cfg.Err = errors.Join(cfg.Err, fmt.Errorf("%s: want a width of at least 20, got %q", EnvWrap, val))
		} else {
			cfg.WrapWidth = n
		}
	}
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.NoColor = true
	}

	if cfg.WrapWidth < 20 {
		cfg.WrapWidth = DefaultWrapWidth
	}

	return cfg
}

// filePath picks STUDENTSUITE_CONFIG, then the XDG config location.
func filePath() string {
	if val := os.Getenv(EnvConfig); val != "" {
		return val
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "studentsuite", "config.yaml")
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && os.Getenv(EnvConfig) == "" {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	c.File = path
	return nil
}

// Logger opens the configured event log. Without a log directory events
// are discarded.
func (c *Config) Logger() (*logger.Logger, error) {
	if c.LogDir == "" {
		return logger.Discard(), nil
	}
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.Discard(), err
	}
	return logger.New(c.LogDir, level)
}

var Current = Load()
