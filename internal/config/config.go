// Package config loads the installation configuration: an optional YAML
// exhibit file overridden by environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for a bare deployment.
const (
	DefaultPort      = "8090"
	DefaultFrameRate = 60
	DefaultLogLevel  = "info"
	DefaultTitle     = "inner reflection"
)

// Config describes one exhibit deployment.
type Config struct {
	Title     string `yaml:"title"`
	Port      string `yaml:"port"`
	FrameRate int    `yaml:"frame_rate"`
	Seed      int64  `yaml:"seed"` // 0 = derive from entropy at startup
	LogLevel  string `yaml:"log_level"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Title:     DefaultTitle,
		Port:      DefaultPort,
		FrameRate: DefaultFrameRate,
		LogLevel:  DefaultLogLevel,
	}
}

// Load reads the YAML file at path, if it exists, and applies environment
// overrides on top. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// fall through to env + defaults
		default:
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("FRAME_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.FrameRate = n
		}
	}
	if v := os.Getenv("SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = n
		}
	}
}

func (c *Config) validate() error {
	if c.FrameRate < 1 || c.FrameRate > 240 {
		return fmt.Errorf("config: frame rate %d outside [1,240]", c.FrameRate)
	}
	return nil
}

// EffectiveSeed returns the configured seed, or an entropy-derived one
// when the config leaves it at zero.
func (c *Config) EffectiveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// FrameInterval returns the frame ticker period.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}
