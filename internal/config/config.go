// Package config loads udimgen settings from defaults, an optional YAML file,
// .env and UDIMGEN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/joseyose/udimgen"
	"github.com/joseyose/udimgen/internal/logging"
	"github.com/joseyose/udimgen/internal/sink"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "udimgen.yaml"

// Config is the full tool configuration.
type Config struct {
	Log     logging.Config `yaml:"log"`
	Parse   ParseConfig    `yaml:"parse"`
	Format  FormatConfig   `yaml:"format"`
	Storage sink.S3Config  `yaml:"storage"`

	// Strict fails generation when validation reports error-level issues.
	Strict bool `yaml:"strict"`
}

// ParseConfig controls manifest reading.
type ParseConfig struct {
	Exclude          []string `yaml:"exclude"`
	DisableUTF8Check bool     `yaml:"disable_utf8_check"`
}

// FormatConfig controls the generated build script.
type FormatConfig struct {
	Variable string `yaml:"variable"`
	Tool     string `yaml:"tool"`
	Width    int    `yaml:"width"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: logging.DefaultConfig(),
		Format: FormatConfig{
			Variable: udimgen.DefaultVariable,
			Tool:     udimgen.DefaultTool,
			Width:    udimgen.DefaultWidth,
		},
		Storage: sink.S3Config{
			Region: "us-east-1",
			UseSSL: true,
		},
	}
}

// Load builds the configuration. An explicit path must exist; with an empty
// path DefaultFile is used when present.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// A missing .env is normal.
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	if err := cfg.loadFile(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return nil, err
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile decodes a YAML file over the current values.
func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := env("UDIMGEN_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := env("UDIMGEN_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := env("UDIMGEN_EXCLUDE"); v != "" {
		c.Parse.Exclude = splitList(v)
	}
	if v := env("UDIMGEN_MAKEMIP"); v != "" {
		c.Format.Tool = v
	}
	if v := env("UDIMGEN_STRICT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Strict = b
		}
	}

	if v := env("UDIMGEN_S3_ENDPOINT"); v != "" {
		c.Storage.Endpoint = v
	}
	if v := env("UDIMGEN_S3_REGION"); v != "" {
		c.Storage.Region = v
	}
	if v := env("UDIMGEN_S3_ACCESS_KEY"); v != "" {
		c.Storage.AccessKey = v
	}
	if v := env("UDIMGEN_S3_SECRET_KEY"); v != "" {
		c.Storage.SecretKey = v
	}
	if v := env("UDIMGEN_S3_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Storage.UseSSL = b
		}
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if c.Format.Width < 0 {
		return fmt.Errorf("format width must not be negative, got %d", c.Format.Width)
	}

	return nil
}

// ParseOptions returns manifest parse options.
func (c *Config) ParseOptions() *udimgen.ParseOptions {
	return &udimgen.ParseOptions{
		Exclude:          append([]string(nil), c.Parse.Exclude...),
		DisableUTF8Check: c.Parse.DisableUTF8Check,
	}
}

// FormatOptions returns build script options.
func (c *Config) FormatOptions() *udimgen.FormatOptions {
	return &udimgen.FormatOptions{
		Variable: c.Format.Variable,
		Tool:     c.Format.Tool,
		Width:    c.Format.Width,
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// splitList splits a comma separated list, dropping empty entries.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
