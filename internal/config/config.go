// Package config loads the run configuration from defaults, an optional YAML
// file and MWA_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is everything one run needs.
type Config struct {
	MoviePath string        `yaml:"movie_path" env:"MOVIE_PATH"`
	ArtPath   string        `yaml:"art_path" env:"ART_PATH"`
	Art       ArtConfig     `yaml:"art" envPrefix:"ART_"`
	Preview   PreviewConfig `yaml:"preview" envPrefix:"PREVIEW_"`
	Log       LogConfig     `yaml:"log" envPrefix:"LOG_"`
}

// ArtConfig sizes the output and picks the reduction style.
type ArtConfig struct {
	Width  int    `yaml:"width" env:"WIDTH"`
	Height int    `yaml:"height" env:"HEIGHT"`
	Style  string `yaml:"style" env:"STYLE"`
}

// PreviewConfig enables the optional observers.
type PreviewConfig struct {
	Window   bool   `yaml:"window" env:"WINDOW"`
	HTTPAddr string `yaml:"http_addr" env:"HTTP_ADDR"`
	Progress bool   `yaml:"progress" env:"PROGRESS"`
}

// LogConfig mirrors logger.Config.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
	Output string `yaml:"output" env:"OUTPUT"`
}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MWA_"

// Default returns the built-in configuration: a 1080x1920 average-color
// poster of movie.mp4 written to art.png.
func Default() *Config {
	return &Config{
		MoviePath: "movie.mp4",
		ArtPath:   "art.png",
		Art: ArtConfig{
			Width:  1080,
			Height: 1920,
			Style:  "average",
		},
		Preview: PreviewConfig{Progress: true},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load applies the YAML file at path (if path is not empty) and then the
// environment on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.MoviePath == "" {
		errs = append(errs, "movie_path is required")
	}
	if c.ArtPath == "" {
		errs = append(errs, "art_path is required")
	}
	if c.Art.Width <= 0 {
		errs = append(errs, fmt.Sprintf("art.width must be > 0, got: %d", c.Art.Width))
	}
	if c.Art.Height <= 0 {
		errs = append(errs, fmt.Sprintf("art.height must be > 0, got: %d", c.Art.Height))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Sprintf("invalid log.format: %s (must be: text or json)", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
