// Package config loads settings for the str8 command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix marks environment variables read by Load.
	EnvPrefix = "STR8_"

	maxConfigFileSize = 1024 * 1024 // 1MB
)

// Config holds str8 command settings.
type Config struct {
	Log     LogConfig     `koanf:"log"`
	Arena   ArenaConfig   `koanf:"arena"`
	Heap    HeapConfig    `koanf:"heap"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json or console
}

// ArenaConfig routes string buffers through a str8.Arena when Enabled.
type ArenaConfig struct {
	Enabled   bool `koanf:"enabled"`
	ChunkSize int  `koanf:"chunk_size"`
	Limit     int  `koanf:"limit"`
}

// HeapConfig bounds single heap allocations; 0 means unbounded.
type HeapConfig struct {
	Limit int `koanf:"limit"`
}

// MetricsConfig controls the metric dump printed after a command.
type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info", Format: "console"},
		Arena: ArenaConfig{ChunkSize: 1 << 16},
	}
}

// Load reads configuration with this precedence (highest first):
//  1. Environment variables (STR8_LOG_LEVEL, STR8_ARENA_CHUNK_SIZE, ...)
//  2. The YAML file at path, when path is not empty
//  3. Default()
//
// Environment names split on the first underscore after the prefix:
//
//	STR8_ARENA_CHUNK_SIZE -> arena.chunk_size
//	STR8_LOG_FORMAT       -> log.format
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	def := Default()
	defaults := map[string]any{
		"log.level":        def.Log.Level,
		"log.format":       def.Log.Format,
		"arena.enabled":    def.Arena.Enabled,
		"arena.chunk_size": def.Arena.ChunkSize,
		"arena.limit":      def.Arena.Limit,
		"heap.limit":       def.Heap.Limit,
		"metrics.enabled":  def.Metrics.Enabled,
	}
	for key, v := range defaults {
		if err := k.Set(key, v); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if path != "" {
		content, err := readFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("config file %s is not a regular file", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}
	if c.Arena.ChunkSize < 0 {
		errs = append(errs, fmt.Errorf("arena.chunk_size must be >= 0, got %d", c.Arena.ChunkSize))
	}
	if c.Arena.Limit < 0 {
		errs = append(errs, fmt.Errorf("arena.limit must be >= 0, got %d", c.Arena.Limit))
	}
	if c.Heap.Limit < 0 {
		errs = append(errs, fmt.Errorf("heap.limit must be >= 0, got %d", c.Heap.Limit))
	}
	return errors.Join(errs...)
}
