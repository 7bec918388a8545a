package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"sl/pkg/interpreter"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings of a run. The YAML file overrides the defaults
// and explicitly set command line flags override the file.
type Config struct {
	GCInterval float64 `yaml:"gc_interval"` // seconds between collections, <0 disables
	MaxSteps   int     `yaml:"max_steps"`   // 0 = unlimited
	MaxDepth   int     `yaml:"max_depth"`   // 0 = unlimited
	NoColor    bool    `yaml:"no_color"`
	Verbose    bool    `yaml:"verbose"`
	DumpAST    bool    `yaml:"dump_ast"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		GCInterval: interpreter.DefaultGCInterval,
		MaxDepth:   interpreter.DefaultMaxDepth,
	}
}

// Load reads a YAML config file on top of the defaults
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	cfg, err := Parse(file)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r on top of the defaults. Unknown keys are
// rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Validate checks the limits are in range
func (c Config) Validate() error {
	if c.MaxSteps < 0 {
		return fmt.Errorf("%w: max_steps must not be negative, got %d", ErrInvalidConfig, c.MaxSteps)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}

// Options converts the limits into interpreter options
func (c Config) Options() []interpreter.Option {
	return []interpreter.Option{
		interpreter.WithGCInterval(c.GCInterval),
		interpreter.WithMaxSteps(c.MaxSteps),
		interpreter.WithMaxDepth(c.MaxDepth),
	}
}

// Encode writes c as YAML
func (c Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return enc.Close()
}
