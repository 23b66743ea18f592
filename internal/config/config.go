package config

import (
	"fmt"

	"github.com/dshills/piecetable/internal/config/loader"
	"github.com/dshills/piecetable/internal/engine"
	"github.com/dshills/piecetable/internal/engine/buffer"
	"github.com/dshills/piecetable/internal/logging"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "PIECETABLE_"

// Config holds all piecetable settings.
type Config struct {
	Logging LoggingConfig
	Engine  EngineConfig
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string
}

// EngineConfig holds engine settings.
type EngineConfig struct {
	// Boundary is one of bytes, runes or graphemes.
	Boundary string
	// ReadOnly rejects all edits.
	ReadOnly bool
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Engine:  EngineConfig{Boundary: "bytes"},
	}
}

// Load reads path (if non-empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	return LoadFS(loader.DefaultFS(), path)
}

// LoadFS is Load reading files from fsys.
// Environment variables take precedence over the file.
func LoadFS(fsys loader.FileSystem, path string) (*Config, error) {
	fileData := map[string]any{}
	if path != "" {
		l, err := loader.ForPath(fsys, path)
		if err != nil {
			return nil, err
		}
		data, err := l.Load()
		if err != nil {
			return nil, err
		}
		if data != nil {
			fileData = data
		}
	}

	envData, err := loader.NewEnvLoader(EnvPrefix).Load()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := cfg.apply(loader.DeepMerge(fileData, envData)); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply copies the recognized settings in data into c.
// Unknown settings are ignored.
func (c *Config) apply(data map[string]any) error {
	if v, ok := loader.GetByPath(data, "logging.level"); ok {
		s, err := asString("logging.level", v)
		if err != nil {
			return err
		}
		c.Logging.Level = s
	}
	if v, ok := loader.GetByPath(data, "engine.boundary"); ok {
		s, err := asString("engine.boundary", v)
		if err != nil {
			return err
		}
		c.Engine.Boundary = s
	}
	if v, ok := loader.GetByPath(data, "engine.readOnly"); ok {
		b, ok := v.(bool)
		if !ok {
			return &TypeError{Path: "engine.readOnly", Expected: "bool", Actual: fmt.Sprintf("%T", v)}
		}
		c.Engine.ReadOnly = b
	}
	return nil
}

func asString(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: fmt.Sprintf("%T", v)}
	}
	return s, nil
}

// Validate checks that every setting has a recognized value.
func (c *Config) Validate() error {
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		return &ValidationError{
			Path:    "logging.level",
			Message: "must be one of debug, info, warn, error",
			Value:   c.Logging.Level,
		}
	}
	if _, err := buffer.ParseBoundaryMode(c.Engine.Boundary); err != nil {
		return &ValidationError{
			Path:    "engine.boundary",
			Message: "must be one of bytes, runes, graphemes",
			Value:   c.Engine.Boundary,
		}
	}
	return nil
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}

// Boundary returns the configured boundary mode.
func (c *Config) Boundary() buffer.BoundaryMode {
	mode, _ := buffer.ParseBoundaryMode(c.Engine.Boundary)
	return mode
}

// EngineOptions returns the engine options described by c.
func (c *Config) EngineOptions(logger *logging.Logger) []engine.Option {
	opts := []engine.Option{
		engine.WithBoundary(c.Boundary()),
		engine.WithLogger(logger),
	}
	if c.Engine.ReadOnly {
		opts = append(opts, engine.WithReadOnly())
	}
	return opts
}
