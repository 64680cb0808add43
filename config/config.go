// Package config loads the YAML configuration of the isochrone binaries.
// Files are merged over Default and validated with struct tags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/isochrone"
)

// ErrInvalidConfig wraps every load or validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// validate is a singleton validator instance
var validate = validator.New()

// Config is the root of the configuration file.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Limits   []float64      `yaml:"limits" validate:"omitempty,dive,gt=0"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Addr         string        `yaml:"addr" validate:"required,hostname_port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gt=0"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" validate:"min=1024"`
	MaxSamples   int           `yaml:"max_samples" validate:"min=3"`
	MaxLimits    int           `yaml:"max_limits" validate:"min=1,max=1000"`
}

// PipelineConfig maps onto isochrone and samples options.
type PipelineConfig struct {
	Epsilon         float64 `yaml:"epsilon" validate:"gte=0"`
	Workers         int     `yaml:"workers" validate:"min=1,max=1024"`
	LineBufferWidth float64 `yaml:"line_buffer_width" validate:"gte=0"`
	Subdivisions    int     `yaml:"subdivisions" validate:"min=1,max=64"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "json"},
		Server: ServerConfig{
			Addr:         "localhost:8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 32 << 20,
			MaxSamples:   1_000_000,
			MaxLimits:    32,
		},
		Pipeline: PipelineConfig{
			Epsilon:      1e-12,
			Workers:      4,
			Subdivisions: 1,
		},
	}
}

// Load reads the YAML file at path over Default. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks struct tags and the ordering of Limits.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, formatValidationError(err))
	}
	if len(cfg.Limits) > 0 {
		if err := isochrone.ValidateLimits(cfg.Limits); err != nil {
			return fmt.Errorf("%w: Limits: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Logger builds the slog logger described by c, writing to w.
func (c LogConfig) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch c.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Options returns the isochrone options described by c.
func (c PipelineConfig) Options() []isochrone.Option {
	opts := []isochrone.Option{
		isochrone.WithEpsilon(c.Epsilon),
		isochrone.WithWorkers(c.Workers),
	}
	if c.LineBufferWidth > 0 {
		opts = append(opts, isochrone.WithLineBufferFallback(c.LineBufferWidth))
	}
	return opts
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Report the first failing field.
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "hostname_port":
			return fmt.Errorf("%s: must be host:port", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
