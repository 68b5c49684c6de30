package block

import (
	"log/slog"

	"github.com/cwbudde/algo-blocks/kernel"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Config holds construction settings shared by all blocks.
type Config struct {
	// Dimension is the number of lanes per sample.
	Dimension int

	// Features overrides CPU detection for kernel resolution.
	Features *cpu.Features

	Logger *slog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns one-lane samples, detected CPU features and a
// discarding logger.
func DefaultConfig() Config {
	return Config{
		Dimension: 1,
		Logger:    slog.New(slog.DiscardHandler),
	}
}

// WithDimension sets the lanes per sample.
func WithDimension(dimension int) Option {
	return func(cfg *Config) {
		cfg.Dimension = dimension
	}
}

// WithFeatures resolves kernels against f instead of the detected CPU.
func WithFeatures(f cpu.Features) Option {
	return func(cfg *Config) {
		cfg.Features = &f
	}
}

// WithLogger sets the logger used for construction and control messages.
// Processing never logs.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (cfg Config) kernelOptions() []kernel.Option {
	if cfg.Features == nil {
		return nil
	}
	return []kernel.Option{kernel.WithFeatures(*cfg.Features)}
}
