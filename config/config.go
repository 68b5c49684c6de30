// Package config loads pipeline descriptions for the blockrun host.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one linear pipeline of blocks, the test signal streamed
// through it and the optional control plane.
type Config struct {
	// Capacity is the queue size of each stage in samples (default: 256).
	Capacity int           `yaml:"capacity"`
	Blocks   []BlockConfig `yaml:"blocks"`
	Signal   SignalConfig  `yaml:"signal"`
	Control  ControlConfig `yaml:"control"`
	Log      LogConfig     `yaml:"log"`
}

// BlockConfig declares one block either by type plus args or by a call
// expression such as "/comms/angle(complex_int16)".
type BlockConfig struct {
	ID   string            `yaml:"id"`
	Type string            `yaml:"type,omitempty"`
	Args map[string]string `yaml:"args,omitempty"`
	Call string            `yaml:"call,omitempty"`
}

// SignalConfig describes the generated input signal.
type SignalConfig struct {
	Kind       string  `yaml:"kind"`        // sine, noise, ramp, impulse, dc
	Samples    int     `yaml:"samples"`     // total samples (default: 32)
	Chunk      int     `yaml:"chunk"`       // samples written per step (default: 8)
	Frequency  float64 `yaml:"frequency"`   // sine only
	SampleRate float64 `yaml:"sample_rate"` // sine only (default: 48000)
	Amplitude  float64 `yaml:"amplitude"`   // default: 1
	Seed       int64   `yaml:"seed"`        // noise only
	Complex    bool    `yaml:"complex"`     // analytic (cos + i sin) or paired noise
}

// ControlConfig describes the MQTT control plane.
type ControlConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Broker   string        `yaml:"broker"`
	ClientID string        `yaml:"client_id"`
	Topics   ControlTopics `yaml:"topics"`
	QoS      byte          `yaml:"qos"`
	// TimeoutS bounds connect, subscribe and publish in seconds (default: 5).
	TimeoutS int `yaml:"timeout_s"`
}

// ControlTopics names the MQTT topics.
type ControlTopics struct {
	Commands  string `yaml:"commands"`
	Responses string `yaml:"responses"`
	Events    string `yaml:"events"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads, parses and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
