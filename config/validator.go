package config

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

var blockIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]*$`)

var signalKinds = map[string]bool{
	"sine":    true,
	"noise":   true,
	"ramp":    true,
	"impulse": true,
	"dc":      true,
}

// Validate checks cfg and fills in defaults.
func Validate(cfg *Config) error {
	if cfg.Capacity <= 0 {
		cfg.Capacity = 256
	}

	if len(cfg.Blocks) == 0 {
		return fmt.Errorf("%w: at least one block is required", ErrInvalid)
	}

	seen := make(map[string]bool, len(cfg.Blocks))
	for i := range cfg.Blocks {
		b := &cfg.Blocks[i]
		if b.ID == "" {
			b.ID = fmt.Sprintf("block-%d", i)
		}
		if !blockIDPattern.MatchString(b.ID) {
			return fmt.Errorf("%w: block id %q must match %s", ErrInvalid, b.ID, blockIDPattern)
		}
		if seen[b.ID] {
			return fmt.Errorf("%w: duplicate block id %q", ErrInvalid, b.ID)
		}
		seen[b.ID] = true

		switch {
		case b.Type == "" && b.Call == "":
			return fmt.Errorf("%w: block %q needs type or call", ErrInvalid, b.ID)
		case b.Type != "" && b.Call != "":
			return fmt.Errorf("%w: block %q sets both type and call", ErrInvalid, b.ID)
		case b.Call != "" && len(b.Args) > 0:
			return fmt.Errorf("%w: block %q sets args with call", ErrInvalid, b.ID)
		}
	}

	if err := validateSignal(&cfg.Signal); err != nil {
		return err
	}
	if err := validateControl(&cfg.Control); err != nil {
		return err
	}

	switch cfg.Log.Level {
	case "":
		cfg.Log.Level = "info"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "":
		cfg.Log.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, cfg.Log.Format)
	}

	return nil
}

func validateSignal(s *SignalConfig) error {
	if s.Kind == "" {
		s.Kind = "ramp"
	}
	if !signalKinds[s.Kind] {
		return fmt.Errorf("%w: signal.kind %q", ErrInvalid, s.Kind)
	}
	if s.Samples < 0 || s.Chunk < 0 {
		return fmt.Errorf("%w: signal.samples and signal.chunk must be >= 0", ErrInvalid)
	}
	if s.Samples == 0 {
		s.Samples = 32
	}
	if s.Chunk == 0 {
		s.Chunk = 8
	}
	if s.SampleRate <= 0 {
		s.SampleRate = 48000
	}
	if s.Amplitude == 0 {
		s.Amplitude = 1
	}
	if s.Kind == "sine" && (s.Frequency <= 0 || s.Frequency >= s.SampleRate/2) {
		return fmt.Errorf("%w: signal.frequency must be in (0, sample_rate/2)", ErrInvalid)
	}
	return nil
}

func validateControl(c *ControlConfig) error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("%w: control.broker is required", ErrInvalid)
	}
	if c.QoS > 2 {
		return fmt.Errorf("%w: control.qos must be 0, 1 or 2", ErrInvalid)
	}
	if c.ClientID == "" {
		c.ClientID = "blockrun"
	}
	if c.TimeoutS <= 0 {
		c.TimeoutS = 5
	}
	if c.Topics.Commands == "" {
		c.Topics.Commands = fmt.Sprintf("blocks/control/%s", c.ClientID)
	}
	if c.Topics.Responses == "" {
		c.Topics.Responses = fmt.Sprintf("blocks/responses/%s", c.ClientID)
	}
	if c.Topics.Events == "" {
		c.Topics.Events = fmt.Sprintf("blocks/events/%s", c.ClientID)
	}
	return nil
}
