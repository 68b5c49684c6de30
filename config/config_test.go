package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `
capacity: 64
blocks:
  - id: offset
    type: /comms/const_arithmetic
    args:
      dtype: int16
      operation: K-X
      constant: 100
  - id: phase
    call: /comms/angle(complex_float32)
signal:
  kind: sine
  frequency: 1000
  samples: 16
control:
  enabled: true
  broker: tcp://localhost:1883
  client_id: bench
log:
  format: json
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Capacity != 64 {
		t.Fatalf("Capacity = %d, want 64", cfg.Capacity)
	}
	if len(cfg.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(cfg.Blocks))
	}
	if got := cfg.Blocks[0].Args["constant"]; got != "100" {
		t.Fatalf("constant arg = %q, want 100", got)
	}
	if cfg.Blocks[1].Call != "/comms/angle(complex_float32)" {
		t.Fatalf("Call = %q", cfg.Blocks[1].Call)
	}

	s := cfg.Signal
	if s.Chunk != 8 || s.SampleRate != 48000 || s.Amplitude != 1 {
		t.Fatalf("signal defaults not applied: %+v", s)
	}

	c := cfg.Control
	if c.TimeoutS != 5 {
		t.Fatalf("TimeoutS = %d, want 5", c.TimeoutS)
	}
	if c.Topics.Commands != "blocks/control/bench" ||
		c.Topics.Responses != "blocks/responses/bench" ||
		c.Topics.Events != "blocks/events/bench" {
		t.Fatalf("default topics = %+v", c.Topics)
	}

	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Fatalf("log = %+v", cfg.Log)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{"no blocks", "signal: {kind: dc}", "at least one block"},
		{"bad id", "blocks: [{id: Bad!, type: /comms/angle}]", "must match"},
		{"duplicate id", "blocks: [{id: a, type: /comms/angle}, {id: a, type: /comms/angle}]", "duplicate"},
		{"no type", "blocks: [{id: a}]", "needs type or call"},
		{"type and call", "blocks: [{id: a, type: /comms/angle, call: /comms/angle}]", "both"},
		{"args with call", "blocks: [{id: a, call: /comms/angle, args: {dtype: x}}]", "args with call"},
		{"signal kind", "blocks: [{type: /comms/angle}]\nsignal: {kind: chirp}", "signal.kind"},
		{"sine frequency", "blocks: [{type: /comms/angle}]\nsignal: {kind: sine, frequency: 30000}", "frequency"},
		{"negative samples", "blocks: [{type: /comms/angle}]\nsignal: {samples: -1}", "must be >= 0"},
		{"no broker", "blocks: [{type: /comms/angle}]\ncontrol: {enabled: true}", "control.broker"},
		{"qos", "blocks: [{type: /comms/angle}]\ncontrol: {enabled: true, broker: \"tcp://x:1\", qos: 3}", "qos"},
		{"log level", "blocks: [{type: /comms/angle}]\nlog: {level: trace}", "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("got %v, want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Fatalf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestDefaultBlockIDs(t *testing.T) {
	cfg, err := Parse([]byte("blocks: [{type: /comms/angle}, {call: /comms/const_arithmetic}]"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Blocks[0].ID != "block-0" || cfg.Blocks[1].ID != "block-1" {
		t.Fatalf("ids = %q, %q", cfg.Blocks[0].ID, cfg.Blocks[1].ID)
	}
	if cfg.Capacity != 256 || cfg.Signal.Kind != "ramp" || cfg.Signal.Samples != 32 {
		t.Fatalf("defaults not applied: capacity=%d signal=%+v", cfg.Capacity, cfg.Signal)
	}
	if cfg.Control.Enabled {
		t.Fatal("control enabled by default")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Blocks[0].ID != "offset" {
		t.Fatalf("Blocks[0].ID = %q, want offset", cfg.Blocks[0].ID)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("blocks: [")); err == nil {
		t.Fatal("expected parse error")
	}
}
