package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/cwbudde/algo-blocks/config"
	"github.com/cwbudde/algo-blocks/dtype"
	"github.com/cwbudde/algo-blocks/factory"
)

var quiet = slog.New(slog.DiscardHandler)

func TestRunConstSubX(t *testing.T) {
	cfg, err := loadConfig(options{signal: "ramp", samples: 3, amplitude: 10}, []string{
		"/comms/const_arithmetic(int16, X+K, 10)",
		"/comms/const_arithmetic(int16, K-X, 100)",
	})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run(context.Background(), cfg, options{}, quiet, &out); err != nil {
		t.Fatal(err)
	}

	// ramp 0, 10, 20 -> +10 -> 100-x
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("output:\n%s", out.String())
	}
	for i, want := range []string{"90", "80", "70"} {
		fields := strings.Fields(lines[i+2])
		if fields[len(fields)-1] != want {
			t.Fatalf("row %d = %q, want output %s", i, lines[i+2], want)
		}
	}
}

func TestRunAngleChain(t *testing.T) {
	cfg, err := loadConfig(options{signal: "dc", samples: 2, complex: true}, []string{
		"/comms/const_arithmetic(complex_float32, X*K, 0+1i)",
		"/comms/angle",
	})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run(context.Background(), cfg, options{generic: true}, quiet, &out); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(out.String(), "1.5707964"); got != 2 {
		t.Fatalf("expected two pi/2 rows:\n%s", out.String())
	}
}

func TestBuildPipelineRejectsTypeMismatch(t *testing.T) {
	cfg, err := loadConfig(options{}, []string{
		"/comms/const_arithmetic(int16)",
		"/comms/angle(complex_int16)",
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = buildPipeline(cfg, factory.Default(), quiet)
	if !errors.Is(err, errChain) {
		t.Fatalf("got %v, want errChain", err)
	}
}

func TestBuildPipelineReportsBlockErrors(t *testing.T) {
	cfg, err := loadConfig(options{}, []string{"/comms/const_arithmetic(int8, X/K, 0)"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := buildPipeline(cfg, factory.Default(), quiet); err == nil || !strings.Contains(err.Error(), "block-0") {
		t.Fatalf("got %v, want error naming block-0", err)
	}
}

func TestLoadConfigRequiresBlocks(t *testing.T) {
	if _, err := loadConfig(options{}, nil); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("got %v, want config.ErrInvalid", err)
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	cfg, err := loadConfig(options{
		chunk:     4,
		broker:    "tcp://localhost:1883",
		logFormat: "json",
		verbose:   true,
	}, []string{"/comms/angle"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Signal.Chunk != 4 || !cfg.Control.Enabled || cfg.Log.Format != "json" || cfg.Log.Level != "debug" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestGenerate(t *testing.T) {
	s := config.SignalConfig{Kind: "ramp", Samples: 3, Amplitude: 0.6, SampleRate: 48000}

	got, err := generate(s, dtype.MustParse("int32x2"))
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 1, 1, 2, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}

	s = config.SignalConfig{Kind: "sine", Samples: 2, Amplitude: 1, Frequency: 12000, SampleRate: 48000, Complex: true}
	got, err = generate(s, dtype.ComplexOf(dtype.Float64))
	if err != nil {
		t.Fatal(err)
	}
	if c := got[1].(complex128); real(c) > 1e-12 || imag(c) != 1 {
		t.Fatalf("second sine sample = %v, want i", c)
	}
}

func TestPrintList(t *testing.T) {
	var out bytes.Buffer
	if err := printList(&out, factory.Default()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"/comms/angle", "/comms/const_arithmetic", "K/X", "complex_int16", "generic"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("listing lacks %q:\n%s", want, out.String())
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, config.LogConfig{Level: "debug", Format: "json"})
	l.Debug("hello", "k", 1)
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Fatalf("json log = %q", buf.String())
	}
}
