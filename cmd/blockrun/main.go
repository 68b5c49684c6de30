// Command blockrun streams a generated signal through a chain of compute
// blocks and prints the result.
//
// Usage:
//
//	blockrun [flags] [block-call ...]
//
// Blocks come from a YAML pipeline (-config) or from call expressions on
// the command line. With control enabled the constants of all blocks can
// be read and changed over MQTT while the pipeline runs.
//
// Examples:
//
//	blockrun '/comms/const_arithmetic(int16, K-X, 100)'
//	blockrun -signal sine -complex '/comms/angle(complex_float32)'
//	blockrun -config pipeline.yaml -hold -interval 1s
//	blockrun -list
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-blocks/block"
	"github.com/cwbudde/algo-blocks/config"
	"github.com/cwbudde/algo-blocks/control"
	"github.com/cwbudde/algo-blocks/dtype"
	"github.com/cwbudde/algo-blocks/factory"
	"github.com/cwbudde/algo-blocks/kernel"
	"github.com/cwbudde/algo-vecmath/cpu"
)

type options struct {
	configPath string
	signal     string
	samples    int
	chunk      int
	amplitude  float64
	frequency  float64
	complex    bool
	list       bool
	generic    bool
	hold       bool
	interval   time.Duration
	broker     string
	logFormat  string
	verbose    bool
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "YAML pipeline file")
	flag.StringVar(&o.signal, "signal", "", "input signal: sine, noise, ramp, impulse, dc")
	flag.IntVar(&o.samples, "samples", 0, "number of input samples")
	flag.IntVar(&o.chunk, "chunk", 0, "samples per processing step")
	flag.Float64Var(&o.amplitude, "amplitude", 0, "signal amplitude")
	flag.Float64Var(&o.frequency, "freq", 0, "sine frequency in Hz")
	flag.BoolVar(&o.complex, "complex", false, "generate a complex signal")
	flag.BoolVar(&o.list, "list", false, "list block types and kernels")
	flag.BoolVar(&o.generic, "generic", false, "force generic kernels")
	flag.BoolVar(&o.hold, "hold", false, "keep running until interrupted (for control)")
	flag.DurationVar(&o.interval, "interval", 0, "with -hold, re-stream the signal at this interval")
	flag.StringVar(&o.broker, "mqtt", "", "enable MQTT control on this broker (tcp://host:port)")
	flag.StringVar(&o.logFormat, "log-format", "", "log format: text or json")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: blockrun [flags] [block-call ...]\n\n")
		fmt.Fprintf(os.Stderr, "Streams a generated signal through compute blocks and prints the output.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  blockrun '/comms/const_arithmetic(int16, K-X, 100)'\n")
		fmt.Fprintf(os.Stderr, "  blockrun -signal sine -freq 1000 -complex '/comms/angle(complex_float32)'\n")
		fmt.Fprintf(os.Stderr, "  blockrun -config pipeline.yaml -mqtt tcp://localhost:1883 -hold\n")
		fmt.Fprintf(os.Stderr, "  blockrun -list\n")
	}
	flag.Parse()

	if o.list {
		if err := printList(os.Stdout, factory.Default()); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := loadConfig(o, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	logger := newLogger(os.Stderr, cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, o, logger, os.Stdout); err != nil {
		logger.Error("blockrun failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the YAML file or builds a config from block calls,
// then applies flag overrides.
func loadConfig(o options, calls []string) (*config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	for _, call := range calls {
		cfg.Blocks = append(cfg.Blocks, config.BlockConfig{Call: call})
	}

	if o.signal != "" {
		cfg.Signal.Kind = o.signal
	}
	if o.samples > 0 {
		cfg.Signal.Samples = o.samples
	}
	if o.chunk > 0 {
		cfg.Signal.Chunk = o.chunk
	}
	if o.amplitude != 0 {
		cfg.Signal.Amplitude = o.amplitude
	}
	if o.frequency > 0 {
		cfg.Signal.Frequency = o.frequency
	}
	if o.complex {
		cfg.Signal.Complex = true
	}
	if o.broker != "" {
		cfg.Control.Enabled = true
		cfg.Control.Broker = o.broker
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}

	if err := config.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newLogger(w io.Writer, c config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelInfo
	}
	hopts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

func run(ctx context.Context, cfg *config.Config, o options, logger *slog.Logger, out io.Writer) error {
	var opts []block.Option
	if o.generic {
		opts = append(opts, block.WithFeatures(cpu.Features{ForceGeneric: true}))
	}

	p, err := buildPipeline(cfg, factory.Default(), logger, opts...)
	if err != nil {
		return err
	}
	defer p.close()

	if cfg.Control.Enabled {
		client, err := control.Dial(cfg.Control, logger)
		if err != nil {
			return err
		}
		defer client.Disconnect(250)

		h := control.NewHandler(logger)
		if err := p.register(h); err != nil {
			return err
		}
		l := control.NewMQTTListener(client, h, cfg.Control, logger)
		if err := l.Start(ctx); err != nil {
			return err
		}
		defer l.Stop()
	}

	in := p.stages[0].block.InputType()
	input, err := generate(cfg.Signal, in)
	if err != nil {
		return err
	}

	if err := streamSignal(p, input, cfg.Signal.Chunk, in.Dimension, out); err != nil {
		return err
	}
	if !o.hold {
		return nil
	}

	logger.Info("holding; interrupt to exit")
	if o.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := streamSignal(p, input, cfg.Signal.Chunk, in.Dimension, out); err != nil {
				return err
			}
		}
	}
}

// streamSignal runs input through p and prints one row per sample.
func streamSignal(p *pipeline, input []any, chunk, dim int, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Sample\tInput\tOutput\n")
	fmt.Fprintf(tw, "------\t-----\t------\n")

	outDim := p.stages[len(p.stages)-1].block.OutputType().Dimension
	sample := 0
	err := p.run(input, chunk, func(in, out []any) {
		for i := 0; i*dim < len(in); i++ {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", sample, lanes(in, i, dim), lanes(out, i, outDim))
			sample++
		}
	})
	if ferr := tw.Flush(); err == nil {
		err = ferr
	}
	return err
}

func lanes(vals []any, i, dim int) string {
	lo, hi := i*dim, min((i+1)*dim, len(vals))
	if lo >= hi {
		return "-"
	}
	parts := make([]string, 0, hi-lo)
	for _, v := range vals[lo:hi] {
		parts = append(parts, fmt.Sprint(control.EncodeValue(v)))
	}
	return strings.Join(parts, " ")
}

func printList(w io.Writer, reg *factory.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Block\tArguments\tDefaults\n")
	fmt.Fprintf(tw, "-----\t---------\t--------\n")
	for _, name := range reg.Names() {
		e, _ := reg.Lookup(name)
		defs := make([]string, 0, len(e.Args))
		for _, a := range e.Args {
			defs = append(defs, a+"="+e.Defaults[a])
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, strings.Join(e.Args, ", "), strings.Join(defs, ", "))
	}
	fmt.Fprintf(tw, "\nOperation\tType\tKernel\n")
	fmt.Fprintf(tw, "---------\t----\t------\n")

	for _, k := range kernel.Keys() {
		dt := dtype.DType{Kind: k.Kind, Complex: k.Complex, Dimension: 1}
		impl, err := kernel.Resolve(k.Op, dt)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", k.Op, dt, impl.Name)
	}
	return tw.Flush()
}
