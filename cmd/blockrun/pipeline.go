package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-blocks/block"
	"github.com/cwbudde/algo-blocks/config"
	"github.com/cwbudde/algo-blocks/control"
	"github.com/cwbudde/algo-blocks/factory"
	"github.com/cwbudde/algo-blocks/stream"
)

type stage struct {
	id    string
	block block.Processor
	pipe  stream.Pipe
}

// pipeline is a linear chain of blocks, each driven through its own pipe.
type pipeline struct {
	stages   []stage
	capacity int
	logger   *slog.Logger
}

var errChain = errors.New("blockrun: incompatible stages")

func buildPipeline(cfg *config.Config, reg *factory.Registry, logger *slog.Logger, opts ...block.Option) (*pipeline, error) {
	p := &pipeline{capacity: cfg.Capacity, logger: logger}
	opts = append(opts, block.WithLogger(logger))

	for _, bc := range cfg.Blocks {
		var (
			b   block.Processor
			err error
		)
		if bc.Call != "" {
			b, err = reg.BuildCall(bc.Call, opts...)
		} else {
			b, err = reg.Build(factory.Params{ID: bc.ID, Type: bc.Type, Args: bc.Args}, opts...)
		}
		if err != nil {
			p.close()
			return nil, fmt.Errorf("block %s: %w", bc.ID, err)
		}

		if n := len(p.stages); n > 0 {
			prev := p.stages[n-1]
			if prev.block.OutputType() != b.InputType() {
				p.close()
				return nil, fmt.Errorf("%w: %s produces %s, %s expects %s",
					errChain, prev.id, prev.block.OutputType(), bc.ID, b.InputType())
			}
		}

		pipe, err := stream.Bind(b, cfg.Capacity)
		if err != nil {
			p.close()
			return nil, fmt.Errorf("block %s: %w", bc.ID, err)
		}

		p.stages = append(p.stages, stage{id: bc.ID, block: b, pipe: pipe})
		logger.Info("block ready",
			"id", bc.ID,
			"operation", b.Op().String(),
			"input", b.InputType().String(),
			"output", b.OutputType().String(),
			"kernel", b.Implementation())
	}
	return p, nil
}

// register exposes every stage on the control plane.
func (p *pipeline) register(h *control.Handler) error {
	for _, s := range p.stages {
		if err := h.Register(s.id, s.block); err != nil {
			return err
		}
	}
	return nil
}

// run streams input through all stages chunk samples at a time and calls
// emit with each chunk of input and final output elements.
func (p *pipeline) run(input []any, chunk int, emit func(in, out []any)) error {
	if len(p.stages) == 0 {
		return nil
	}
	if chunk > p.capacity {
		chunk = p.capacity
	}

	dim := p.stages[0].block.InputType().Dimension
	step := chunk * dim
	for off := 0; off < len(input); off += step {
		in := input[off:min(off+step, len(input))]
		vals := in
		for _, s := range p.stages {
			n, err := s.pipe.Push(vals)
			if err != nil {
				return fmt.Errorf("block %s: %w", s.id, err)
			}
			if n != len(vals) {
				return fmt.Errorf("block %s: accepted %d of %d elements", s.id, n, len(vals))
			}
			s.pipe.Step()
			vals = s.pipe.Pull()
		}
		emit(in, vals)
	}
	return nil
}

func (p *pipeline) close() {
	for _, s := range p.stages {
		s.pipe.Release()
		if c, ok := s.block.(block.Constant); ok {
			c.Close()
		}
	}
	p.stages = nil
}
