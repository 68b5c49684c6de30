package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-blocks/config"
	"github.com/cwbudde/algo-blocks/dtype"
)

// generate returns samples*dt.Dimension input elements for dt. Integer
// element types receive values rounded to the nearest integer; unsigned
// types receive magnitudes.
func generate(s config.SignalConfig, dt dtype.DType) ([]any, error) {
	n := dt.Elements(s.Samples)
	out := make([]any, n)
	rng := rand.New(rand.NewSource(s.Seed))
	step := 2 * math.Pi * s.Frequency / s.SampleRate

	for i := range out {
		var re, im float64
		switch s.Kind {
		case "sine":
			// Lanes of one sample share a phase.
			ph := step * float64(i/dt.Dimension)
			re, im = s.Amplitude*math.Cos(ph), s.Amplitude*math.Sin(ph)
			if !s.Complex {
				re, im = im, 0
			}
		case "noise":
			re = (rng.Float64()*2 - 1) * s.Amplitude
			if s.Complex {
				im = (rng.Float64()*2 - 1) * s.Amplitude
			}
		case "ramp":
			re = float64(i) * s.Amplitude
			if s.Complex {
				im = -re
			}
		case "impulse":
			if i < dt.Dimension {
				re = s.Amplitude
			}
		case "dc":
			re = s.Amplitude
		default:
			return nil, fmt.Errorf("unknown signal kind %q", s.Kind)
		}

		if dt.Kind.IsInteger() {
			re, im = math.Round(re), math.Round(im)
		}
		if dt.Kind.IsInteger() && !dt.Kind.IsSigned() {
			re, im = math.Abs(re), math.Abs(im)
		}
		if dt.Complex {
			out[i] = complex(re, im)
		} else {
			out[i] = re
		}
	}
	return out, nil
}
