package testutil

import (
	"math"
	"math/rand"
)

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DeterministicComplex pairs two seeded noise sequences into complex samples.
func DeterministicComplex(seed int64, amplitude float64, length int) []complex128 {
	re := DeterministicNoise(seed, amplitude, length)
	im := DeterministicNoise(seed+1, amplitude, length)
	out := make([]complex128, length)
	for i := range out {
		out[i] = complex(re[i], im[i])
	}
	return out
}

// Phasors returns n points of radius r spaced evenly around the unit
// circle, starting at angle 0.
func Phasors(r float64, n int) []complex128 {
	out := make([]complex128, n)
	for i := range out {
		phi := 2 * math.Pi * float64(i) / float64(n)
		out[i] = complex(r*math.Cos(phi), r*math.Sin(phi))
	}
	return out
}
