package tone

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// DominantFrequency pulls n samples from src and returns the frequency,
// in Hz, of the strongest component of their spectrum. The resolution
// is SampleRate/n. It returns 0 for a silent or constant signal.
func DominantFrequency(src *Source, n int) float64 {
	if n < 2 {
		return 0
	}
	x := make([]float64, n)
	mean := 0.0
	for i := range x {
		if v, ok := src.Next(); ok {
			x[i] = float64(v)
		}
		mean += x[i]
	}
	mean /= float64(n)
	for i := range x {
		x[i] -= mean
	}
	window.Apply(x, window.Hann)

	spectrum := fft.FFTReal(x)
	best, bestMag := 0, 1e-9
	// skip the DC bin
	for k := 1; k <= n/2; k++ {
		if m := cmplx.Abs(spectrum[k]); m > bestMag {
			best, bestMag = k, m
		}
	}
	return float64(best) * SampleRate / float64(n)
}
