package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the magnitudes of the first half of the FFT of data.
func PowerSpectrum(data []float64) []float64 {
	coeffs := fft.FFTReal(data)
	ps := make([]float64, len(coeffs)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}

	return ps
}

type Spectrum struct {
	Power []float64
	// Resolution is the width of one bin in Hz.
	Resolution float64
}

// Analyze removes the mean of series, zero-pads it to a power of two and
// returns its spectrum. dt is the sample spacing in seconds.
func Analyze(series []float64, dt float64) Spectrum {
	if len(series) < 2 || dt <= 0 {
		return Spectrum{}
	}

	n := 1
	for n < len(series) {
		n *= 2
	}

	mean := stat.Mean(series, nil)
	padded := make([]float64, n)
	for i, v := range series {
		padded[i] = v - mean
	}

	return Spectrum{
		Power:      PowerSpectrum(padded),
		Resolution: 1 / (float64(n) * dt),
	}
}

// Dominant returns the frequency and power of the strongest non-DC bin.
func (s Spectrum) Dominant() (float64, float64) {
	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(s.Power); i++ {
		if s.Power[i] > maxPower {
			maxPower = s.Power[i]
			maxIdx = i
		}
	}
	return float64(maxIdx) * s.Resolution, maxPower
}

// Band returns the lowest fraction of the spectrum, for plotting.
func (s Spectrum) Band(fraction float64) []float64 {
	n := int(float64(len(s.Power)) * fraction)
	if n < 1 {
		n = len(s.Power)
	}
	return s.Power[:n]
}
