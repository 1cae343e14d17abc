package model

import "math"

// LogSpace returns n frequencies logarithmically spaced between start and end
// (inclusive), the standard decade sweep for impedance spectra.
func LogSpace(start, end float64, n int) []float64 {
	if n < 2 {
		return []float64{start}
	}
	logStart := math.Log10(start)
	logEnd := math.Log10(end)
	step := (logEnd - logStart) / float64(n-1)

	freqs := make([]float64, n)
	for i := range freqs {
		freqs[i] = math.Pow(10, logStart+float64(i)*step)
	}
	return freqs
}
