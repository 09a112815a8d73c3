package dsp

import "math"

// SyntheticTone returns a freshly allocated interleaved buffer holding n
// complex samples of a unit-rotation sinusoid centered exactly on the
// given frequency bin. A forward transform of the result concentrates all
// energy in that bin with magnitude n*amplitude, which makes it a handy
// known-answer input for self tests.
func SyntheticTone(n, bin int, amplitude float64) []float64 {
	buf := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		phase := 2 * math.Pi * float64(bin) * float64(i) / float64(n)
		buf[2*i] = amplitude * math.Cos(phase)
		buf[2*i+1] = amplitude * math.Sin(phase)
	}
	return buf
}
