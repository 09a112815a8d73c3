// Package fixedpoint converts between float64 samples and the signed
// 64-bit fixed-point words consumed by the FFT accelerator. A word with
// b fractional bits represents x as round-toward-zero of x * 2^b.
package fixedpoint

import "math"

// FromFloat64 encodes x as a fixed-point word with fracBits fractional
// bits. Values outside the representable range saturate to the int64
// extremes rather than wrapping; NaN encodes to 0. fracBits must be
// below 63.
func FromFloat64(x float64, fracBits uint) int64 {
	scaled := x * float64(uint64(1)<<fracBits)
	switch {
	case math.IsNaN(scaled):
		return 0
	case scaled >= float64(math.MaxInt64):
		return math.MaxInt64
	case scaled <= float64(math.MinInt64):
		return math.MinInt64
	}
	return int64(scaled)
}

// ToFloat64 decodes a fixed-point word with fracBits fractional bits.
// The round trip ToFloat64(FromFloat64(x, b), b) is within 2^-b of x
// for in-range x.
func ToFloat64(w int64, fracBits uint) float64 {
	return float64(w) / float64(uint64(1)<<fracBits)
}
