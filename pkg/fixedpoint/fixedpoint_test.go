package fixedpoint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		value    float64
		fracBits uint
	}{
		{"zero", 0, 42},
		{"one", 1, 42},
		{"negative one", -1, 42},
		{"small fraction", 1.0 / 3.0, 42},
		{"negative fraction", -0.125, 42},
		{"radar scale sample", 8192.0, 42},
		{"tiny", 2.5e-11, 42},
		{"coarse format", 123.456, 8},
		{"fine format", -987.654321, 52},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := FromFloat64(tc.value, tc.fracBits)
			got := ToFloat64(w, tc.fracBits)
			tolerance := math.Ldexp(1, -int(tc.fracBits))
			assert.InDelta(t, tc.value, got, tolerance)
		})
	}
}

func TestRoundTripSweep(t *testing.T) {
	const fracBits = 42
	tolerance := math.Ldexp(1, -fracBits)
	for x := -100.0; x <= 100.0; x += 0.37 {
		got := ToFloat64(FromFloat64(x, fracBits), fracBits)
		if math.Abs(got-x) > tolerance {
			t.Fatalf("round trip of %v drifted to %v (tolerance %v)", x, got, tolerance)
		}
	}
}

func TestSaturation(t *testing.T) {
	// With 42 fractional bits anything at or beyond 2^21 overflows int64.
	assert.Equal(t, int64(math.MaxInt64), FromFloat64(3e6, 42))
	assert.Equal(t, int64(math.MinInt64), FromFloat64(-3e6, 42))
	assert.Equal(t, int64(math.MaxInt64), FromFloat64(math.Inf(1), 42))
	assert.Equal(t, int64(math.MinInt64), FromFloat64(math.Inf(-1), 42))
}

func TestNaNEncodesToZero(t *testing.T) {
	assert.Equal(t, int64(0), FromFloat64(math.NaN(), 42))
}

func TestTruncationTowardZero(t *testing.T) {
	// 0.75 with one fractional bit holds only halves: 0.75*2 = 1.5
	// truncates to word 1, decoding to 0.5.
	assert.Equal(t, 0.5, ToFloat64(FromFloat64(0.75, 1), 1))
	assert.Equal(t, -0.5, ToFloat64(FromFloat64(-0.75, 1), 1))
}
