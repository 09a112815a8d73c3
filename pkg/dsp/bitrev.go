// Package dsp holds the radar-ranging signal primitives: the bit-reversal
// permutation feeding the decimation-in-time transform, the spectral peak
// search, and the bin-to-distance mapping.
package dsp

import (
	"errors"
	"fmt"
	"math/bits"
)

var (
	// ErrTransformSize indicates the sample count is not the power of two
	// implied by its log-length.
	ErrTransformSize = errors.New("transform size must equal 1<<logSize")
	// ErrBufferLength indicates the interleaved buffer does not hold
	// exactly 2n values.
	ErrBufferLength = errors.New("interleaved buffer length must be twice the sample count")
)

// BitReverse reorders the n interleaved (re, im) pairs of buf so that the
// pair at index i lands at the logSize-wide bit reversal of i. Each swap is
// performed exactly once (only for i < reversed(i)), so applying the
// permutation twice restores the original order. Operates in place with no
// allocation.
//
// This is the preprocessing step for a decimation-in-time transform that
// consumes pre-reversed input; the software transform path does not need it.
func BitReverse(buf []float64, n, logSize uint) error {
	if n == 0 || logSize >= 32 || n != 1<<logSize {
		return fmt.Errorf("%w: n=%d logSize=%d", ErrTransformSize, n, logSize)
	}
	if uint(len(buf)) != 2*n {
		return fmt.Errorf("%w: len=%d n=%d", ErrBufferLength, len(buf), n)
	}

	shift := 32 - logSize
	for i := uint(0); i < n; i++ {
		r := uint(bits.Reverse32(uint32(i)) >> shift)
		if i < r {
			buf[2*i], buf[2*r] = buf[2*r], buf[2*i]
			buf[2*i+1], buf[2*r+1] = buf[2*r+1], buf[2*i+1]
		}
	}
	return nil
}
