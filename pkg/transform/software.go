package transform

import (
	"fmt"
	"time"

	"github.com/mjibson/go-dsp/fft"
)

// Software computes the forward transform with the go-dsp FFT routine.
// The routine is treated as a black box: it accepts samples in natural
// order and needs no bit-reversal preprocessing.
type Software struct {
	n       int
	obs     Observer
	scratch []complex128
}

// NewSoftware returns a software transform of length n. obs may be nil.
func NewSoftware(n int, obs Observer) (*Software, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrTransformLength, n)
	}
	return &Software{
		n:       n,
		obs:     obs,
		scratch: make([]complex128, n),
	}, nil
}

// Len returns the transform length.
func (s *Software) Len() int { return s.n }

// Transform converts buf to the frequency domain in place.
func (s *Software) Transform(buf []float64) error {
	if len(buf) != 2*s.n {
		return fmt.Errorf("%w: len=%d n=%d", ErrBufferLength, len(buf), s.n)
	}

	start := time.Now()
	for i := 0; i < s.n; i++ {
		s.scratch[i] = complex(buf[2*i], buf[2*i+1])
	}
	out := fft.FFT(s.scratch)
	for i, c := range out {
		buf[2*i] = real(c)
		buf[2*i+1] = imag(c)
	}
	observe(s.obs, StageTransform, start)
	return nil
}
