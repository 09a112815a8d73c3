package transform

import (
	"fmt"
	"time"

	"github.com/radarlab/fmcw-ranging/pkg/dsp"
	"github.com/radarlab/fmcw-ranging/pkg/fixedpoint"
)

// Hardware computes the forward transform on a fixed-point FFT
// accelerator. The device consumes bit-reversed input, so each call
// bit-reverses the float buffer, encodes it into the shared word region,
// issues one blocking request, and decodes the region back in place.
//
// A failed request is fatal to the measurement: the buffer holds no
// defined state to retry from, so the error must propagate to the caller
// untouched.
type Hardware struct {
	dev      AcceleratorDevice
	fracBits uint
	obs      Observer
}

// NewHardware wraps an opened accelerator device. fracBits selects the
// fixed-point format used in the shared region. obs may be nil.
func NewHardware(dev AcceleratorDevice, fracBits uint, obs Observer) (*Hardware, error) {
	if dev == nil {
		return nil, fmt.Errorf("%w: nil device", ErrDeviceGeometry)
	}
	n := dev.Len()
	if n <= 0 || n != 1<<uint(dev.LogLen()) {
		return nil, fmt.Errorf("%w: len=%d log_len=%d", ErrDeviceGeometry, n, dev.LogLen())
	}
	if len(dev.Words()) != 2*n {
		return nil, fmt.Errorf("%w: words=%d len=%d", ErrDeviceGeometry, len(dev.Words()), n)
	}
	if fracBits == 0 || fracBits > 62 {
		return nil, fmt.Errorf("%w: got %d", ErrFractionalBits, fracBits)
	}
	return &Hardware{dev: dev, fracBits: fracBits, obs: obs}, nil
}

// Len returns the transform length.
func (h *Hardware) Len() int { return h.dev.Len() }

// Transform converts buf to the frequency domain in place via the
// accelerator.
func (h *Hardware) Transform(buf []float64) error {
	n := h.dev.Len()
	if len(buf) != 2*n {
		return fmt.Errorf("%w: len=%d n=%d", ErrBufferLength, len(buf), n)
	}

	// Bit-reversal stays in software; it is cheap next to the transform.
	start := time.Now()
	if err := dsp.BitReverse(buf, uint(n), uint(h.dev.LogLen())); err != nil {
		return fmt.Errorf("bit-reverse: %w", err)
	}
	observe(h.obs, StageBitReverse, start)

	words := h.dev.Words()
	start = time.Now()
	for i, v := range buf {
		words[i] = fixedpoint.FromFloat64(v, h.fracBits)
	}
	observe(h.obs, StageEncode, start)

	start = time.Now()
	if err := h.dev.Run(); err != nil {
		return fmt.Errorf("accelerator request: %w", err)
	}
	observe(h.obs, StageAccelerator, start)

	start = time.Now()
	for i := range buf {
		buf[i] = fixedpoint.ToFloat64(words[i], h.fracBits)
	}
	observe(h.obs, StageDecode, start)
	return nil
}
