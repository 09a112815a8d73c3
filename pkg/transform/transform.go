// Package transform provides the spectral transform stage of the ranging
// pipeline behind a single contract with two interchangeable strategies:
// a software FFT and a fixed-point hardware accelerator.
package transform

import (
	"errors"
	"time"
)

// Stage names reported to an Observer by the strategies.
const (
	StageBitReverse  = "bit_reverse"
	StageEncode      = "fixed_point_encode"
	StageAccelerator = "accelerator"
	StageDecode      = "fixed_point_decode"
	StageTransform   = "transform"
)

var (
	// ErrBufferLength indicates the buffer does not hold 2*Len() values.
	ErrBufferLength = errors.New("buffer length must be twice the transform length")
	// ErrTransformLength indicates an unusable transform length.
	ErrTransformLength = errors.New("transform length must be positive")
	// ErrDeviceGeometry indicates an accelerator whose word region or
	// log-length disagrees with its transform length.
	ErrDeviceGeometry = errors.New("accelerator geometry is inconsistent")
	// ErrFractionalBits indicates a fixed-point format outside (0, 63).
	ErrFractionalBits = errors.New("fractional bits must be between 1 and 62")
)

// Transformer computes a forward discrete Fourier transform in place over
// an interleaved (re, im) float64 buffer of length 2*Len(). The buffer is
// owned exclusively by the caller for the duration of the call and is left
// in the frequency domain on success; its contents are undefined on error.
type Transformer interface {
	Transform(buf []float64) error
	Len() int
}

// Observer receives wall-clock durations for the internal stages of a
// transform. Implementations must be purely observational: they may not
// alter control flow or results. A nil Observer is always accepted.
type Observer interface {
	ObserveStage(stage string, d time.Duration)
}

// AcceleratorDevice is the capability handed to the hardware strategy:
// a shared region of 2*Len() fixed-point words and one blocking request
// that transforms the region in place. Opened and owned elsewhere; the
// strategy only reads the geometry and issues requests.
type AcceleratorDevice interface {
	// Words exposes the hardware-visible region backing one transform.
	Words() []int64
	// Run issues the blocking transform request and returns once the
	// accelerator has completed or faulted.
	Run() error
	Len() int
	LogLen() int
}

func observe(obs Observer, stage string, start time.Time) {
	if obs != nil {
		obs.ObserveStage(stage, time.Since(start))
	}
}
