// Package accel opens and drives the FFT accelerator character device.
// The device exposes a contiguous memory region of 2N fixed-point words;
// one blocking ioctl request transforms the region in place.
package accel

import "errors"

var (
	// ErrUnsupported is returned by Open on platforms without the
	// accelerator driver.
	ErrUnsupported = errors.New("fft accelerator is only available on linux")
	// ErrGeometry indicates a transform length that is not the power of
	// two implied by its log-length.
	ErrGeometry = errors.New("transform length must equal 1<<logLen")
)

// Device is a handle on one opened accelerator: the file descriptor, the
// mapped word region, and the configured transform geometry. A Device
// serializes nothing; concurrent requests against the same region need
// external coordination.
type Device struct {
	fd    int
	raw   []byte
	words []int64
	n     int
	logn  int
	path  string
}

// Words exposes the hardware-visible region backing one transform.
func (d *Device) Words() []int64 { return d.words }

// Len returns the configured transform length.
func (d *Device) Len() int { return d.n }

// LogLen returns log2 of the configured transform length.
func (d *Device) LogLen() int { return d.logn }

// Path returns the device path the handle was opened from.
func (d *Device) Path() string { return d.path }
