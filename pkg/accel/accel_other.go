//go:build !linux

package accel

// Open is unavailable off linux; the software transform strategy remains
// usable everywhere.
func Open(path string, n, logn int) (*Device, error) {
	return nil, ErrUnsupported
}

// Run always fails off linux.
func (d *Device) Run() error { return ErrUnsupported }

// Close is a no-op off linux.
func (d *Device) Close() error { return nil }
