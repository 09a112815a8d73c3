//go:build linux

package accel

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// accessDesc is the request descriptor the driver expects:
// _IOW('f', 0, struct with length, log-length and region offset).
type accessDesc struct {
	Len    uint32
	LogLen uint32
	Offset uint64
}

const iocAccess = uintptr(0x40106600)

// Open opens the accelerator at path and maps a shared region large
// enough for one transform of n complex samples (2n words). The caller
// owns the returned Device and must Close it.
func Open(path string, n, logn int) (*Device, error) {
	if n <= 0 || logn < 0 || n != 1<<uint(logn) {
		return nil, fmt.Errorf("%w: n=%d logLen=%d", ErrGeometry, n, logn)
	}

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("open accelerator %s: %w", path, err)
	}

	size := 2 * n * 8
	raw, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("map accelerator region (%d bytes): %w", size, err)
	}

	return &Device{
		fd:    fd,
		raw:   raw,
		words: unsafe.Slice((*int64)(unsafe.Pointer(&raw[0])), 2*n),
		n:     n,
		logn:  logn,
		path:  path,
	}, nil
}

// Run issues one blocking transform request over the mapped region and
// returns once the accelerator has completed. Any driver failure is
// unrecoverable for the in-flight measurement: the region holds no
// defined state afterwards.
func (d *Device) Run() error {
	desc := accessDesc{Len: uint32(d.n), LogLen: uint32(d.logn)}
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), iocAccess,
		uintptr(unsafe.Pointer(&desc))); errno != 0 {
		return fmt.Errorf("accelerator request on %s: %w", d.path, errno)
	}
	return nil
}

// Close unmaps the shared region and closes the device.
func (d *Device) Close() error {
	var first error
	if d.raw != nil {
		if err := unix.Munmap(d.raw); err != nil {
			first = fmt.Errorf("unmap accelerator region: %w", err)
		}
		d.raw = nil
		d.words = nil
	}
	if d.fd > 0 {
		if err := unix.Close(d.fd); err != nil && first == nil {
			first = fmt.Errorf("close accelerator: %w", err)
		}
		d.fd = -1
	}
	return first
}
