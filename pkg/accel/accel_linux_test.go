//go:build linux

package accel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenRejectsBadGeometry(t *testing.T) {
	_, err := Open("/dev/fft.0", 12, 3)
	assert.ErrorIs(t, err, ErrGeometry)

	_, err = Open("/dev/fft.0", 0, 0)
	assert.ErrorIs(t, err, ErrGeometry)
}

func TestOpenMissingDevice(t *testing.T) {
	_, err := Open("/dev/does-not-exist.fft", 8, 3)
	assert.Error(t, err)
}
