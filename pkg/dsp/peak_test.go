package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPeak(t *testing.T) {
	// Bins: 0 -> power 0, 1 -> 25/scale, 2 -> 169/scale, 3 -> 100/scale.
	buf := []float64{0, 0, 3, 4, 5, 12, 6, 8}
	peak, err := FindPeak(buf, 4, 100.0)
	require.NoError(t, err)
	assert.Equal(t, 2, peak.Index)
	assert.InDelta(t, 1.69, peak.Power, 1e-12)
}

func TestFindPeakTieBreaksLow(t *testing.T) {
	// Bins 1 and 3 carry identical power; strict > keeps the first.
	buf := []float64{0, 0, 3, 4, 1, 1, 4, 3}
	peak, err := FindPeak(buf, 4, 100.0)
	require.NoError(t, err)
	assert.Equal(t, 1, peak.Index)
}

func TestFindPeakAllZero(t *testing.T) {
	peak, err := FindPeak(make([]float64, 16), 8, 100.0)
	require.NoError(t, err)
	assert.Equal(t, 0, peak.Index)
	assert.Zero(t, peak.Power)
}

func TestFindPeakRejectsBadLength(t *testing.T) {
	_, err := FindPeak(make([]float64, 10), 4, 100.0)
	assert.ErrorIs(t, err, ErrBufferLength)

	_, err = FindPeak(nil, 0, 100.0)
	assert.ErrorIs(t, err, ErrBufferLength)
}

func TestDistanceMonotonic(t *testing.T) {
	const (
		n     = 1024
		fs    = 32768.0
		c     = 3e8
		alpha = 4.8e12
	)
	prev := Distance(0, n, fs, c, alpha)
	assert.Zero(t, prev)
	for i := 1; i < n; i++ {
		d := Distance(i, n, fs, c, alpha)
		require.Greater(t, d, prev, "bin %d", i)
		prev = d
	}
}

func TestDistanceFormula(t *testing.T) {
	// distance = index * (fs/n) * 0.5 * c / alpha
	got := Distance(3, 8, 1000, 3e8, 4.8e12)
	want := 3.0 * (1000.0 / 8.0) * 0.5 * 3e8 / 4.8e12
	assert.InDelta(t, want, got, 1e-15)
}
