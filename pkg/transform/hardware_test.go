package transform

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radarlab/fmcw-ranging/pkg/dsp"
	"github.com/radarlab/fmcw-ranging/pkg/fixedpoint"
)

// stageRecorder collects the order of observed stages.
type stageRecorder struct {
	stages []string
}

func (r *stageRecorder) ObserveStage(stage string, _ time.Duration) {
	r.stages = append(r.stages, stage)
}

// fakeAccelerator emulates the FFT device: it decodes the fixed-point
// region, runs an iterative decimation-in-time transform that consumes
// bit-reversed input, and encodes the result back.
type fakeAccelerator struct {
	n        int
	logn     int
	words    []int64
	fracBits uint
	runErr   error
	runs     int
}

func newFakeAccelerator(logn int, fracBits uint) *fakeAccelerator {
	n := 1 << uint(logn)
	return &fakeAccelerator{
		n:        n,
		logn:     logn,
		words:    make([]int64, 2*n),
		fracBits: fracBits,
	}
}

func (f *fakeAccelerator) Words() []int64 { return f.words }
func (f *fakeAccelerator) Len() int       { return f.n }
func (f *fakeAccelerator) LogLen() int    { return f.logn }

func (f *fakeAccelerator) Run() error {
	f.runs++
	if f.runErr != nil {
		return f.runErr
	}

	x := make([]complex128, f.n)
	for i := range x {
		x[i] = complex(
			fixedpoint.ToFloat64(f.words[2*i], f.fracBits),
			fixedpoint.ToFloat64(f.words[2*i+1], f.fracBits),
		)
	}

	// Cooley-Tukey butterflies over pre-reversed input, natural-order
	// output.
	for size := 2; size <= f.n; size *= 2 {
		half := size / 2
		step := f.n / size
		for base := 0; base < f.n; base += size {
			k := 0
			for j := base; j < base+half; j++ {
				w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(f.n)))
				t := x[j+half] * w
				x[j+half] = x[j] - t
				x[j] = x[j] + t
				k += step
			}
		}
	}

	for i, c := range x {
		f.words[2*i] = fixedpoint.FromFloat64(real(c), f.fracBits)
		f.words[2*i+1] = fixedpoint.FromFloat64(imag(c), f.fracBits)
	}
	return nil
}

func TestNewHardwareValidation(t *testing.T) {
	dev := newFakeAccelerator(3, 42)

	_, err := NewHardware(nil, 42, nil)
	assert.ErrorIs(t, err, ErrDeviceGeometry)

	_, err = NewHardware(dev, 0, nil)
	assert.ErrorIs(t, err, ErrFractionalBits)

	_, err = NewHardware(dev, 63, nil)
	assert.ErrorIs(t, err, ErrFractionalBits)

	short := newFakeAccelerator(3, 42)
	short.words = short.words[:4]
	_, err = NewHardware(short, 42, nil)
	assert.ErrorIs(t, err, ErrDeviceGeometry)

	crooked := newFakeAccelerator(3, 42)
	crooked.logn = 4
	_, err = NewHardware(crooked, 42, nil)
	assert.ErrorIs(t, err, ErrDeviceGeometry)

	_, err = NewHardware(dev, 42, nil)
	assert.NoError(t, err)
}

func TestHardwareMatchesSoftware(t *testing.T) {
	const (
		logn     = 6
		n        = 1 << logn
		fracBits = 42
	)

	rng := rand.New(rand.NewSource(7))
	input := make([]float64, 2*n)
	for i := range input {
		input[i] = rng.NormFloat64()
	}

	swBuf := append([]float64(nil), input...)
	hwBuf := append([]float64(nil), input...)

	sw, err := NewSoftware(n, nil)
	require.NoError(t, err)
	require.NoError(t, sw.Transform(swBuf))

	hw, err := NewHardware(newFakeAccelerator(logn, fracBits), fracBits, nil)
	require.NoError(t, err)
	require.NoError(t, hw.Transform(hwBuf))

	swPeak, err := dsp.FindPeak(swBuf, n, 100.0)
	require.NoError(t, err)
	hwPeak, err := dsp.FindPeak(hwBuf, n, 100.0)
	require.NoError(t, err)

	assert.Equal(t, swPeak.Index, hwPeak.Index)
	for i := 0; i < n; i++ {
		swMag := math.Hypot(swBuf[2*i], swBuf[2*i+1])
		hwMag := math.Hypot(hwBuf[2*i], hwBuf[2*i+1])
		assert.InDelta(t, swMag, hwMag, 1e-6, "bin %d", i)
	}
}

func TestHardwareIssuesOneRequestPerCall(t *testing.T) {
	dev := newFakeAccelerator(4, 42)
	hw, err := NewHardware(dev, 42, nil)
	require.NoError(t, err)

	buf := dsp.SyntheticTone(16, 2, 1.0)
	require.NoError(t, hw.Transform(buf))
	require.NoError(t, hw.Transform(buf))
	assert.Equal(t, 2, dev.runs)
}

func TestHardwareRequestFailureIsFatal(t *testing.T) {
	dev := newFakeAccelerator(4, 42)
	dev.runErr = errors.New("device fault")
	hw, err := NewHardware(dev, 42, nil)
	require.NoError(t, err)

	err = hw.Transform(make([]float64, 32))
	require.Error(t, err)
	assert.ErrorIs(t, err, dev.runErr)
}

func TestHardwareReportsSubStages(t *testing.T) {
	rec := &stageRecorder{}
	hw, err := NewHardware(newFakeAccelerator(3, 42), 42, rec)
	require.NoError(t, err)

	require.NoError(t, hw.Transform(make([]float64, 16)))
	assert.Equal(t,
		[]string{StageBitReverse, StageEncode, StageAccelerator, StageDecode},
		rec.stages)
}

func TestHardwareRejectsBadBuffer(t *testing.T) {
	hw, err := NewHardware(newFakeAccelerator(3, 42), 42, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, hw.Transform(make([]float64, 6)), ErrBufferLength)
}
