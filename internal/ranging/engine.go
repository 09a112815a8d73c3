// Package ranging runs the FMCW distance measurement pipeline: spectral
// transform, peak search, threshold decision, and bin-to-distance mapping.
package ranging

import (
	"errors"
	"fmt"
	"time"

	"github.com/radarlab/fmcw-ranging/configs"
	"github.com/radarlab/fmcw-ranging/pkg/dsp"
	"github.com/radarlab/fmcw-ranging/pkg/logging"
	"github.com/radarlab/fmcw-ranging/pkg/transform"
)

var (
	// ErrTransformerMismatch indicates a transformer whose length
	// disagrees with the radar sample count.
	ErrTransformerMismatch = errors.New("transformer length must match radar sample count")
	// ErrSampleLength indicates a sample buffer that does not hold 2N
	// interleaved values.
	ErrSampleLength = errors.New("sample buffer length must be twice the radar sample count")
)

// Result is the outcome of one measurement. Distance is only meaningful
// when Detected is true; a below-threshold peak is a normal outcome, not
// an error.
type Result struct {
	Detected  bool
	Distance  float64 // meters
	PeakIndex int
	PeakPower float64
}

// EngineConfig wires up a measurement engine. Logger and Timers are
// optional.
type EngineConfig struct {
	Radar       configs.RadarConfig
	Detection   configs.DetectionConfig
	Transformer transform.Transformer
	Logger      logging.Logger
	Timers      *StageTimers
}

// Engine computes reflector distances from beat-signal sample buffers.
// Single-threaded and synchronous: each Measure call owns its buffer for
// the duration and leaves it transformed in place.
type Engine struct {
	radar       configs.RadarConfig
	detection   configs.DetectionConfig
	transformer transform.Transformer
	logger      logging.Logger
	timers      *StageTimers
}

// NewEngine validates the wiring and returns a ready engine.
func NewEngine(cfg *EngineConfig) (*Engine, error) {
	if err := cfg.Radar.Validate(); err != nil {
		return nil, err
	}
	if cfg.Transformer == nil || cfg.Transformer.Len() != cfg.Radar.N {
		got := 0
		if cfg.Transformer != nil {
			got = cfg.Transformer.Len()
		}
		return nil, fmt.Errorf("%w: transformer=%d radar=%d",
			ErrTransformerMismatch, got, cfg.Radar.N)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &Engine{
		radar:       cfg.Radar,
		detection:   cfg.Detection,
		transformer: cfg.Transformer,
		logger: logger.WithFields(logging.Fields{
			"component": "ranging_engine",
			"n":         cfg.Radar.N,
		}),
		timers: cfg.Timers,
	}, nil
}

// Measure transforms samples to the frequency domain in place, finds the
// strongest bin, and maps it to a distance. samples must hold 2N
// interleaved (re, im) values and is mutated as an observable side
// effect. A transform fault is unrecoverable for this buffer.
func (e *Engine) Measure(samples []float64) (*Result, error) {
	if len(samples) != 2*e.radar.N {
		return nil, fmt.Errorf("%w: len=%d n=%d", ErrSampleLength, len(samples), e.radar.N)
	}

	total := time.Now()
	if err := e.transformer.Transform(samples); err != nil {
		return nil, fmt.Errorf("spectral transform: %w", err)
	}

	start := time.Now()
	peak, err := dsp.FindPeak(samples, e.radar.N, e.detection.PowerScale)
	if err != nil {
		return nil, fmt.Errorf("peak search: %w", err)
	}
	e.timers.ObserveStage(StagePeak, time.Since(start))

	result := &Result{
		PeakIndex: peak.Index,
		PeakPower: peak.Power,
	}
	if peak.Power > e.detection.Threshold {
		result.Detected = true
		result.Distance = dsp.Distance(peak.Index, e.radar.N,
			e.radar.SampleFreq, e.radar.SpeedOfLight, e.radar.ChirpSlope)
	}
	e.timers.ObserveStage(StageTotal, time.Since(total))

	e.logger.Debug("measurement complete", logging.Fields{
		"peak_index": result.PeakIndex,
		"peak_power": result.PeakPower,
		"detected":   result.Detected,
		"distance_m": result.Distance,
	})
	return result, nil
}
