package ranging

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stage names reported by the engine itself; the transform strategies
// report their own stages through the same timer set.
const (
	StagePeak  = "peak_search"
	StageTotal = "total"
)

// StageTimers accumulates wall-clock samples per named pipeline stage.
// Purely observational: reporting into it never alters control flow or
// results, and a nil *StageTimers accepts observations silently. Not
// safe for concurrent use; the pipeline itself is single-threaded.
type StageTimers struct {
	samples map[string][]float64 // seconds
}

// NewStageTimers returns an empty timer set.
func NewStageTimers() *StageTimers {
	return &StageTimers{samples: make(map[string][]float64)}
}

// ObserveStage records one duration for a stage. Implements the
// transform.Observer contract.
func (t *StageTimers) ObserveStage(stage string, d time.Duration) {
	if t == nil {
		return
	}
	t.samples[stage] = append(t.samples[stage], d.Seconds())
}

// Stages returns the names of all stages observed so far, sorted.
func (t *StageTimers) Stages() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.samples))
	for name := range t.samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StageStats summarizes the accumulated samples of one stage. All values
// are in seconds.
type StageStats struct {
	Count  int
	Total  float64
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P95    float64
}

// Stats computes summary statistics for a stage. The second return is
// false when the stage has no samples.
func (t *StageTimers) Stats(stage string) (StageStats, bool) {
	if t == nil {
		return StageStats{}, false
	}
	raw := t.samples[stage]
	if len(raw) == 0 {
		return StageStats{}, false
	}

	sorted := append([]float64(nil), raw...)
	sort.Float64s(sorted)

	stats := StageStats{
		Count: len(sorted),
		Total: floats.Sum(sorted),
		Mean:  stat.Mean(sorted, nil),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		P95:   stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		stats.StdDev = stat.StdDev(sorted, nil)
	}
	return stats, true
}
