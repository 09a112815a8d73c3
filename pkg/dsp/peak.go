package dsp

import "fmt"

// Peak is the strongest frequency-domain bin of one transform output.
type Peak struct {
	Index int     // bin index in [0, n)
	Power float64 // scaled power spectral density at that bin
}

// FindPeak scans the n interleaved frequency-domain pairs of buf for the
// bin of maximum power, where power is (re^2 + im^2) / scale. The
// comparison is strictly greater, so ties resolve to the lowest index.
func FindPeak(buf []float64, n int, scale float64) (Peak, error) {
	if n <= 0 || len(buf) != 2*n {
		return Peak{}, fmt.Errorf("%w: len=%d n=%d", ErrBufferLength, len(buf), n)
	}

	var peak Peak
	for i := 0; i < n; i++ {
		re, im := buf[2*i], buf[2*i+1]
		psd := (re*re + im*im) / scale
		if psd > peak.Power {
			peak.Power = psd
			peak.Index = i
		}
	}
	return peak, nil
}

// Distance maps a frequency bin index to the range of the reflector in
// meters. The bin spacing sampleFreq/n is the beat-frequency resolution;
// halving accounts for the round trip, and the chirp slope converts beat
// frequency to distance.
func Distance(index, n int, sampleFreq, speedOfLight, chirpSlope float64) float64 {
	return float64(index) * (sampleFreq / float64(n)) * 0.5 * speedOfLight / chirpSlope
}
