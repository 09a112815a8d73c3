package app

import (
	"encoding/binary"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Sample file formats accepted by ReadSamples.
const (
	FormatBinary = "bin" // little-endian float32, interleaved (re, im)
	FormatCSV    = "csv" // one value per record, interleaved (re, im)
)

var (
	// ErrSampleFormat indicates an unknown sample file format.
	ErrSampleFormat = errors.New(`sample format must be "bin" or "csv"`)
	// ErrSampleFileLength indicates a sample file that does not hold
	// exactly 2N values.
	ErrSampleFileLength = errors.New("sample file must hold exactly 2N values")
)

// ReadSamples loads one measurement's worth of interleaved complex
// samples (2n float values) from path. Acquisition hardware writes
// float32; the pipeline computes in float64.
func ReadSamples(path, format string, n int) ([]float64, error) {
	switch format {
	case FormatBinary:
		return readBinarySamples(path, n)
	case FormatCSV:
		return readCSVSamples(path, n)
	default:
		return nil, fmt.Errorf("%w: got %q", ErrSampleFormat, format)
	}
}

func readBinarySamples(path string, n int) ([]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample file: %w", err)
	}
	if len(raw) != 2*n*4 {
		return nil, fmt.Errorf("%w: %d bytes for n=%d", ErrSampleFileLength, len(raw), n)
	}

	samples := make([]float64, 2*n)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(raw[4*i:])
		samples[i] = float64(math.Float32frombits(bits))
	}
	return samples, nil
}

func readCSVSamples(path string, n int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var samples []float64
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse sample file %s: %w", path, err)
	}
	for _, record := range records {
		for _, field := range record {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse sample %q: %w", field, err)
			}
			samples = append(samples, v)
		}
	}

	if len(samples) != 2*n {
		return nil, fmt.Errorf("%w: %d values for n=%d", ErrSampleFileLength, len(samples), n)
	}
	return samples, nil
}
