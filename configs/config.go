package configs

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Transform strategy names accepted in configuration.
const (
	StrategySoftware = "software"
	StrategyHardware = "hardware"
)

var (
	// ErrSampleCount indicates a radar sample count that is not a power
	// of two matching its configured log-length.
	ErrSampleCount = errors.New("radar sample count must be a power of two matching log_n")
	// ErrRadarConstant indicates a non-positive sampling frequency,
	// speed of light, or chirp slope.
	ErrRadarConstant = errors.New("radar constants must be positive")
	// ErrStrategy indicates an unknown transform strategy.
	ErrStrategy = errors.New(`transform strategy must be "software" or "hardware"`)
	// ErrFractionalBits indicates a fixed-point format outside (0, 63).
	ErrFractionalBits = errors.New("transform fractional_bits must be between 1 and 62")
	// ErrDevicePath indicates a hardware strategy with no device path.
	ErrDevicePath = errors.New("hardware strategy requires transform device_path")
	// ErrDetection indicates a non-positive power scale or negative
	// detection threshold.
	ErrDetection = errors.New("detection constants are out of range")
)

// Config represents the application configuration.
type Config struct {
	// Application settings
	Verbose  bool   `mapstructure:"verbose"`
	LogLevel string `mapstructure:"log_level"`

	// Radar geometry and physics
	Radar RadarConfig `mapstructure:"radar"`

	// Spectral transform strategy
	Transform TransformConfig `mapstructure:"transform"`

	// Peak detection calibration
	Detection DetectionConfig `mapstructure:"detection"`
}

// RadarConfig holds the process-wide radar parameters. They are fixed for
// the lifetime of the process and define the mapping from frequency bin
// to distance; N must match the transform length.
type RadarConfig struct {
	// N is the complex sample count per measurement (a power of two).
	N int `mapstructure:"n" yaml:"n"`
	// LogN is log2(N); the accelerator driver wants it spelled out.
	LogN int `mapstructure:"log_n" yaml:"log_n"`
	// SampleFreq is the beat-signal sampling frequency in Hz.
	SampleFreq float64 `mapstructure:"sample_freq" yaml:"sample_freq"`
	// SpeedOfLight in m/s.
	SpeedOfLight float64 `mapstructure:"speed_of_light" yaml:"speed_of_light"`
	// ChirpSlope is the FMCW chirp slope alpha in Hz/s.
	ChirpSlope float64 `mapstructure:"chirp_slope" yaml:"chirp_slope"`
}

// TransformConfig selects and parameterizes the spectral transform.
type TransformConfig struct {
	Strategy string `mapstructure:"strategy"`
	// FractionalBits is the fixed-point format of the accelerator words.
	FractionalBits uint `mapstructure:"fractional_bits"`
	// DevicePath is the accelerator character device (hardware only).
	DevicePath string `mapstructure:"device_path"`
}

// DetectionConfig carries the sensor calibration constants of the peak
// search. Both values are tied to the sensor's amplitude scale and are
// preserved as-is, never derived at runtime.
type DetectionConfig struct {
	// PowerScale divides every bin's squared magnitude.
	PowerScale float64 `mapstructure:"power_scale"`
	// Threshold is the minimum scaled power density (strictly greater)
	// for a peak to count as a detection.
	Threshold float64 `mapstructure:"threshold"`
}

// Load unmarshals the current viper state into a validated Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the full configuration.
func (c *Config) Validate() error {
	if err := c.Radar.Validate(); err != nil {
		return err
	}
	switch c.Transform.Strategy {
	case StrategySoftware:
	case StrategyHardware:
		if c.Transform.DevicePath == "" {
			return ErrDevicePath
		}
	default:
		return fmt.Errorf("%w: got %q", ErrStrategy, c.Transform.Strategy)
	}
	if c.Transform.FractionalBits == 0 || c.Transform.FractionalBits > 62 {
		return fmt.Errorf("%w: got %d", ErrFractionalBits, c.Transform.FractionalBits)
	}
	if c.Detection.PowerScale <= 0 || c.Detection.Threshold < 0 {
		return fmt.Errorf("%w: power_scale=%v threshold=%v",
			ErrDetection, c.Detection.PowerScale, c.Detection.Threshold)
	}
	return nil
}

// Validate checks the radar geometry and physical constants.
func (r *RadarConfig) Validate() error {
	if r.N <= 0 || r.LogN < 0 || r.LogN > 30 || r.N != 1<<uint(r.LogN) {
		return fmt.Errorf("%w: n=%d log_n=%d", ErrSampleCount, r.N, r.LogN)
	}
	if r.SampleFreq <= 0 || r.SpeedOfLight <= 0 || r.ChirpSlope <= 0 {
		return fmt.Errorf("%w: sample_freq=%v speed_of_light=%v chirp_slope=%v",
			ErrRadarConstant, r.SampleFreq, r.SpeedOfLight, r.ChirpSlope)
	}
	return nil
}

// Profile is a standalone radar profile file: one deployment's geometry
// and physics, kept separate from the application config so bench setups
// can swap antenna front ends without touching the main config.
type Profile struct {
	Name  string      `yaml:"name"`
	Radar RadarConfig `yaml:"radar"`
}

// LoadProfile reads and validates a radar profile YAML file.
func LoadProfile(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read radar profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to parse radar profile %s: %w", path, err)
	}
	if err := p.Radar.Validate(); err != nil {
		return nil, fmt.Errorf("radar profile %s: %w", path, err)
	}
	return &p, nil
}
