package configs

import "github.com/spf13/viper"

// SetDefaults seeds viper with the stock deployment parameters. The radar
// constants match the reference 1024-sample FMCW front end; detection
// constants are sensor amplitude calibration and carry no runtime
// derivation.
func SetDefaults() {
	// Application defaults
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_level", "info")

	// Radar geometry and physics
	viper.SetDefault("radar.n", 1024)
	viper.SetDefault("radar.log_n", 10)
	viper.SetDefault("radar.sample_freq", 32768.0)
	viper.SetDefault("radar.speed_of_light", 3.0e8)
	viper.SetDefault("radar.chirp_slope", 4.8e12)

	// Transform strategy
	viper.SetDefault("transform.strategy", StrategySoftware)
	viper.SetDefault("transform.fractional_bits", 42)
	viper.SetDefault("transform.device_path", "/dev/fft.0")

	// Detection calibration
	viper.SetDefault("detection.power_scale", 100.0)
	viper.SetDefault("detection.threshold", 1e-10*8192*8192)
}
