package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/radarlab/fmcw-ranging/internal/app"
	"github.com/radarlab/fmcw-ranging/pkg/dsp"
)

var (
	// Measure command flags
	measureInput     string
	measureFormat    string
	measureProfile   string
	measureStrategy  string
	measureSynthBin  int
	measureAmplitude float64
	measureTiming    bool
	measureRaw       bool
)

// measureCmd represents the measure command
var measureCmd = &cobra.Command{
	Use:   "measure [flags]",
	Short: "Compute the distance to the dominant reflector",
	Long: `Run one ranging measurement: load a beat-signal sample buffer,
transform it to the frequency domain with the configured strategy, and
report the distance of the strongest spectral peak.

Samples come from a file (--input) holding 2N interleaved (re, im)
values, or from a synthetic complex sinusoid (--synthetic-bin) for bench
checks without a front end.

Examples:
  # Measure from a capture file using the configured strategy
  fmcw-ranging measure --input sweep.bin

  # Force the hardware accelerator and print stage timings
  fmcw-ranging measure --input sweep.bin --strategy hardware --timing

  # Synthetic target at bin 3 against a bench radar profile
  fmcw-ranging measure --profile bench.yaml --synthetic-bin 3`,
	Args: func(cmd *cobra.Command, args []string) error {
		if measureInput == "" && measureSynthBin < 0 {
			return fmt.Errorf("requires --input or --synthetic-bin")
		}
		return nil
	},
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().StringVarP(&measureInput, "input", "i", "",
		"sample file holding 2N interleaved (re, im) values")
	measureCmd.Flags().StringVar(&measureFormat, "format", app.FormatBinary,
		"sample file format (bin, csv)")
	measureCmd.Flags().StringVar(&measureProfile, "profile", "",
		"radar profile YAML overriding the configured geometry")
	measureCmd.Flags().StringVar(&measureStrategy, "strategy", "",
		"transform strategy override (software, hardware)")
	measureCmd.Flags().IntVar(&measureSynthBin, "synthetic-bin", -1,
		"generate a synthetic tone at this frequency bin instead of reading a file")
	measureCmd.Flags().Float64Var(&measureAmplitude, "amplitude", 1.0,
		"amplitude of the synthetic tone")
	measureCmd.Flags().BoolVar(&measureTiming, "timing", false,
		"print per-stage wall-clock statistics")
	measureCmd.Flags().BoolVar(&measureRaw, "raw", false,
		"print the bare distance value; +Inf when nothing is detected")
}

func runMeasure(cmd *cobra.Command, args []string) error {
	ctx := &app.Context{
		ProfileFile:  measureProfile,
		Strategy:     measureStrategy,
		Verbose:      verbose,
		Quiet:        quiet,
		EnableTimers: measureTiming,
	}

	application, err := app.NewApp(ctx)
	if err != nil {
		return err
	}
	defer application.Close()

	cfg := application.Config()
	var samples []float64
	if measureInput != "" {
		samples, err = app.ReadSamples(measureInput, measureFormat, cfg.Radar.N)
		if err != nil {
			return err
		}
	} else {
		samples = dsp.SyntheticTone(cfg.Radar.N, measureSynthBin, measureAmplitude)
	}

	result, err := application.Measure(samples)
	if err != nil {
		return err
	}

	if measureRaw {
		// Legacy sentinel rendering for harnesses that expect a float.
		if result.Detected {
			fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", result.Distance)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%f\n", math.Inf(1))
		}
	} else if result.Detected {
		fmt.Fprintf(cmd.OutOrStdout(), "distance: %.3f m (bin %d, power density %.4E)\n",
			result.Distance, result.PeakIndex, result.PeakPower)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "no detection (max power density %.4E at bin %d)\n",
			result.PeakPower, result.PeakIndex)
	}

	if measureTiming {
		printTimings(cmd, application)
	}
	return nil
}

func printTimings(cmd *cobra.Command, application *app.App) {
	timers := application.Timers()
	if timers == nil {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%-20s %6s %12s %12s %12s\n",
		"stage", "count", "mean", "p95", "total")
	for _, stage := range timers.Stages() {
		stats, ok := timers.Stats(stage)
		if !ok {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %6d %12.6fs %12.6fs %12.6fs\n",
			stage, stats.Count, stats.Mean, stats.P95, stats.Total)
	}
}
