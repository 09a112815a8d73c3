// Package app wires configuration, logging, the transform strategy, and
// the ranging engine into one application lifecycle.
package app

import (
	"fmt"

	"github.com/radarlab/fmcw-ranging/configs"
	"github.com/radarlab/fmcw-ranging/internal/ranging"
	"github.com/radarlab/fmcw-ranging/pkg/accel"
	"github.com/radarlab/fmcw-ranging/pkg/logging"
	"github.com/radarlab/fmcw-ranging/pkg/transform"
)

// Context holds the CLI arguments and runtime state shared by commands.
type Context struct {
	// CLI arguments
	ProfileFile  string
	Strategy     string // optional override of the configured strategy
	Verbose      bool
	Quiet        bool
	EnableTimers bool

	// Runtime context
	Logger logging.Logger
	Config *configs.Config
}

// App owns one configured measurement pipeline, including the accelerator
// device when the hardware strategy is selected.
type App struct {
	cfg    *configs.Config
	logger logging.Logger
	device *accel.Device
	timers *ranging.StageTimers
	engine *ranging.Engine
}

// NewApp loads configuration, applies the radar profile and strategy
// override, opens the accelerator if needed, and builds the engine.
func NewApp(ctx *Context) (*App, error) {
	logger := setupLogging(ctx)
	ctx.Logger = logger

	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	ctx.Config = cfg

	app := &App{cfg: cfg, logger: logger}
	if ctx.EnableTimers {
		app.timers = ranging.NewStageTimers()
	}

	transformer, err := app.buildTransformer()
	if err != nil {
		return nil, err
	}

	engine, err := ranging.NewEngine(&ranging.EngineConfig{
		Radar:       cfg.Radar,
		Detection:   cfg.Detection,
		Transformer: transformer,
		Logger:      logger,
		Timers:      app.timers,
	})
	if err != nil {
		app.Close()
		return nil, err
	}
	app.engine = engine

	logger.Debug("ranging application initialized", logging.Fields{
		"strategy":    cfg.Transform.Strategy,
		"n":           cfg.Radar.N,
		"sample_freq": cfg.Radar.SampleFreq,
	})
	return app, nil
}

// NewBenchApp builds an App with the deployment's radar geometry replaced
// by a fixed bench geometry, keeping the configured strategy and
// calibration. Used by the self test.
func NewBenchApp(ctx *Context, radar configs.RadarConfig) (*App, error) {
	logger := setupLogging(ctx)
	ctx.Logger = logger

	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Radar = radar
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx.Config = cfg

	app := &App{cfg: cfg, logger: logger}
	transformer, err := app.buildTransformer()
	if err != nil {
		return nil, err
	}

	engine, err := ranging.NewEngine(&ranging.EngineConfig{
		Radar:       cfg.Radar,
		Detection:   cfg.Detection,
		Transformer: transformer,
		Logger:      logger,
	})
	if err != nil {
		app.Close()
		return nil, err
	}
	app.engine = engine
	return app, nil
}

// Measure runs one measurement over samples (mutated in place).
func (a *App) Measure(samples []float64) (*ranging.Result, error) {
	return a.engine.Measure(samples)
}

// Config returns the effective configuration.
func (a *App) Config() *configs.Config { return a.cfg }

// Timers returns the stage timer set, or nil when timing is disabled.
func (a *App) Timers() *ranging.StageTimers { return a.timers }

// Close releases the accelerator device, if one was opened.
func (a *App) Close() error {
	if a.device == nil {
		return nil
	}
	err := a.device.Close()
	a.device = nil
	return err
}

func (a *App) buildTransformer() (transform.Transformer, error) {
	var obs transform.Observer
	if a.timers != nil {
		obs = a.timers
	}

	switch a.cfg.Transform.Strategy {
	case configs.StrategySoftware:
		return transform.NewSoftware(a.cfg.Radar.N, obs)
	case configs.StrategyHardware:
		dev, err := accel.Open(a.cfg.Transform.DevicePath, a.cfg.Radar.N, a.cfg.Radar.LogN)
		if err != nil {
			return nil, fmt.Errorf("failed to open fft accelerator: %w", err)
		}
		a.device = dev
		hw, err := transform.NewHardware(dev, a.cfg.Transform.FractionalBits, obs)
		if err != nil {
			dev.Close()
			a.device = nil
			return nil, err
		}
		return hw, nil
	default:
		return nil, fmt.Errorf("%w: got %q", configs.ErrStrategy, a.cfg.Transform.Strategy)
	}
}

func setupLogging(ctx *Context) logging.Logger {
	level := "info"
	if ctx.Config != nil && ctx.Config.LogLevel != "" {
		level = ctx.Config.LogLevel
	}
	if ctx.Verbose {
		level = "debug"
	}
	if ctx.Quiet {
		level = "error"
	}
	return logging.NewLogger(level)
}

func loadConfig(ctx *Context) (*configs.Config, error) {
	cfg, err := configs.Load()
	if err != nil {
		return nil, err
	}

	if ctx.ProfileFile != "" {
		profile, err := configs.LoadProfile(ctx.ProfileFile)
		if err != nil {
			return nil, err
		}
		cfg.Radar = profile.Radar
		ctx.Logger.Debug("radar profile applied", logging.Fields{
			"profile": profile.Name,
			"n":       profile.Radar.N,
		})
	}

	if ctx.Strategy != "" {
		cfg.Transform.Strategy = ctx.Strategy
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
