package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"roadtrace/internal/config"
	"roadtrace/internal/elevation"
	"roadtrace/internal/logger"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string `short:"c" long:"config" env:"ROADTRACE_CONFIG" description:"Path to configuration file (default roadtrace.yaml, optional)"`
	Pan         string `long:"pan" choice:"shift-hold" choice:"native-drag" description:"How the map pans while drawing"`
	Out         string `short:"o" long:"out" env:"ROADTRACE_OUT" description:"Directory for saved roads"`
	NoElevation bool   `long:"no-elevation" description:"Skip elevation lookups"`
}

var opts Options

func main() {
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.ShortDescription = "Trace roads on a terminal map and measure them"
	if _, err := parser.AddCommand("draw", "Draw roads interactively",
		"Open the terminal map, optionally over a base layer, and trace roads with the mouse.", &drawCommand{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to register command")
	}
	if _, err := parser.AddCommand("measure", "Measure a road from a file",
		"Compute road metrics and elevation for the first line in a GeoJSON, WKT, KML or CSV file.", &measureCommand{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to register command")
	}

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) {
			if flagsErr.Type == flags.ErrHelp {
				fmt.Fprintln(os.Stdout, flagsErr.Message)
				os.Exit(0)
			}
			fmt.Fprintln(os.Stderr, flagsErr.Message)
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("Command failed")
	}
}

// setup configures logging and loads the configuration with flag overrides.
// defaultLogFile is used when --log-file is unset; empty keeps stderr.
func setup(defaultLogFile string) (*config.Config, io.Closer, error) {
	if opts.Logger.File == "" {
		opts.Logger.File = defaultLogFile
	}
	closer, err := opts.Logger.Setup()
	if err != nil {
		return nil, nil, err
	}

	path, optional := opts.ConfigFile, false
	if path == "" {
		path, optional = config.DefaultPath, true
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		closer.Close()
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	applyFlags(cfg, &opts)
	if err := cfg.Validate(); err != nil {
		closer.Close()
		return nil, nil, err
	}
	log.Debug().Str("config", path).Str("pan_trigger", cfg.Drawing.PanTrigger).
		Bool("elevation", cfg.Elevation.Enabled).Str("store", cfg.Store.Dir).Msg("Configuration loaded")
	return cfg, closer, nil
}

func applyFlags(cfg *config.Config, o *Options) {
	if o.Pan != "" {
		cfg.Drawing.PanTrigger = o.Pan
	}
	if o.Out != "" {
		cfg.Store.Dir = o.Out
	}
	if o.NoElevation {
		cfg.Elevation.Enabled = false
	}
}

// newAggregator wires the HTTP provider behind the cache, or returns an
// aggregator that always yields the zero profile when lookups are off.
func newAggregator(cfg config.Elevation) *elevation.Aggregator {
	if !cfg.Enabled {
		return elevation.NewAggregator(nil)
	}
	var p elevation.Provider = elevation.NewClient(cfg.URL, cfg.RequestsPerSec)
	if cfg.CacheTTL > 0 {
		p = elevation.NewCachedProvider(p, cfg.CacheTTL)
	}
	return elevation.NewAggregator(p,
		elevation.WithSampleEvery(cfg.SampleEvery),
		elevation.WithTimeout(cfg.Timeout),
	)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
