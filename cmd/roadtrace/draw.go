package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"

	"roadtrace/internal/store"
	"roadtrace/internal/tui"
)

type drawCommand struct {
	Args struct {
		Layer string `positional-arg-name:"layer" description:"Base layer file to trace over"`
	} `positional-args:"yes"`
}

func (c *drawCommand) Execute(_ []string) error {
	// The terminal belongs to the map, so logs go to a file.
	cfg, closer, err := setup("roadtrace.log")
	if err != nil {
		return err
	}
	defer closer.Close()

	trigger, err := cfg.PanTrigger()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	roads := store.New(cfg.Store.Dir)
	m := tui.New(ctx, tui.Options{
		Trigger:   trigger,
		Params:    cfg.Metrics,
		Elevation: newAggregator(cfg.Elevation),
		Saver:     roads,
		Lister:    roads,
		View: orb.Bound{
			Min: orb.Point{cfg.View.MinLon, cfg.View.MinLat},
			Max: orb.Point{cfg.View.MaxLon, cfg.View.MaxLat},
		},
		Layer: c.Args.Layer,
	})

	log.Info().Str("layer", c.Args.Layer).Str("trigger", trigger.String()).Msg("Starting map")
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run map: %w", err)
	}
	if id := roads.LastID(); id != "" {
		fmt.Printf("last road saved as %s in %s\n", id, roads.Dir())
	}
	return nil
}
