package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"roadtrace/internal/draw"
	"roadtrace/internal/elevation"
	"roadtrace/internal/layer"
	"roadtrace/internal/metrics"
	"roadtrace/internal/store"
)

type measureCommand struct {
	Save bool `long:"save" description:"Also save the road to the store"`
	Args struct {
		File string `positional-arg-name:"file" description:"Layer file holding the road" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

func (c *measureCommand) Execute(_ []string) error {
	cfg, closer, err := setup("")
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := signalContext()
	defer cancel()

	var saver draw.Saver
	if c.Save {
		saver = store.New(cfg.Store.Dir)
	}
	return measure(ctx, os.Stdout, c.Args.File, cfg.Metrics, newAggregator(cfg.Elevation), saver)
}

// measure prints the RoadDraft JSON of the first line in path.
func measure(ctx context.Context, w io.Writer, path string, p metrics.Params, agg *elevation.Aggregator, saver draw.Saver) error {
	c, _, err := layer.Load(path)
	if err != nil {
		return err
	}
	vs, ok := layer.FirstLine(c)
	if !ok || len(vs) < 2 {
		return fmt.Errorf("%s: no line with at least two points", path)
	}

	d := draw.NewDraft(metrics.Compute(vs, p), agg.Aggregate(ctx, vs), vs)
	log.Info().Str("file", path).Int("vertices", len(vs)).Float64("length_m", d.LengthM).
		Uint("corners", d.CornerCount).Msg("Road measured")

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return err
	}
	if saver != nil {
		if err := saver.Save(ctx, d); err != nil {
			return fmt.Errorf("save road: %w", err)
		}
	}
	return nil
}
