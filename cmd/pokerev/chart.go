package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/lox/pokerev/internal/fileutil"
	"github.com/lox/pokerev/internal/uth"
	"github.com/lox/pokerev/poker"
)

// ChartCmd builds the preflop strategy chart
type ChartCmd struct {
	RunFlags

	Hands  []string `arg:"" optional:"" help:"Starting hands to include, e.g. AA AKs T9o (default: all 169)"`
	Output string   `short:"o" type:"path" help:"Write the chart as JSON to this file"`
}

func (c *ChartCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	hands, err := c.startingHands()
	if err != nil {
		return err
	}

	simCfg, err := c.simulatorConfig(cfg, logger)
	if err != nil {
		return err
	}
	if simCfg.Iterations == 0 {
		logger.Warn("Exhaustive enumeration of every starting hand takes a long time; consider -n")
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	sink, stop := c.startProgress("pokerev chart", os.Stderr, cancel)
	current := ""
	if sink != nil {
		simCfg.Progress = func(p uth.Progress) { sink.Update(current, p) }
	}

	sim, err := uth.New(simCfg)
	if err != nil {
		stop()
		return err
	}

	// Progress reports for hand i arrive while it runs, so label it up front.
	current = labelFor(hands, 0)
	chart, err := sim.Chart(ctx, hands, func(i int, row uth.ChartRow) {
		logger.Debug("Hand finished", "hand", row.Hand, "best", row.Best, "ev", row.EV)
		current = labelFor(hands, i+1)
	})
	stop()
	if err != nil {
		return fmt.Errorf("chart failed: %w", err)
	}

	if err := printChart(os.Stdout, chart); err != nil {
		return err
	}

	if c.Output != "" {
		if err := fileutil.WriteJSONAtomic(c.Output, chart, 0o644); err != nil {
			return err
		}
		logger.Info("Wrote chart", "path", c.Output)
	}
	return nil
}

func labelFor(hands []poker.StartingHand, i int) string {
	if i >= len(hands) {
		return ""
	}
	return fmt.Sprintf("%s (%d/%d)", hands[i], i+1, len(hands))
}

func (c *ChartCmd) startingHands() ([]poker.StartingHand, error) {
	if len(c.Hands) == 0 {
		return poker.AllStartingHands(), nil
	}
	hands := make([]poker.StartingHand, len(c.Hands))
	for i, s := range c.Hands {
		sh, err := poker.ParseStartingHand(s)
		if err != nil {
			return nil, err
		}
		hands[i] = sh
	}
	return hands, nil
}

func printChart(out io.Writer, chart *uth.Chart) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", headerStyle.Render("Hand"), headerStyle.Render("Combos"),
		headerStyle.Render("Best"), headerStyle.Render("EV"))
	for _, row := range chart.Rows {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t\n", handStyle.Render(row.Hand), row.Combos, row.Best, signed("%+.4f", row.EV))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s %s over %d combinations\n", headerStyle.Render("Total EV:"), signed("%+.4f", chart.TotalEV), chart.Combos)
	return nil
}
