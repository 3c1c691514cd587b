package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerev/internal/config"
	"github.com/lox/pokerev/internal/progress"
	"github.com/lox/pokerev/internal/uth"
	"github.com/lox/pokerev/poker"
)

// RunFlags are the simulation overrides shared by ev and chart.
type RunFlags struct {
	Iterations int      `short:"n" default:"-1" help:"Monte Carlo deals, 0 for exhaustive enumeration (default: config file)"`
	Seed       int64    `help:"Random seed (default: config file)"`
	Workers    int      `short:"w" help:"Worker goroutines (default: config, then CPU count)"`
	Lines      []string `help:"Lines to evaluate: maxbet, flop, river"`
	TUI        bool     `help:"Show an interactive progress bar"`
	Quiet      bool     `short:"q" help:"Hide progress"`
}

// simulatorConfig merges the config file with command-line overrides.
func (f *RunFlags) simulatorConfig(cfg *config.Config, logger *log.Logger) (uth.Config, error) {
	if len(f.Lines) > 0 {
		cfg.Simulation.Lines = f.Lines
	}
	simCfg, err := cfg.SimulatorConfig()
	if err != nil {
		return uth.Config{}, err
	}
	if f.Iterations >= 0 {
		simCfg.Iterations = f.Iterations
	}
	if f.Seed != 0 {
		simCfg.Seed = f.Seed
	}
	if f.Workers > 0 {
		simCfg.Workers = f.Workers
	}
	simCfg.Logger = logger
	return simCfg, nil
}

// progressSink receives labelled progress snapshots.
type progressSink interface {
	Update(label string, p uth.Progress)
}

// startProgress picks the progress display. The returned function tears it down.
func (f *RunFlags) startProgress(title string, out io.Writer, cancel func()) (progressSink, func()) {
	switch {
	case f.Quiet:
		return nil, func() {}
	case f.TUI:
		bar := progress.Start(title, out, cancel)
		return bar, func() { _ = bar.Finish() }
	default:
		return progress.NewReporter(out), func() {}
	}
}

// EVCmd computes line EVs for one hand
type EVCmd struct {
	RunFlags

	Hole  string `arg:"" help:"Two hole cards, e.g. 'AsKd'"`
	Board string `arg:"" optional:"" help:"Known board cards in deal order, e.g. 'Qh Jh 2c'"`
}

func (c *EVCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	sc, err := uth.ParseScenario(c.Hole, c.Board)
	if err != nil {
		return err
	}

	simCfg, err := c.simulatorConfig(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	sink, stop := c.startProgress("pokerev ev", os.Stderr, cancel)
	if sink != nil {
		label := sc.String()
		simCfg.Progress = func(p uth.Progress) { sink.Update(label, p) }
	}

	sim, err := uth.New(simCfg)
	if err != nil {
		stop()
		return err
	}
	res, err := sim.Run(ctx, sc)
	stop()
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	return printResult(os.Stdout, res)
}

func printResult(out io.Writer, res *uth.Result) error {
	mode := "exhaustive"
	if !res.Exhaustive {
		mode = "monte carlo"
	}
	fmt.Fprintf(out, "%s %s  %s\n\n", headerStyle.Render("Hand:"), handStyle.Render(res.Scenario.String()),
		dimStyle.Render(fmt.Sprintf("(%s, %s)", mode, res.Elapsed.Round(time.Millisecond))))

	best := res.Best()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := []string{"Line", "EV", "95% CI", "Win", "Loss", "Push", "Fold", "No qualify"}
	for i, h := range header {
		header[i] = headerStyle.Render(h)
	}
	fmt.Fprintln(w, strings.Join(header, "\t")+"\t")

	for _, lr := range res.Lines {
		s := &lr.Stats
		ci := "exact"
		if !res.Exhaustive {
			lo, hi := s.ConfidenceInterval95()
			ci = fmt.Sprintf("[%+.4f, %+.4f]", lo, hi)
		}
		name := lr.Line.Name
		if lr.Line.Name == best.Line.Name {
			name = winStyle.Render(name + " *")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f%%\t%.2f%%\t%.2f%%\t%.2f%%\t%.2f%%\t\n",
			name, signed("%+.4f", lr.EV()), ci,
			100*s.Rate(s.Wins), 100*s.Rate(s.Losses), 100*s.Rate(s.Pushes), 100*s.Rate(s.Folds),
			100*s.Rate(s.DealerNotQualified))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return printBonuses(out, best)
}

// printBonuses lists how often the best line was paid on the blind.
func printBonuses(out io.Writer, lr uth.LineResult) error {
	s := &lr.Stats
	var rows []string
	if s.Royals() > 0 {
		rows = append(rows, fmt.Sprintf("%s\t%.4f%%\t", categoryStyle.Render("Royal Flush"), 100*s.Rate(s.Royals())))
	}
	for _, ht := range []poker.HandType{poker.StraightFlush, poker.FourOfAKind, poker.FullHouse, poker.Flush, poker.Straight} {
		if v := s.BlindBonuses[ht]; v > 0 {
			rows = append(rows, fmt.Sprintf("%s\t%.4f%%\t", categoryStyle.Render(ht.String()), 100*s.Rate(v)))
		}
	}
	if len(rows) == 0 {
		return nil
	}

	fmt.Fprintf(out, "\n%s %s\n", headerStyle.Render("Blind bonuses for"), lr.Line.Name)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintln(w, r)
	}
	return w.Flush()
}
