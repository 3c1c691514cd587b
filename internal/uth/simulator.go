package uth

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerev/internal/logging"
	"github.com/lox/pokerev/internal/statistics"
	"github.com/lox/pokerev/poker"
)

// DefaultProgressInterval is how often progress is reported when no interval
// is configured.
const DefaultProgressInterval = 250 * time.Millisecond

// Progress is a snapshot of a running simulation. Done and Total count board
// completions in exhaustive mode and sampled deals in Monte Carlo mode.
type Progress struct {
	Done    uint64
	Total   uint64
	Elapsed time.Duration
}

// Fraction returns completion in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Done) / float64(p.Total)
}

// Config holds configuration for running simulations
type Config struct {
	Rules Rules
	Lines []Line
	// Iterations selects Monte Carlo sampling with that many deals. Zero
	// enumerates every board and dealer hand exactly.
	Iterations int
	Seed       int64
	Workers    int

	Logger           *log.Logger
	Clock            quartz.Clock
	ProgressInterval time.Duration
	// Progress, when set, is called from a single goroutine at every
	// interval and once more when the run ends.
	Progress func(Progress)
}

// LineResult is the payout distribution of one line.
type LineResult struct {
	Line  Line
	Stats statistics.Statistics
}

// EV returns the line's expected payout per hand in antes.
func (r LineResult) EV() float64 {
	return r.Stats.Mean()
}

// Result holds the outcome of a run.
type Result struct {
	Scenario   Scenario
	Exhaustive bool
	Lines      []LineResult
	Elapsed    time.Duration
}

// Best returns the line with the highest expected value.
func (r *Result) Best() LineResult {
	best := r.Lines[0]
	for _, lr := range r.Lines[1:] {
		if lr.EV() > best.EV() {
			best = lr
		}
	}
	return best
}

// Simulator runs expected value calculations for Ultimate Texas Hold'em
type Simulator struct {
	config Config
	eval   *poker.Evaluator
}

// New validates the configuration, fills in defaults and builds the
// evaluator shared by all workers.
func New(config Config) (*Simulator, error) {
	if err := config.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	if config.Iterations < 0 {
		return nil, fmt.Errorf("iterations must not be negative, got %d", config.Iterations)
	}
	if len(config.Lines) == 0 {
		config.Lines = DefaultLines()
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Logger == nil {
		config.Logger = logging.Discard()
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.ProgressInterval <= 0 {
		config.ProgressInterval = DefaultProgressInterval
	}
	return &Simulator{config: config, eval: poker.NewEvaluator()}, nil
}

// Config returns the effective configuration.
func (s *Simulator) Config() Config {
	return s.config
}

// Run computes the expected value of every configured line for the scenario.
// Cancelling ctx stops all workers and returns the context's error.
func (s *Simulator) Run(ctx context.Context, sc Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	exhaustive := s.config.Iterations == 0
	var total uint64
	if exhaustive {
		total = exhaustiveBoards(sc)
	} else {
		total = uint64(s.config.Iterations)
	}
	workers := int(min(uint64(s.config.Workers), max(total, 1)))

	logger := s.config.Logger.With("scenario", sc.String())
	logger.Info("Starting simulation", "exhaustive", exhaustive, "units", total, "workers", workers)

	start := s.config.Clock.Now()
	var done atomic.Uint64
	stopProgress := s.startProgress(&done, total, start)

	perWorker := make([][]statistics.Statistics, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		stats := make([]statistics.Statistics, len(s.config.Lines))
		perWorker[w] = stats

		g.Go(func() error {
			var err error
			if exhaustive {
				err = runExhaustiveWorker(gctx, s.eval, s.config.Rules, s.config.Lines, sc, w, workers, stats, &done)
			} else {
				n := s.config.Iterations / workers
				if w < s.config.Iterations%workers {
					n++
				}
				err = runMonteCarloWorker(gctx, s.eval, s.config.Rules, s.config.Lines, sc, s.config.Seed, w, n, stats, &done)
			}
			logger.Debug("Worker finished", "worker", w, "err", err)
			return err
		})
	}

	err := g.Wait()
	stopProgress()
	if err != nil {
		logger.Warn("Simulation stopped", "err", err)
		return nil, err
	}

	result := &Result{
		Scenario:   sc,
		Exhaustive: exhaustive,
		Lines:      make([]LineResult, len(s.config.Lines)),
		Elapsed:    s.config.Clock.Since(start),
	}
	for li, line := range s.config.Lines {
		lr := LineResult{Line: line}
		for _, stats := range perWorker {
			lr.Stats.Merge(&stats[li])
		}
		if err := lr.Stats.Validate(); err != nil {
			return nil, fmt.Errorf("line %s: statistics validation failed: %w", line.Name, err)
		}
		result.Lines[li] = lr
	}

	best := result.Best()
	logger.Info("Simulation finished", "elapsed", result.Elapsed, "best", best.Line.Name, "ev", best.EV())
	return result, nil
}

// startProgress reports progress on every tick until the returned function
// is called. That function sends the final report after the ticker goroutine
// has exited, so reports never overlap.
func (s *Simulator) startProgress(done *atomic.Uint64, total uint64, start time.Time) func() {
	if s.config.Progress == nil {
		return func() {}
	}

	report := func() {
		s.config.Progress(Progress{
			Done:    done.Load(),
			Total:   total,
			Elapsed: s.config.Clock.Since(start),
		})
	}

	ticker := s.config.Clock.NewTicker(s.config.ProgressInterval, "uth", "progress")
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ticker.C:
				report()
			case <-stop:
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(stop)
		wg.Wait()
		report()
	}
}
