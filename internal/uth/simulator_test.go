package uth

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerev/combo"
	"github.com/lox/pokerev/poker"
)

func newTestSimulator(t *testing.T, cfg Config) *Simulator {
	t.Helper()
	if cfg.Rules == (Rules{}) {
		cfg.Rules = DefaultRules()
	}
	if cfg.Workers == 0 {
		cfg.Workers = 4
	}
	sim, err := New(cfg)
	require.NoError(t, err)
	return sim
}

func mustScenario(t *testing.T, hole, board string) Scenario {
	t.Helper()
	sc, err := ParseScenario(hole, board)
	require.NoError(t, err)
	return sc
}

func lineResult(t *testing.T, res *Result, name string) LineResult {
	t.Helper()
	for _, lr := range res.Lines {
		if lr.Line.Name == name {
			return lr
		}
	}
	t.Fatalf("line %s missing from result", name)
	return LineResult{}
}

// qualifiedDealers counts dealer holdings that make a pair or better on a
// complete board.
func qualifiedDealers(sc Scenario) (qualified, total int) {
	e := poker.NewEvaluator()
	board := sc.Known()
	space := combo.Space{Structural: poker.DeadzoneMask, Used: uint64(sc.Hole | board)}
	for d := range space.All(2) {
		total++
		if DealerQualifies(e.Evaluate(poker.Hand(d) | board)) {
			qualified++
		}
	}
	return qualified, total
}

func TestRunRoyalFlushOnRiver(t *testing.T) {
	t.Parallel()
	sc := mustScenario(t, "As Ks", "Qs 2d 3c Js Ts")
	q, total := qualifiedDealers(sc)
	require.Equal(t, 990, total)

	res, err := newTestSimulator(t, Config{}).Run(context.Background(), sc)
	require.NoError(t, err)
	assert.True(t, res.Exhaustive)

	qRate := float64(q) / 990
	maxbet := lineResult(t, res, "maxbet")
	assert.Equal(t, 990, maxbet.Stats.Hands)
	assert.Equal(t, 990.0, maxbet.Stats.Wins)
	assert.Equal(t, 990.0, maxbet.Stats.Royals())
	assert.Equal(t, float64(total-q), maxbet.Stats.DealerNotQualified)
	assert.InDelta(t, 4+500+qRate, maxbet.EV(), 1e-9)

	// Ace-king with Qs 2d 3c is no pair on the flop, so both checking
	// lines bet once on the river.
	assert.InDelta(t, 1+500+qRate, lineResult(t, res, "flop").EV(), 1e-9)
	assert.InDelta(t, 1+500+qRate, lineResult(t, res, "river").EV(), 1e-9)
	assert.Equal(t, "maxbet", res.Best().Line.Name)
}

func TestRunRoyalFlushOnFlop(t *testing.T) {
	t.Parallel()
	sc := mustScenario(t, "As Ks", "Qs Js Ts 2d 3c")
	q, _ := qualifiedDealers(sc)

	res, err := newTestSimulator(t, Config{}).Run(context.Background(), sc)
	require.NoError(t, err)

	qRate := float64(q) / 990
	assert.InDelta(t, 4+500+qRate, lineResult(t, res, "maxbet").EV(), 1e-9)
	assert.InDelta(t, 2+500+qRate, lineResult(t, res, "flop").EV(), 1e-9)
	assert.InDelta(t, 1+500+qRate, lineResult(t, res, "river").EV(), 1e-9)
}

func TestRunBoardPlays(t *testing.T) {
	t.Parallel()
	sc := mustScenario(t, "2c 3d", "As Ks Qs Js Ts")
	res, err := newTestSimulator(t, Config{}).Run(context.Background(), sc)
	require.NoError(t, err)

	for _, lr := range res.Lines {
		assert.Equal(t, 990.0, lr.Stats.Pushes, lr.Line.Name)
		assert.Equal(t, 0.0, lr.EV(), lr.Line.Name)
	}
}

func TestRunFoldsWithoutPair(t *testing.T) {
	t.Parallel()
	sc := mustScenario(t, "7c 2d", "Ah Kh 9s 4s 3d")
	res, err := newTestSimulator(t, Config{}).Run(context.Background(), sc)
	require.NoError(t, err)

	for _, name := range []string{"flop", "river"} {
		lr := lineResult(t, res, name)
		assert.Equal(t, 990.0, lr.Stats.Folds, name)
		assert.Equal(t, -2.0, lr.EV(), name)
	}
	assert.Less(t, lineResult(t, res, "maxbet").EV(), -2.0)
}

func TestMonteCarloMatchesExhaustive(t *testing.T) {
	t.Parallel()
	sc := mustScenario(t, "Ah Qd", "Kh 7h 2c 9s")

	exact, err := newTestSimulator(t, Config{}).Run(context.Background(), sc)
	require.NoError(t, err)
	assert.Equal(t, 46*990, exact.Lines[0].Stats.Hands)

	sampled, err := newTestSimulator(t, Config{Iterations: 200_000, Seed: 1}).Run(context.Background(), sc)
	require.NoError(t, err)
	assert.False(t, sampled.Exhaustive)

	for i, lr := range sampled.Lines {
		want := exact.Lines[i].EV()
		assert.Equal(t, 200_000, lr.Stats.Hands)
		assert.InDelta(t, want, lr.EV(), 5*lr.Stats.StdError()+1e-9, lr.Line.Name)
	}
}

func TestMonteCarloIsDeterministic(t *testing.T) {
	t.Parallel()
	sc := mustScenario(t, "Td Tc", "")
	cfg := Config{Iterations: 20_000, Seed: 99, Workers: 3}

	a, err := newTestSimulator(t, cfg).Run(context.Background(), sc)
	require.NoError(t, err)
	b, err := newTestSimulator(t, cfg).Run(context.Background(), sc)
	require.NoError(t, err)

	for i := range a.Lines {
		assert.Equal(t, a.Lines[i].Stats, b.Lines[i].Stats)
	}
}

// TestExhaustiveFlopAveraging enumerates a two-card board, where the flop
// line's decision depends on which of the missing cards come on the flop.
func TestExhaustiveFlopAveraging(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large enumeration in short mode")
	}
	t.Parallel()
	sc := mustScenario(t, "Ah Qd", "Kh 7h")
	exact, err := newTestSimulator(t, Config{Lines: []Line{FlopBet}}).Run(context.Background(), sc)
	require.NoError(t, err)

	stats := exact.Lines[0].Stats
	assert.InEpsilon(t, float64(combo.Binomial(46, 3)*990), stats.Weight, 1e-9)
	require.NoError(t, stats.Validate())

	sampled, err := newTestSimulator(t, Config{Lines: []Line{FlopBet}, Iterations: 300_000, Seed: 5}).Run(context.Background(), sc)
	require.NoError(t, err)
	lr := sampled.Lines[0]
	assert.InDelta(t, stats.Mean(), lr.EV(), 5*lr.Stats.StdError())
}

func TestBetDistribution(t *testing.T) {
	t.Parallel()
	e := poker.NewEvaluator()
	sc := mustScenario(t, "7c 2d", "")
	completion := poker.MustParseHand("7s", "Kd", "9h", "4c", "3s")
	final := e.Evaluate(sc.Hole | completion)

	weights := func(dist []betWeight) map[float64]float64 {
		m := make(map[float64]float64)
		for _, bw := range dist {
			m[bw.bet] += bw.weight
		}
		return m
	}

	// Six of the ten flops contain the seven of spades.
	got := weights(betDistribution(e, FlopBet, sc, completion, final))
	require.Len(t, got, 2)
	assert.InDelta(t, 0.6, got[2], 1e-12)
	assert.InDelta(t, 0.4, got[1], 1e-12)

	assert.Equal(t, map[float64]float64{4: 1}, weights(betDistribution(e, MaxBet, sc, completion, final)))
	assert.Equal(t, map[float64]float64{1: 1}, weights(betDistribution(e, RiverBet, sc, completion, final)))

	// With the seven already on the flop every split bets twice.
	known := mustScenario(t, "7c 2d", "7s Kd")
	rest := poker.MustParseHand("9h", "4c", "3s")
	got = weights(betDistribution(e, FlopBet, known, rest, final))
	assert.Equal(t, map[float64]float64{2: 1}, got)
}

func TestRunInvalidScenario(t *testing.T) {
	t.Parallel()
	sim := newTestSimulator(t, Config{})

	_, err := sim.Run(context.Background(), Scenario{Hole: poker.MustParseHand("As")})
	assert.ErrorIs(t, err, ErrInvalidScenario)

	_, err = sim.Run(context.Background(), Scenario{
		Hole:  poker.MustParseHand("As", "Ks"),
		Board: []poker.Card{poker.ParseCard("As")},
	})
	assert.ErrorIs(t, err, ErrInvalidScenario)
}

func TestParseScenario(t *testing.T) {
	t.Parallel()
	sc, err := ParseScenario("AsKd", "Qh, Jh, 2c")
	require.NoError(t, err)
	assert.Equal(t, poker.MustParseHand("As", "Kd"), sc.Hole)
	assert.Equal(t, []poker.Card{poker.ParseCard("Qh"), poker.ParseCard("Jh"), poker.ParseCard("2c")}, sc.Board)
	assert.Equal(t, 2, sc.Missing())
	assert.Equal(t, "As Kd | Qh Jh 2c", sc.String())

	_, err = ParseScenario("AsAs", "")
	assert.ErrorIs(t, err, ErrInvalidScenario)

	_, err = ParseScenario("AsKs", "Qs Js Ts 2d 3c 4h")
	assert.ErrorIs(t, err, ErrInvalidScenario)

	_, err = ParseScenario("AsKs", "Ks")
	assert.ErrorIs(t, err, ErrInvalidScenario)

	_, err = ParseScenario("AsXx", "")
	assert.ErrorIs(t, err, poker.ErrInvalidCard)

	_, err = ParseScenario("As K", "")
	assert.ErrorIs(t, err, poker.ErrInvalidCard)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := newTestSimulator(t, Config{})
	_, err := sim.Run(ctx, mustScenario(t, "As Ks", ""))
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)

	_, err = newTestSimulator(t, Config{Iterations: 1_000_000}).Run(ctx, mustScenario(t, "As Ks", ""))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunReportsFinalProgress(t *testing.T) {
	t.Parallel()
	mClock := quartz.NewMock(t)

	var (
		mu      sync.Mutex
		reports []Progress
	)
	sim := newTestSimulator(t, Config{
		Clock:      mClock,
		Iterations: 5000,
		Progress: func(p Progress) {
			mu.Lock()
			defer mu.Unlock()
			reports = append(reports, p)
		},
	})

	res, err := sim.Run(context.Background(), mustScenario(t, "As Ks", "Qs"))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	// The mock clock never ticks, so only the final report arrives.
	require.Len(t, reports, 1)
	assert.Equal(t, Progress{Done: 5000, Total: 5000}, reports[0])
	assert.Equal(t, 1.0, reports[0].Fraction())
	assert.Zero(t, res.Elapsed)
}

func TestNewRejectsBadConfig(t *testing.T) {
	t.Parallel()
	_, err := New(Config{Rules: Rules{Ante: -1}})
	assert.Error(t, err)

	_, err = New(Config{Rules: DefaultRules(), Iterations: -5})
	assert.Error(t, err)

	sim, err := New(Config{Rules: DefaultRules()})
	require.NoError(t, err)
	assert.Equal(t, DefaultLines(), sim.Config().Lines)
	assert.Positive(t, sim.Config().Workers)
	require.NotNil(t, sim.Config().Logger)
	assert.NotNil(t, sim.Config().Clock)
}

func TestChart(t *testing.T) {
	t.Parallel()
	sim := newTestSimulator(t, Config{Iterations: 20_000, Seed: 3})
	hands := []poker.StartingHand{
		{High: poker.Ace, Low: poker.Ace},
		{High: poker.Seven, Low: poker.Two},
	}

	var seen []int
	chart, err := sim.Chart(context.Background(), hands, func(i int, _ ChartRow) {
		seen = append(seen, i)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, seen)
	require.Len(t, chart.Rows, 2)
	assert.Equal(t, 18, chart.Combos)

	aces := chart.Rows[0]
	assert.Equal(t, "AA", aces.Hand)
	assert.Equal(t, "maxbet", aces.Best)
	assert.Greater(t, aces.EV, 1.0)

	for _, row := range chart.Rows {
		best := -2.0
		for _, ev := range row.EVs {
			best = math.Max(best, ev)
		}
		assert.Equal(t, best, row.EV, row.Hand)
	}

	want := (6*chart.Rows[0].EV + 12*chart.Rows[1].EV) / 18
	assert.InDelta(t, want, chart.TotalEV, 1e-12)
}
