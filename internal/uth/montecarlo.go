package uth

import (
	"context"
	"sync/atomic"

	"github.com/lox/pokerev/internal/randutil"
	"github.com/lox/pokerev/internal/statistics"
	"github.com/lox/pokerev/poker"
)

// progressBatch is how many sampled deals a worker completes between
// progress updates and cancellation checks.
const progressBatch = 1024

// runMonteCarloWorker samples n random deals from the worker's own stream.
// Missing board cards are dealt in order, so the first ones dealt complete
// the flop.
func runMonteCarloWorker(ctx context.Context, e *poker.Evaluator, rules Rules, lines []Line,
	sc Scenario, seed int64, worker, n int, stats []statistics.Statistics, done *atomic.Uint64) error {

	known := sc.Known()
	knownFlop := sc.knownFlop()
	deck := poker.NewDeck(randutil.Stream(seed, worker), sc.Hole|known)

	pending := 0
	for i := range n {
		if i%progressBatch == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			done.Add(uint64(pending))
			pending = 0
		}

		deck.Shuffle()
		board, flop := known, knownFlop
		for street := len(sc.Board); street < 5; street++ {
			c := deck.DealOne()
			board |= poker.Hand(c)
			if street < 3 {
				flop |= poker.Hand(c)
			}
		}
		dealerHole, _ := deck.Deal(2)

		player := e.Evaluate(sc.Hole | board)
		dealer := e.Evaluate(dealerHole | board)
		for li, line := range lines {
			stats[li].Add(rules.Settle(line.Bet(e, sc.Hole, flop, player), player, dealer))
		}
		pending++
	}
	done.Add(uint64(pending))
	return nil
}
