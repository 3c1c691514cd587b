package uth

import (
	"context"
	"sync/atomic"

	"github.com/lox/pokerev/combo"
	"github.com/lox/pokerev/internal/statistics"
	"github.com/lox/pokerev/poker"
)

// betWeight is one play bet and the share of deal orders that lead to it.
type betWeight struct {
	bet    float64
	weight float64
}

// betDistribution returns the bets a line makes on a complete board. For
// lines that decide on the flop while some flop cards are unknown, every way
// of splitting the unknown cards into flop and turn/river is equally likely,
// so the result lists each distinct bet with its share of those splits.
func betDistribution(e *poker.Evaluator, line Line, sc Scenario, completion poker.Hand, final poker.HandRank) []betWeight {
	flop := sc.knownFlop()
	need := 3 - flop.CountCards()
	if !line.UsesFlop() || need == 0 {
		return []betWeight{{bet: line.Bet(e, sc.Hole, flop, final), weight: 1}}
	}

	splits := float64(combo.Binomial(completion.CountCards(), need))
	dist := make([]betWeight, 0, 3)
	for sub := range combo.Subsets(uint64(completion), need) {
		bet := line.Bet(e, sc.Hole, flop|poker.Hand(sub), final)
		dist = addWeight(dist, bet, 1/splits)
	}
	return dist
}

func addWeight(dist []betWeight, bet, w float64) []betWeight {
	for i := range dist {
		if dist[i].bet == bet {
			dist[i].weight += w
			return dist
		}
	}
	return append(dist, betWeight{bet: bet, weight: w})
}

// exhaustiveBoards returns the number of board completions of a scenario.
func exhaustiveBoards(sc Scenario) uint64 {
	used := sc.Hole | sc.Known()
	return combo.Space{Structural: poker.DeadzoneMask, Used: uint64(used)}.Count(sc.Missing())
}

// runExhaustiveWorker settles every dealer hand on every board completion
// assigned to this worker. Boards are striped across workers by position in
// the enumeration.
func runExhaustiveWorker(ctx context.Context, e *poker.Evaluator, rules Rules, lines []Line,
	sc Scenario, worker, workers int, stats []statistics.Statistics, done *atomic.Uint64) error {

	known := sc.Known()
	boards := combo.Space{Structural: poker.DeadzoneMask, Used: uint64(sc.Hole | known)}
	dists := make([][]betWeight, len(lines))

	i := -1
	for completion := range boards.All(sc.Missing()) {
		i++
		if i%workers != worker {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		board := known | poker.Hand(completion)
		player := e.Evaluate(sc.Hole | board)
		for li, line := range lines {
			dists[li] = betDistribution(e, line, sc, poker.Hand(completion), player)
		}

		dealers := combo.Space{Structural: poker.DeadzoneMask, Used: uint64(sc.Hole | board)}
		for d := range dealers.All(2) {
			dealer := e.Evaluate(poker.Hand(d) | board)
			for li := range lines {
				for _, bw := range dists[li] {
					stats[li].AddWeighted(rules.Settle(bw.bet, player, dealer), bw.weight)
				}
			}
		}
		done.Add(1)
	}
	return nil
}
