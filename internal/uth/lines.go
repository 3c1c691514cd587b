package uth

import (
	"fmt"
	"strings"

	"github.com/lox/pokerev/poker"
)

// Line is a fixed betting strategy. The player raises Preflop times the ante
// before the flop; failing that raises Flop times the ante on the flop when
// hole and flop make a pair or better; failing that raises River times the
// ante on the river when the seven cards make a pair or better; otherwise folds.
// A zero multiple skips that street.
type Line struct {
	Name    string
	Preflop float64
	Flop    float64
	River   float64
}

var (
	// MaxBet always raises four times preflop.
	MaxBet = Line{Name: "maxbet", Preflop: 4}
	// FlopBet raises twice on a paired flop, else once on a paired river.
	FlopBet = Line{Name: "flop", Flop: 2, River: 1}
	// RiverBet checks to the river and raises once with a pair or better.
	RiverBet = Line{Name: "river", River: 1}
)

// DefaultLines lists the lines evaluated when none are configured.
func DefaultLines() []Line {
	return []Line{MaxBet, FlopBet, RiverBet}
}

// LineByName looks up one of the standard lines.
func LineByName(name string) (Line, error) {
	for _, l := range DefaultLines() {
		if strings.EqualFold(l.Name, name) {
			return l, nil
		}
	}
	return Line{}, fmt.Errorf("unknown line %q", name)
}

// UsesFlop reports whether the bet depends on which board cards came on the
// flop, so exhaustive runs must average over deal orders.
func (l Line) UsesFlop() bool {
	return l.Preflop == 0 && l.Flop > 0
}

// Bet returns the play bet multiple, or 0 for a fold. flop holds the three
// flop cards and final is the rank of the player's seven cards.
func (l Line) Bet(e *poker.Evaluator, hole, flop poker.Hand, final poker.HandRank) float64 {
	if l.Preflop > 0 {
		return l.Preflop
	}
	if l.Flop > 0 && e.Evaluate(hole|flop).Type() >= poker.Pair {
		return l.Flop
	}
	if l.River > 0 && final.Type() >= poker.Pair {
		return l.River
	}
	return 0
}

func (l Line) String() string {
	return l.Name
}
