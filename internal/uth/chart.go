package uth

import (
	"context"
	"fmt"

	"github.com/lox/pokerev/poker"
)

// FoldLine names the fallback when every line loses more than folding.
const FoldLine = "fold"

// ChartRow is the result for one starting hand.
type ChartRow struct {
	Hand   string             `json:"hand"`
	Combos int                `json:"combos"`
	EVs    map[string]float64 `json:"evs"`
	Best   string             `json:"best"`
	EV     float64            `json:"ev"`
}

// Chart is the strategy chart over a set of starting hands. TotalEV weights
// each hand's best EV by the number of hole-card combinations it covers.
type Chart struct {
	Rows    []ChartRow `json:"rows"`
	Combos  int        `json:"combos"`
	TotalEV float64    `json:"total_ev"`
}

// Chart runs the preflop scenario for every hand and picks the best line for
// each. Losing the ante and blind is the floor, so a hand whose lines all do
// worse than that is marked as a fold. onRow, if set, is called after each
// hand completes.
func (s *Simulator) Chart(ctx context.Context, hands []poker.StartingHand, onRow func(i int, row ChartRow)) (*Chart, error) {
	floor := -(s.config.Rules.Ante + s.config.Rules.Blind)
	chart := &Chart{Rows: make([]ChartRow, 0, len(hands))}
	var weighted float64

	for i, sh := range hands {
		res, err := s.Run(ctx, Scenario{Hole: sh.Cards()})
		if err != nil {
			return nil, fmt.Errorf("hand %s: %w", sh, err)
		}

		row := ChartRow{
			Hand:   sh.String(),
			Combos: sh.Combos(),
			EVs:    make(map[string]float64, len(res.Lines)),
			Best:   FoldLine,
			EV:     floor,
		}
		for _, lr := range res.Lines {
			row.EVs[lr.Line.Name] = lr.EV()
			if lr.EV() > row.EV {
				row.Best, row.EV = lr.Line.Name, lr.EV()
			}
		}

		chart.Rows = append(chart.Rows, row)
		chart.Combos += row.Combos
		weighted += float64(row.Combos) * row.EV
		if onRow != nil {
			onRow(i, row)
		}
	}

	if chart.Combos > 0 {
		chart.TotalEV = weighted / float64(chart.Combos)
	}
	return chart, nil
}
