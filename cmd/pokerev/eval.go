package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lox/pokerev/poker"
)

// EvalCmd ranks hands given on the command line
type EvalCmd struct {
	Hands []string `arg:"" help:"Hands of 5 to 7 cards, e.g. 'As Ks Qs Js Ts' or 'AhAd7c2s9h'"`
}

func (c *EvalCmd) Run(g *Globals) error {
	hands := make([]poker.Hand, len(c.Hands))
	for i, s := range c.Hands {
		h, err := parseEvalHand(s)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		hands[i] = h
	}

	e := poker.NewEvaluator()
	ranks := e.EvaluateBatch(hands, nil)
	best := poker.WorstRank
	for _, r := range ranks {
		best = min(best, r)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t\n", headerStyle.Render("Hand"), headerStyle.Render("Rank"), headerStyle.Render("Category"))
	for i, h := range hands {
		marker := ""
		if len(hands) > 1 && ranks[i] == best {
			marker = winStyle.Render("best")
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", handStyle.Render(h.String()), ranks[i], categoryStyle.Render(ranks[i].String()), marker)
	}
	return w.Flush()
}

func parseEvalHand(s string) (poker.Hand, error) {
	cards, err := poker.ParseCards(s)
	if err != nil {
		return 0, err
	}
	if len(cards) < 5 || len(cards) > 7 {
		return 0, fmt.Errorf("need 5 to 7 cards, got %d", len(cards))
	}
	return poker.NewHand(cards...), nil
}
