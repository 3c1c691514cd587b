package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/lox/pokerev/combo"
	"github.com/lox/pokerev/poker"
)

// categoryOrder lists hand types strongest first, as reports show them.
var categoryOrder = []poker.HandType{
	poker.StraightFlush, poker.FourOfAKind, poker.FullHouse, poker.Flush, poker.Straight,
	poker.ThreeOfAKind, poker.TwoPair, poker.Pair, poker.HighCard,
}

// expectedFrequencies are the known category counts over every hand of a deck.
var expectedFrequencies = map[int][9]uint64{
	5: {
		poker.HighCard:      1302540,
		poker.Pair:          1098240,
		poker.TwoPair:       123552,
		poker.ThreeOfAKind:  54912,
		poker.Straight:      10200,
		poker.Flush:         5108,
		poker.FullHouse:     3744,
		poker.FourOfAKind:   624,
		poker.StraightFlush: 40,
	},
	7: {
		poker.HighCard:      23294460,
		poker.Pair:          58627800,
		poker.TwoPair:       31433400,
		poker.ThreeOfAKind:  6461620,
		poker.Straight:      6180020,
		poker.Flush:         4047644,
		poker.FullHouse:     3473184,
		poker.FourOfAKind:   224848,
		poker.StraightFlush: 41584,
	},
}

// BenchCmd enumerates and evaluates every hand of a given size
type BenchCmd struct {
	Cards int `default:"7" enum:"5,7" help:"Cards per hand (5 or 7)"`
}

// histogram is the outcome of a full enumeration.
type histogram struct {
	counts   [9]uint64
	distinct int
	hands    uint64
}

// enumerate evaluates every k-card hand in enumeration order.
func enumerate(e *poker.Evaluator, k int) histogram {
	var (
		h    histogram
		seen [poker.RankCount]bool
	)
	for x := range (combo.Space{Structural: poker.DeadzoneMask}).All(k) {
		r := e.Evaluate(poker.Hand(x))
		h.counts[r.Type()]++
		if !seen[r] {
			seen[r] = true
			h.distinct++
		}
		h.hands++
	}
	return h
}

func (c *BenchCmd) Run(g *Globals) error {
	_, logger, err := g.load()
	if err != nil {
		return err
	}

	e := poker.NewEvaluator()
	total := combo.Binomial(52, c.Cards)
	logger.Info("Enumerating hands", "cards", c.Cards, "hands", total)

	start := time.Now()
	h := enumerate(e, c.Cards)
	elapsed := time.Since(start)

	want := expectedFrequencies[c.Cards]
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "%s\t%s\t%s\t\n", headerStyle.Render("Category"), headerStyle.Render("Count"), headerStyle.Render("Expected"))
	mismatches := 0
	for _, ht := range categoryOrder {
		status := winStyle.Render("ok")
		if h.counts[ht] != want[ht] {
			status = loseStyle.Render("MISMATCH")
			mismatches++
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", categoryStyle.Render(ht.String()), h.counts[ht], want[ht], status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	rate := float64(h.hands) / elapsed.Seconds()
	fmt.Printf("\n%s %d hands in %s (%s hands/sec), %d distinct ranks\n",
		headerStyle.Render("Evaluated"), h.hands, elapsed.Round(time.Millisecond),
		handStyle.Render(fmt.Sprintf("%.0f", rate)), h.distinct)

	if h.hands != total {
		return fmt.Errorf("enumerated %d hands, expected %d", h.hands, total)
	}
	if mismatches > 0 {
		return fmt.Errorf("%d categories differ from the expected histogram", mismatches)
	}
	if c.Cards == 5 && h.distinct != poker.RankCount {
		return fmt.Errorf("found %d distinct ranks, expected %d", h.distinct, poker.RankCount)
	}
	return nil
}
