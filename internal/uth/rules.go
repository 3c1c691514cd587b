// Package uth computes the expected value of Ultimate Texas Hold'em betting
// lines by exhaustive enumeration or Monte Carlo sampling.
package uth

import (
	"errors"
	"fmt"

	"github.com/lox/pokerev/internal/statistics"
	"github.com/lox/pokerev/poker"
)

// ErrInvalidScenario is returned for hole and board combinations that cannot
// be dealt.
var ErrInvalidScenario = errors.New("invalid scenario")

// Paytable holds the blind bet multipliers by the player's final hand.
// Anything below a straight pushes.
type Paytable struct {
	RoyalFlush    float64
	StraightFlush float64
	FourOfAKind   float64
	FullHouse     float64
	Flush         float64
	Straight      float64
}

// DefaultPaytable is the standard casino blind table.
func DefaultPaytable() Paytable {
	return Paytable{
		RoyalFlush:    500,
		StraightFlush: 50,
		FourOfAKind:   10,
		FullHouse:     3,
		Flush:         1.5,
		Straight:      1,
	}
}

// Multiplier returns the blind payout multiple for a winning hand.
func (p Paytable) Multiplier(r poker.HandRank) float64 {
	if r.IsRoyalFlush() {
		return p.RoyalFlush
	}
	switch r.Type() {
	case poker.StraightFlush:
		return p.StraightFlush
	case poker.FourOfAKind:
		return p.FourOfAKind
	case poker.FullHouse:
		return p.FullHouse
	case poker.Flush:
		return p.Flush
	case poker.Straight:
		return p.Straight
	default:
		return 0
	}
}

// Rules are the stakes and pay table of a game.
type Rules struct {
	Ante     float64
	Blind    float64
	Paytable Paytable
}

// DefaultRules uses one unit for the ante and blind with the standard pay table.
func DefaultRules() Rules {
	return Rules{Ante: 1, Blind: 1, Paytable: DefaultPaytable()}
}

// Validate rejects stakes that make payouts meaningless.
func (r Rules) Validate() error {
	if r.Ante <= 0 {
		return fmt.Errorf("ante must be positive, got %v", r.Ante)
	}
	if r.Blind < 0 {
		return fmt.Errorf("blind must not be negative, got %v", r.Blind)
	}
	p := r.Paytable
	for name, v := range map[string]float64{
		"royal_flush":    p.RoyalFlush,
		"straight_flush": p.StraightFlush,
		"four_of_a_kind": p.FourOfAKind,
		"full_house":     p.FullHouse,
		"flush":          p.Flush,
		"straight":       p.Straight,
	} {
		if v < 0 {
			return fmt.Errorf("paytable %s must not be negative, got %v", name, v)
		}
	}
	return nil
}

// DealerQualifies reports whether the dealer's hand opens the ante: a pair or better.
func DealerQualifies(dealer poker.HandRank) bool {
	return dealer.Type() >= poker.Pair
}

// Showdown settles a hand where the player made a play bet of play times the ante.
//
// A winning player collects the play bet, the blind at pay table odds and the
// ante only when the dealer qualifies. A losing player forfeits all three
// bets. Equal hands push.
func (r Rules) Showdown(play float64, player, dealer poker.HandRank) statistics.HandResult {
	qualified := DealerQualifies(dealer)
	switch {
	case player < dealer:
		res := statistics.HandResult{Outcome: statistics.Win, DealerQualified: qualified, Net: play * r.Ante}
		if qualified {
			res.Net += r.Ante
		}
		if m := r.Paytable.Multiplier(player); m > 0 {
			res.Net += m * r.Blind
			res.Bonus = player.Type()
			res.BonusPaid = true
			res.Royal = player.IsRoyalFlush()
		}
		return res
	case player > dealer:
		return statistics.HandResult{
			Outcome:         statistics.Loss,
			DealerQualified: qualified,
			Net:             -(r.Ante + r.Blind + play*r.Ante),
		}
	default:
		return statistics.HandResult{Outcome: statistics.Push, DealerQualified: qualified}
	}
}

// Fold settles a hand the player gave up on the river.
func (r Rules) Fold() statistics.HandResult {
	return statistics.HandResult{Outcome: statistics.Fold, Net: -(r.Ante + r.Blind)}
}

// Settle dispatches to Showdown or Fold. A zero play bet is a fold.
func (r Rules) Settle(play float64, player, dealer poker.HandRank) statistics.HandResult {
	if play == 0 {
		return r.Fold()
	}
	return r.Showdown(play, player, dealer)
}
