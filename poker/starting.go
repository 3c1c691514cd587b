package poker

import (
	"fmt"
	"strings"
)

// StartingHand is one of the 169 strategically distinct pairs of hole cards:
// 13 pocket pairs, 78 suited and 78 offsuit combinations.
type StartingHand struct {
	High   uint8 // rank of the higher card (0-12)
	Low    uint8 // rank of the lower card (0-12)
	Suited bool
}

// TotalHoleCombos is the number of two-card holdings, C(52,2).
const TotalHoleCombos = 1326

// StartingHandOf classifies two hole cards.
func StartingHandOf(card1, card2 Card) StartingHand {
	high, low := card1.Rank(), card2.Rank()
	if low > high {
		high, low = low, high
	}
	return StartingHand{
		High:   high,
		Low:    low,
		Suited: high != low && card1.Suit() == card2.Suit(),
	}
}

// ParseStartingHand parses notation like "AA", "AKs" or "T9o".
func ParseStartingHand(s string) (StartingHand, error) {
	if len(s) < 2 || len(s) > 3 {
		return StartingHand{}, fmt.Errorf("invalid starting hand %q", s)
	}
	r1 := strings.IndexByte(rankChars, s[0])
	r2 := strings.IndexByte(rankChars, s[1])
	if r1 < 0 || r2 < 0 {
		return StartingHand{}, fmt.Errorf("invalid starting hand %q: unknown rank", s)
	}
	if r2 > r1 {
		r1, r2 = r2, r1
	}
	sh := StartingHand{High: uint8(r1), Low: uint8(r2)}

	switch {
	case len(s) == 2 && r1 == r2:
	case len(s) == 3 && r1 != r2 && s[2] == 's':
		sh.Suited = true
	case len(s) == 3 && r1 != r2 && s[2] == 'o':
	default:
		return StartingHand{}, fmt.Errorf("invalid starting hand %q", s)
	}
	return sh, nil
}

// IsPair reports whether both cards share a rank.
func (s StartingHand) IsPair() bool {
	return s.High == s.Low
}

// Combos returns how many concrete hole-card pairs the class covers.
func (s StartingHand) Combos() int {
	switch {
	case s.IsPair():
		return 6
	case s.Suited:
		return 4
	default:
		return 12
	}
}

// Cards returns a representative holding: the high card in hearts, the low
// card in hearts when suited and in diamonds otherwise.
func (s StartingHand) Cards() Hand {
	lowSuit := Diamonds
	if s.Suited {
		lowSuit = Hearts
	}
	return NewHand(NewCard(s.High, Hearts), NewCard(s.Low, lowSuit))
}

func (s StartingHand) String() string {
	name := string(rankChars[s.High]) + string(rankChars[s.Low])
	switch {
	case s.IsPair():
		return name
	case s.Suited:
		return name + "s"
	default:
		return name + "o"
	}
}

// AllStartingHands lists the 169 classes, strongest high card first, with
// the pair, then suited, then offsuit form for each rank combination.
func AllStartingHands() []StartingHand {
	hands := make([]StartingHand, 0, 169)
	for high := int(Ace); high >= 0; high-- {
		for low := high; low >= 0; low-- {
			sh := StartingHand{High: uint8(high), Low: uint8(low)}
			if high == low {
				hands = append(hands, sh)
				continue
			}
			sh.Suited = true
			hands = append(hands, sh)
			sh.Suited = false
			hands = append(hands, sh)
		}
	}
	return hands
}
