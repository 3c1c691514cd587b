package poker

import "sync"

// HandRank represents the strength of a poker hand. Lower values are stronger:
// 0 is a royal flush and 7461 the worst seven-high.
type HandRank uint16

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

const (
	straightFlushCount = 10
	fourOfAKindCount   = 13 * 12
	fullHouseCount     = 13 * 12
	flushCount         = ordinalCount
	straightCount      = 10
	threeOfAKindCount  = 13 * 66
	twoPairCount       = 78 * 11
	onePairCount       = 13 * 220
	highCardCount      = ordinalCount
)

const (
	baseStraightFlush = 0
	baseFourOfAKind   = baseStraightFlush + straightFlushCount
	baseFullHouse     = baseFourOfAKind + fourOfAKindCount
	baseFlush         = baseFullHouse + fullHouseCount
	baseStraight      = baseFlush + flushCount
	baseThreeOfAKind  = baseStraight + straightCount
	baseTwoPair       = baseThreeOfAKind + threeOfAKindCount
	baseOnePair       = baseTwoPair + twoPairCount
	baseHighCard      = baseOnePair + onePairCount
)

const (
	// BestRank is the royal flush.
	BestRank HandRank = baseStraightFlush
	// WorstRank is 7-5-4-3-2 offsuit.
	WorstRank HandRank = baseHighCard + highCardCount - 1
	// RankCount is the number of distinct hand ranks.
	RankCount = int(WorstRank) + 1
)

// boundaries mark the exclusive upper bound for each category in ascending strength order.
var handTypeBoundaries = [...]HandRank{
	HandRank(baseFourOfAKind),
	HandRank(baseFullHouse),
	HandRank(baseFlush),
	HandRank(baseStraight),
	HandRank(baseThreeOfAKind),
	HandRank(baseTwoPair),
	HandRank(baseOnePair),
	HandRank(baseHighCard),
	HandRank(baseHighCard + highCardCount),
}

// Type returns the type of hand (pair, flush, etc.).
func (hr HandRank) Type() HandType {
	switch {
	case hr < handTypeBoundaries[0]:
		return StraightFlush
	case hr < handTypeBoundaries[1]:
		return FourOfAKind
	case hr < handTypeBoundaries[2]:
		return FullHouse
	case hr < handTypeBoundaries[3]:
		return Flush
	case hr < handTypeBoundaries[4]:
		return Straight
	case hr < handTypeBoundaries[5]:
		return ThreeOfAKind
	case hr < handTypeBoundaries[6]:
		return TwoPair
	case hr < handTypeBoundaries[7]:
		return Pair
	default:
		return HighCard
	}
}

// IsRoyalFlush reports whether hr is the single best rank.
func (hr HandRank) IsRoyalFlush() bool {
	return hr == BestRank
}

// String returns a human-readable hand description.
func (hr HandRank) String() string {
	if hr.IsRoyalFlush() {
		return "Royal Flush"
	}
	return hr.Type().String()
}

// Band returns the first and last rank of the category.
func (t HandType) Band() (first, last HandRank) {
	switch t {
	case StraightFlush:
		return baseStraightFlush, baseFourOfAKind - 1
	case FourOfAKind:
		return baseFourOfAKind, baseFullHouse - 1
	case FullHouse:
		return baseFullHouse, baseFlush - 1
	case Flush:
		return baseFlush, baseStraight - 1
	case Straight:
		return baseStraight, baseThreeOfAKind - 1
	case ThreeOfAKind:
		return baseThreeOfAKind, baseTwoPair - 1
	case TwoPair:
		return baseTwoPair, baseOnePair - 1
	case Pair:
		return baseOnePair, baseHighCard - 1
	default:
		return baseHighCard, WorstRank
	}
}

func (t HandType) String() string {
	switch t {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Evaluator ranks hands. It owns the ordinal table used by the flush and
// high-card classifiers, so a constructed Evaluator is always ready to use.
// It is immutable and safe for concurrent use.
type Evaluator struct {
	ordinals *OrdinalTable
}

// NewEvaluator builds the ordinal table and returns a ready evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{ordinals: newOrdinalTable()}
}

// Ordinals exposes the evaluator's ordinal table.
func (e *Evaluator) Ordinals() *OrdinalTable {
	return e.ordinals
}

// Evaluate returns the rank of the best five-card hand within h. h must hold
// five to seven distinct cards; anything else gives an unspecified result.
func (e *Evaluator) Evaluate(h Hand) HandRank {
	m := newHandMasks(h)

	if r, ok := classifyStraightFlush(m); ok {
		return r
	}
	// A flush cannot coexist with quads or a full house in seven cards, so
	// checking it first never hides a stronger hand.
	if r, ok := classifyFlush(m, e.ordinals); ok {
		return r
	}
	if r, ok := classifyFourOfAKind(m); ok {
		return r
	}
	if r, ok := classifyFullHouse(m); ok {
		return r
	}
	if r, ok := classifyStraight(m); ok {
		return r
	}
	if r, ok := classifyThreeOfAKind(m); ok {
		return r
	}
	if r, ok := classifyTwoPair(m); ok {
		return r
	}
	if r, ok := classifyOnePair(m); ok {
		return r
	}
	r, _ := classifyHighCard(m, e.ordinals)
	return r
}

// EvaluateCards evaluates the union of the given cards.
func (e *Evaluator) EvaluateCards(cards ...Card) HandRank {
	return e.Evaluate(NewHand(cards...))
}

// EvaluateTokens evaluates card tokens such as "Ad". Malformed tokens
// contribute NullCard, so callers should validate input with ParseHand first.
func (e *Evaluator) EvaluateTokens(tokens ...string) HandRank {
	var h Hand
	for _, token := range tokens {
		h |= Hand(ParseCard(token))
	}
	return e.Evaluate(h)
}

// EvaluateBatch evaluates multiple hands and writes results into out.
// If out is nil or smaller than hands, a new slice is allocated and returned.
func (e *Evaluator) EvaluateBatch(hands []Hand, out []HandRank) []HandRank {
	if len(out) < len(hands) {
		out = make([]HandRank, len(hands))
	} else {
		out = out[:len(hands)]
	}

	for i, hand := range hands {
		out[i] = e.Evaluate(hand)
	}

	return out
}

var defaultEvaluator = sync.OnceValue(NewEvaluator)

// Evaluate ranks h with a shared evaluator built on first use.
func Evaluate(h Hand) HandRank {
	return defaultEvaluator().Evaluate(h)
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie
func CompareHands(a, b HandRank) int {
	if a < b {
		return 1
	} else if a > b {
		return -1
	}
	return 0
}
