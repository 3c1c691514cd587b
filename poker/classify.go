package poker

// handMasks holds the per-hand bit masks every classifier reads. They are
// computed once per evaluation.
type handMasks struct {
	ranks uint16 // ranks present in any suit
	flush uint16 // ranks of the suit holding five or more cards, if any
	quads uint16 // ranks present in all four suits
	trips uint16 // ranks present in exactly three suits
	pairs uint16 // ranks present in exactly two suits
}

func newHandMasks(h Hand) handMasks {
	s0 := h.SuitMask(Spades)
	s1 := h.SuitMask(Hearts)
	s2 := h.SuitMask(Diamonds)
	s3 := h.SuitMask(Clubs)

	var flush uint16
	for _, s := range [4]uint16{s0, s1, s2, s3} {
		if PopCount14(uint64(s)) >= 5 {
			flush = s
			break
		}
	}

	quads := s0 & s1 & s2 & s3
	atLeastThree := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	atLeastTwo := (s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)

	return handMasks{
		ranks: s0 | s1 | s2 | s3,
		flush: flush,
		quads: quads,
		trips: atLeastThree &^ quads,
		pairs: atLeastTwo &^ atLeastThree,
	}
}

// rankOrdinal returns the position of rank among the ranks left once the
// excluded ranks are removed.
func rankOrdinal(rank uint8, exclude uint16) uint16 {
	below := exclude & (1<<rank - 1)
	return uint16(rank) - uint16(PopCount14(uint64(below)))
}

func classifyStraightFlush(m handMasks) (HandRank, bool) {
	if m.flush == 0 {
		return 0, false
	}
	r := StraightRank(m.flush)
	if r == 0 {
		return 0, false
	}
	return HandRank(baseStraightFlush + 14 - uint16(r)), true
}

func classifyFlush(m handMasks, t *OrdinalTable) (HandRank, bool) {
	if m.flush == 0 {
		return 0, false
	}
	idx, ok := t.Index(keepTopFive(m.flush))
	if !ok {
		return 0, false
	}
	return HandRank(baseFlush + flushCount - 1 - uint16(idx)), true
}

// With seven cards only one rank can be quads, and the kicker is the best of
// whatever else is left, including cards of a second trips or pair.
func classifyFourOfAKind(m handMasks) (HandRank, bool) {
	if m.quads == 0 {
		return 0, false
	}
	quad := highestRank(m.quads)
	used := uint16(1) << quad
	kicker := highestRank(m.ranks &^ used)
	idx := uint16(quad)*12 + rankOrdinal(kicker, used)
	return HandRank(baseFourOfAKind + fourOfAKindCount - 1 - idx), true
}

// A second set of trips plays as the pair.
func classifyFullHouse(m handMasks) (HandRank, bool) {
	if m.trips == 0 {
		return 0, false
	}
	trip := highestRank(m.trips)
	used := uint16(1) << trip
	candidates := m.pairs | m.trips&^used
	if candidates == 0 {
		return 0, false
	}
	pair := highestRank(candidates)
	idx := uint16(trip)*12 + rankOrdinal(pair, used)
	return HandRank(baseFullHouse + fullHouseCount - 1 - idx), true
}

func classifyStraight(m handMasks) (HandRank, bool) {
	r := StraightRank(m.ranks)
	if r == 0 {
		return 0, false
	}
	return HandRank(baseStraight + 14 - uint16(r)), true
}

func classifyThreeOfAKind(m handMasks) (HandRank, bool) {
	if m.trips == 0 {
		return 0, false
	}
	trip := highestRank(m.trips)
	used := uint16(1) << trip
	rest := m.ranks &^ used
	k1 := highestRank(rest)
	k2 := highestRank(rest &^ (1 << k1))

	o1, o2 := rankOrdinal(k1, used), rankOrdinal(k2, used)
	kickers := o1*(o1-1)/2 + o2 // 0..65 over pairs of the 12 other ranks
	idx := uint16(trip)*66 + kickers
	return HandRank(baseThreeOfAKind + threeOfAKindCount - 1 - idx), true
}

func classifyTwoPair(m handMasks) (HandRank, bool) {
	if PopCount14(uint64(m.pairs)) < 2 {
		return 0, false
	}
	p1 := highestRank(m.pairs)
	p2 := highestRank(m.pairs &^ (1 << p1))
	used := uint16(1)<<p1 | uint16(1)<<p2
	kicker := highestRank(m.ranks &^ used)

	a, b := uint16(p1), uint16(p2)
	pairIdx := a*(a-1)/2 + b // 0..77 over pairs of the 13 ranks
	idx := pairIdx*11 + rankOrdinal(kicker, used)
	return HandRank(baseTwoPair + twoPairCount - 1 - idx), true
}

func classifyOnePair(m handMasks) (HandRank, bool) {
	if m.pairs == 0 {
		return 0, false
	}
	pair := highestRank(m.pairs)
	used := uint16(1) << pair
	rest := m.ranks &^ used
	k1 := highestRank(rest)
	rest &^= 1 << k1
	k2 := highestRank(rest)
	rest &^= 1 << k2
	k3 := highestRank(rest)

	o1, o2, o3 := rankOrdinal(k1, used), rankOrdinal(k2, used), rankOrdinal(k3, used)
	kickers := o1*(o1-1)*(o1-2)/6 + o2*(o2-1)/2 + o3 // 0..219 over triples of 12 ranks
	idx := uint16(pair)*220 + kickers
	return HandRank(baseOnePair + onePairCount - 1 - idx), true
}

func classifyHighCard(m handMasks, t *OrdinalTable) (HandRank, bool) {
	idx, ok := t.Index(keepTopFive(m.ranks))
	if !ok {
		return 0, false
	}
	return HandRank(baseHighCard + highCardCount - 1 - uint16(idx)), true
}
