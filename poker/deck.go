package poker

import (
	rand "math/rand/v2"
)

// Deck holds the cards not yet dealt. Draws use a partial Fisher-Yates
// shuffle, so only the cards actually dealt are randomised.
type Deck struct {
	cards [52]Card
	size  int // cards available after exclusions
	next  int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a deck of the 52 cards minus those in exclude.
func NewDeck(rng *rand.Rand, exclude Hand) *Deck {
	d := &Deck{rng: rng}
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			c := NewCard(rank, suit)
			if exclude.HasCard(c) {
				continue
			}
			d.cards[d.size] = c
			d.size++
		}
	}
	return d
}

// Shuffle returns every card to the deck. Order is randomised lazily by Deal.
func (d *Deck) Shuffle() {
	d.next = 0
}

// Deal deals n cards from the deck as a Hand, or false if fewer than n remain.
func (d *Deck) Deal(n int) (Hand, bool) {
	if d.next+n > d.size {
		return 0, false
	}
	var h Hand
	for range n {
		h |= Hand(d.DealOne())
	}
	return h, true
}

// DealOne deals a single card from the deck
func (d *Deck) DealOne() Card {
	if d.next >= d.size {
		return NullCard
	}
	j := d.next + d.rng.IntN(d.size-d.next)
	d.cards[d.next], d.cards[j] = d.cards[j], d.cards[d.next]
	card := d.cards[d.next]
	d.next++
	return card
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return d.size - d.next
}
