package poker

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Card represents a single card as one set bit in a uint64.
//
// The word is split into four 16-bit suit lanes: spades in bits 0-15, hearts
// in 16-31, diamonds in 32-47 and clubs in 48-63. Within a lane, bit 0 is the
// deuce and bit 12 the ace; the top three bits of every lane are never used.
type Card uint64

// Hand is the union of several cards. A valid hand has no bit set in a
// deadzone and at most seven bits set overall.
type Hand uint64

// NullCard is returned for tokens that do not name a card. It can never
// collide with a real card since every real card has exactly one bit set.
const NullCard Card = 0

// Suit constants, matching the lane index of each suit.
const (
	Spades   uint8 = 0
	Hearts   uint8 = 1
	Diamonds uint8 = 2
	Clubs    uint8 = 3
)

// Rank constants (0-12 for 2-A)
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

const (
	laneWidth = 16
	laneMask  = 0xFFFF
	rankMask  = 0x1FFF // 13 meaningful bits per lane

	// DeadzoneMask covers the three padding bits at the top of every lane.
	DeadzoneMask uint64 = 0xE000E000E000E000
	// FullDeck is the hand holding all 52 cards.
	FullDeck Hand = 0x1FFF1FFF1FFF1FFF
)

var (
	// ErrInvalidCard is returned by ParseHand for a malformed token.
	ErrInvalidCard = errors.New("invalid card")
	// ErrDuplicateCard is returned by ParseHand when a card repeats.
	ErrDuplicateCard = errors.New("duplicate card")
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "shdc"
)

// NewCard creates a card from rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (uint(suit)*laneWidth + uint(rank))
}

// ParseCard converts a two character token such as "As" or "Td" into a Card.
// Ranks are 2-9, T, J, Q, K, A (upper case) and suits are c, d, h, s (lower
// case). Anything else yields NullCard.
func ParseCard(token string) Card {
	if len(token) != 2 {
		return NullCard
	}
	rank := strings.IndexByte(rankChars, token[0])
	suit := strings.IndexByte(suitChars, token[1])
	if rank < 0 || suit < 0 {
		return NullCard
	}
	return NewCard(uint8(rank), uint8(suit))
}

// ParseHand parses every token and returns their union. Unlike ParseCard it
// reports malformed tokens and repeated cards.
func ParseHand(tokens ...string) (Hand, error) {
	var h Hand
	for i, token := range tokens {
		c := ParseCard(token)
		if c == NullCard {
			return 0, fmt.Errorf("token %d %q: %w", i+1, token, ErrInvalidCard)
		}
		if h.HasCard(c) {
			return 0, fmt.Errorf("token %d %q: %w", i+1, token, ErrDuplicateCard)
		}
		h.AddCard(c)
	}
	return h, nil
}

// ParseCards parses a card list such as "AsKd", "As Kd" or "As,Kd" in order.
// Repeated cards are reported.
func ParseCards(s string) ([]Card, error) {
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%q: %w", s, ErrInvalidCard)
	}
	cards := make([]Card, 0, len(s)/2)
	var seen Hand
	for i := 0; i < len(s); i += 2 {
		token := s[i : i+2]
		c := ParseCard(token)
		if c == NullCard {
			return nil, fmt.Errorf("%q: %w", token, ErrInvalidCard)
		}
		if seen.HasCard(c) {
			return nil, fmt.Errorf("%q: %w", token, ErrDuplicateCard)
		}
		seen.AddCard(c)
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseHand parses cards and panics on error (for tests)
func MustParseHand(tokens ...string) Hand {
	h, err := ParseHand(tokens...)
	if err != nil {
		panic(fmt.Sprintf("failed to parse hand %v: %v", tokens, err))
	}
	return h
}

// Valid reports whether c is exactly one card outside the deadzones.
func (c Card) Valid() bool {
	return c != 0 && c&(c-1) == 0 && uint64(c)&DeadzoneMask == 0
}

// Rank returns the rank of the card (0-12), or 255 for an invalid card.
func (c Card) Rank() uint8 {
	if !c.Valid() {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c)) % laneWidth)
}

// Suit returns the suit of the card (0-3), or 255 for an invalid card.
func (c Card) Suit() uint8 {
	if !c.Valid() {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c)) / laneWidth)
}

// String returns the string representation (e.g., "As", "Kh")
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string(rankChars[c.Rank()]) + string(suitChars[c.Suit()])
}

// NewHand creates a hand from multiple cards
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard checks if the hand contains a specific card
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// CountCards returns the number of cards in the hand
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// SuitMask returns the 13-bit rank mask of one suit lane.
func (h Hand) SuitMask(suit uint8) uint16 {
	return uint16(uint64(h)>>(uint(suit)*laneWidth)) & rankMask
}

// RankMask returns the ranks present in any suit.
func (h Hand) RankMask() uint16 {
	u := uint64(h)
	return uint16(u|u>>16|u>>32|u>>48) & rankMask
}

// Cards returns the individual cards from lowest bit to highest.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		cards = append(cards, Card(rest&-rest))
	}
	return cards
}

// String renders the hand as space separated tokens, highest rank first.
func (h Hand) String() string {
	cards := h.Cards()
	parts := make([]string, 0, len(cards))
	for rank := int(Ace); rank >= 0; rank-- {
		for _, c := range cards {
			if int(c.Rank()) == rank {
				parts = append(parts, c.String())
			}
		}
	}
	return strings.Join(parts, " ")
}
