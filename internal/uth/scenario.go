package uth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/pokerev/poker"
)

// Scenario is what the player knows: two hole cards and up to five board
// cards in the order they were dealt. The first three board cards are the flop.
type Scenario struct {
	Hole  poker.Hand
	Board []poker.Card
}

// ParseScenario builds a scenario from card tokens, e.g. ("AsKd", "Qh Jh 2c").
// Tokens may be separated by spaces or commas, or run together.
func ParseScenario(hole, board string) (Scenario, error) {
	holeCards, err := poker.ParseCards(hole)
	if errors.Is(err, poker.ErrDuplicateCard) {
		return Scenario{}, fmt.Errorf("%w: hole: %w", ErrInvalidScenario, err)
	}
	if err != nil {
		return Scenario{}, fmt.Errorf("hole: %w", err)
	}
	boardCards, err := poker.ParseCards(board)
	if errors.Is(err, poker.ErrDuplicateCard) {
		return Scenario{}, fmt.Errorf("%w: board: %w", ErrInvalidScenario, err)
	}
	if err != nil {
		return Scenario{}, fmt.Errorf("board: %w", err)
	}
	if len(holeCards) != 2 {
		return Scenario{}, fmt.Errorf("%w: need two hole cards, got %d", ErrInvalidScenario, len(holeCards))
	}
	sc := Scenario{Hole: poker.NewHand(holeCards...), Board: boardCards}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks that the scenario can be dealt from one deck.
func (s Scenario) Validate() error {
	if s.Hole&poker.Hand(poker.DeadzoneMask) != 0 || s.Hole.CountCards() != 2 {
		return fmt.Errorf("%w: need two hole cards", ErrInvalidScenario)
	}
	if len(s.Board) > 5 {
		return fmt.Errorf("%w: at most five board cards, got %d", ErrInvalidScenario, len(s.Board))
	}
	seen := s.Hole
	for _, c := range s.Board {
		if !c.Valid() {
			return fmt.Errorf("%w: invalid board card", ErrInvalidScenario)
		}
		if seen.HasCard(c) {
			return fmt.Errorf("%w: %s dealt twice", ErrInvalidScenario, c)
		}
		seen.AddCard(c)
	}
	return nil
}

// Known returns the union of the known board cards.
func (s Scenario) Known() poker.Hand {
	return poker.NewHand(s.Board...)
}

// knownFlop returns the known board cards that belong to the flop.
func (s Scenario) knownFlop() poker.Hand {
	return poker.NewHand(s.Board[:min(len(s.Board), 3)]...)
}

// Missing returns how many board cards are still to come.
func (s Scenario) Missing() int {
	return 5 - len(s.Board)
}

func (s Scenario) String() string {
	if len(s.Board) == 0 {
		return s.Hole.String()
	}
	board := make([]string, len(s.Board))
	for i, c := range s.Board {
		board[i] = c.String()
	}
	return s.Hole.String() + " | " + strings.Join(board, " ")
}
