// Package statistics accumulates per-hand payouts of a betting line.
package statistics

import (
	"fmt"
	"math"

	"github.com/lox/pokerev/poker"
)

// Outcome classifies how a hand was settled.
type Outcome uint8

const (
	Fold Outcome = iota
	Win
	Loss
	Push
)

func (o Outcome) String() string {
	switch o {
	case Fold:
		return "fold"
	case Win:
		return "win"
	case Loss:
		return "loss"
	case Push:
		return "push"
	default:
		return "unknown"
	}
}

// HandResult is the settlement of a single player hand against a single
// dealer hand, in units of the ante.
type HandResult struct {
	Net             float64
	Outcome         Outcome
	DealerQualified bool
	// Bonus is the category that paid the blind bet. It is only meaningful
	// when BonusPaid is set.
	Bonus     poker.HandType
	BonusPaid bool
	Royal     bool // blind paid at the royal flush rate
}

// Statistics tracks weighted payout statistics. Monte Carlo runs add every
// hand with weight 1; exhaustive runs use fractional weights when a decision
// is averaged over several deal orders.
type Statistics struct {
	Hands  int     // observations added
	Weight float64 // total weight of all observations
	Sum    float64
	SumSq  float64 // weighted sum of squares for variance calculation

	Wins   float64
	Losses float64
	Pushes float64
	Folds  float64

	DealerNotQualified float64 // showdowns where the dealer had no pair
	BlindBonuses       [poker.StraightFlush + 2]float64
}

// royalBonus is the BlindBonuses slot for royal flushes, after StraightFlush.
const royalBonus = int(poker.StraightFlush) + 1

// Add incorporates one hand with weight 1.
func (s *Statistics) Add(r HandResult) {
	s.AddWeighted(r, 1)
}

// AddWeighted incorporates one hand with weight w.
func (s *Statistics) AddWeighted(r HandResult, w float64) {
	s.Hands++
	s.Weight += w
	s.Sum += w * r.Net
	s.SumSq += w * r.Net * r.Net

	switch r.Outcome {
	case Win:
		s.Wins += w
	case Loss:
		s.Losses += w
	case Push:
		s.Pushes += w
	case Fold:
		s.Folds += w
		return
	}

	if !r.DealerQualified {
		s.DealerNotQualified += w
	}
	if r.BonusPaid {
		s.BlindBonuses[r.Bonus] += w
		// Royal flushes are also counted as straight flushes.
		if r.Royal {
			s.BlindBonuses[royalBonus] += w
		}
	}
}

// Royals returns the weight of blinds paid at the royal flush rate.
func (s *Statistics) Royals() float64 {
	return s.BlindBonuses[royalBonus]
}

// Merge folds other into s. Workers accumulate privately and merge at the end.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.Weight += other.Weight
	s.Sum += other.Sum
	s.SumSq += other.SumSq
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Folds += other.Folds
	s.DealerNotQualified += other.DealerNotQualified
	for i := range s.BlindBonuses {
		s.BlindBonuses[i] += other.BlindBonuses[i]
	}
}

// Mean returns the expected payout per hand in antes
func (s *Statistics) Mean() float64 {
	if s.Weight == 0 {
		return 0
	}
	return s.Sum / s.Weight
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 || s.Weight <= 1 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumSq - s.Weight*mean*mean) / (s.Weight - 1)
	return max(v, 0)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Weight == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(s.Weight)
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Rate returns the share of total weight that v represents.
func (s *Statistics) Rate(v float64) float64 {
	if s.Weight == 0 {
		return 0
	}
	return v / s.Weight
}

// IsLedgerBalanced checks that every observation landed in one outcome bucket.
func (s *Statistics) IsLedgerBalanced() bool {
	total := s.Wins + s.Losses + s.Pushes + s.Folds
	return math.Abs(total-s.Weight) <= 1e-6*max(1, s.Weight)
}

// Validate performs consistency checks on the accumulated data
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: weight=%.6f wins=%.6f losses=%.6f pushes=%.6f folds=%.6f",
			s.Weight, s.Wins, s.Losses, s.Pushes, s.Folds)
	}
	if s.DealerNotQualified > s.Weight-s.Folds+1e-6 {
		return fmt.Errorf("dealer not qualified (%.2f) exceeds showdowns (%.2f)",
			s.DealerNotQualified, s.Weight-s.Folds)
	}
	return nil
}
