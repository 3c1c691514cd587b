package poker

import (
	"testing"

	"github.com/lox/pokerev/combo"
)

func BenchmarkEvaluate7(b *testing.B) {
	hands := randomHands(b, 7, 1024, 1)
	e := NewEvaluator()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Evaluate(hands[i&1023])
	}
}

func BenchmarkEvaluate5(b *testing.B) {
	hands := randomHands(b, 5, 1024, 2)
	e := NewEvaluator()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Evaluate(hands[i&1023])
	}
}

func BenchmarkEvaluateBatch(b *testing.B) {
	hands := randomHands(b, 7, 1024, 3)
	out := make([]HandRank, len(hands))
	e := NewEvaluator()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out = e.EvaluateBatch(hands, out)
	}
	b.ReportMetric(float64(b.N*len(hands))/b.Elapsed().Seconds(), "hands/s")
}

// BenchmarkEnumerateAndEvaluate walks seven-card hands in enumeration order,
// which is how the bench subcommand drives the evaluator.
func BenchmarkEnumerateAndEvaluate(b *testing.B) {
	e := NewEvaluator()
	dead := DeadzoneMask
	total := combo.Binomial(52, 7)
	x, left := combo.First(7, dead), total
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Evaluate(Hand(x))
		if left--; left == 0 {
			x, left = combo.First(7, dead), total
			continue
		}
		x = combo.Next(x, dead)
	}
}

func BenchmarkNewEvaluator(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = NewEvaluator()
	}
}
