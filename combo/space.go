package combo

import (
	"iter"
	"math/bits"
)

// Space describes which positions an enumeration may use. Structural marks
// positions that never hold anything (padding in a packed layout) and Used
// marks positions already taken for this walk, such as cards already dealt.
// Next only sees their union, but keeping them apart lets one structural
// layout be shared by many walks.
type Space struct {
	Structural uint64
	Used       uint64
}

// Dead returns every position the enumeration must skip.
func (s Space) Dead() uint64 {
	return s.Structural | s.Used
}

// Free returns the number of selectable positions.
func (s Space) Free() int {
	return 64 - bits.OnesCount64(s.Dead())
}

// Without returns a copy of s that also treats mask as used.
func (s Space) Without(mask uint64) Space {
	s.Used |= mask
	return s
}

// Count returns how many k-subsets the space holds.
func (s Space) Count(k int) uint64 {
	return Binomial(s.Free(), k)
}

// All yields every k-subset of the free positions in increasing order and
// stops after the last one, so it never wraps.
func (s Space) All(k int) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		if k == 0 {
			yield(0)
			return
		}
		dead := s.Dead()
		x := First(k, dead)
		for n := s.Count(k); n > 0; n-- {
			if !yield(x) {
				return
			}
			if n > 1 {
				x = Next(x, dead)
			}
		}
	}
}

// Iterator walks the k-subsets of a space one at a time. It suits loops
// that share the walk with other state, such as the outer board loop of an
// equity run.
type Iterator struct {
	current   uint64
	dead      uint64
	remaining uint64
	started   bool
}

// Iterator returns a pull-style walk over the k-subsets of s.
func (s Space) Iterator(k int) *Iterator {
	return &Iterator{
		current:   First(k, s.Dead()),
		dead:      s.Dead(),
		remaining: s.Count(k),
	}
}

// Next advances to the next subset and reports whether one was available.
func (it *Iterator) Next() bool {
	if it.remaining == 0 {
		return false
	}
	if it.started && it.current != 0 {
		it.current = Next(it.current, it.dead)
	}
	it.started = true
	it.remaining--
	return true
}

// Value returns the current subset.
func (it *Iterator) Value() uint64 {
	return it.current
}

// Remaining returns how many subsets are left after the current one.
func (it *Iterator) Remaining() uint64 {
	return it.remaining
}

// Subsets yields every k-bit subset of mask in increasing order. It walks
// the dense k-subsets of the mask's n set bits and scatters each onto the
// mask, so the cost is C(n, k) steps however sparse the mask is.
func Subsets(mask uint64, k int) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		n := bits.OnesCount64(mask)
		if k < 0 || k > n {
			return
		}
		if k == 0 {
			yield(0)
			return
		}

		var positions [64]uint64
		for i, rest := 0, mask; rest != 0; i++ {
			positions[i] = rest & -rest
			rest &= rest - 1
		}

		idx := First(k, 0)
		for c := Binomial(n, k); c > 0; c-- {
			var sub uint64
			for rest := idx; rest != 0; rest &= rest - 1 {
				sub |= positions[bits.TrailingZeros64(rest)]
			}
			if !yield(sub) {
				return
			}
			if c > 1 {
				idx = Next(idx, 0)
			}
		}
	}
}
