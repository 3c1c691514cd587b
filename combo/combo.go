// Package combo enumerates fixed-size subsets of a 64-position universe
// encoded as bit patterns.
//
// Successive subsets are produced in strictly increasing numeric order
// without materialising a list, so a caller can walk every k-card draw from
// a packed deck, or resume a walk from any valid pattern.
package combo

// Next returns the smallest value greater than x with the same number of set
// bits that does not intersect dead.
//
// x must be non-zero. The sequence has no end marker: stepping past the last
// pattern that fits in 64 bits wraps to a small value, and if no k-subset of
// the free positions exists Next never returns. Callers bound their loops
// with Binomial.
func Next(x, dead uint64) uint64 {
	for {
		smallest := x & -x
		ripple := x + smallest
		ones := ((x ^ ripple) >> 2) / smallest
		x = ripple | ones
		if x&dead == 0 {
			return x
		}
	}
}

// First returns the lowest value with k bits set that avoids dead, or 0 when
// fewer than k positions are free.
func First(k int, dead uint64) uint64 {
	var x uint64
	free := ^dead
	for range k {
		if free == 0 {
			return 0
		}
		low := free & -free
		x |= low
		free &^= low
	}
	return x
}

// Binomial returns C(n, k), the number of k-subsets of n positions.
func Binomial(n, k int) uint64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := uint64(1)
	for i := 1; i <= k; i++ {
		result = result * uint64(n-k+i) / uint64(i)
	}
	return result
}
