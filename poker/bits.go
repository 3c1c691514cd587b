package poker

import "math/bits"

const (
	broadwayMask = 0x1F00 // T-J-Q-K-A
	wheelMask    = 0x100F // A-2-3-4-5
)

// PopCount14 returns the number of set bits in n.
//
// n must be below 1<<14. The multiply spreads three copies of the value into
// nibble-aligned slots, the mask keeps one bit per nibble and the modulo by 15
// sums the nibbles. Larger inputs give wrong answers.
func PopCount14(n uint64) uint32 {
	return uint32((n * 0x200040008001 & 0x111111111111111) % 0xf)
}

// StraightRank returns the high card of the best straight in a 13-bit rank
// mask: 14 for ace high down to 6 for six high, 5 for the wheel, and 0 when
// the mask holds no five consecutive ranks.
//
// The window starts over T-J-Q-K-A. Each miss shifts the mask up just far
// enough to move the lowest missing rank out of the window, so every shift
// skips all windows that contain that gap. The scan stops once fewer than five
// ranks remain below the window.
func StraightRank(mask uint16) uint8 {
	acc := uint64(mask & rankMask)
	rank := uint8(14)
	for {
		gap := ^acc & broadwayMask
		if gap == 0 {
			return rank
		}
		shift := 13 - bits.TrailingZeros64(gap)
		rank -= uint8(shift)
		acc = (acc << shift) & rankMask
		if PopCount14(acc) < 5 {
			break
		}
	}

	if mask&wheelMask == wheelMask {
		return 5
	}
	return 0
}

// highestRank returns the highest rank in a non-empty mask.
func highestRank(mask uint16) uint8 {
	return uint8(bits.Len16(mask) - 1)
}

// keepTopFive clears the lowest set bits until five remain.
func keepTopFive(mask uint16) uint16 {
	for n := PopCount14(uint64(mask)); n > 5; n-- {
		mask &= mask - 1
	}
	return mask
}
