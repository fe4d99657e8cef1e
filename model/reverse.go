package model

import "math/bits"

// Reverse returns the reversal of the low n bits of x, 1 <= n <= WordBits.
// The high WordBits-n bits of x are ignored and are zero in the result.
func Reverse(x uint64, n int) uint64 {
	return bits.Reverse64(x) >> (WordBits - uint(n))
}

// ReverseDbl returns the reversal of the low n bits of hi/lo,
// 1 <= n <= 2*WordBits.
func ReverseDbl(hi, lo uint64, n int) (uint64, uint64) {
	if n <= WordBits {
		return 0, Reverse(lo, n)
	}
	tmp := Reverse(lo, WordBits)
	lo = Reverse(hi, n-WordBits)
	if n < WordBits*2 {
		lo |= tmp << uint(n-WordBits)
		hi = tmp >> uint(WordBits*2-n)
	} else {
		hi = tmp
	}
	return hi, lo
}
